package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("server port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Extractor.Host != "localhost" || cfg.Extractor.Port != 5000 {
		t.Errorf("extractor defaults = %s:%d", cfg.Extractor.Host, cfg.Extractor.Port)
	}
	if cfg.Catalog.CompleteHintBytes != 100000 {
		t.Errorf("CompleteHintBytes = %d, want 100000", cfg.Catalog.CompleteHintBytes)
	}
	if cfg.Catalog.CompleteHTTPBytes != 500000 {
		t.Errorf("CompleteHTTPBytes = %d, want 500000", cfg.Catalog.CompleteHTTPBytes)
	}
	if len(cfg.Security.AllowedDomains) == 0 {
		t.Error("allowed domains empty")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CATALOG_COMPLETE_HINT_BYTES", "250000")
	t.Setenv("QUOTA_ENABLED", "true")
	t.Setenv("RATELIMIT_ENABLED", "no")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("server port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Catalog.CompleteHintBytes != 250000 {
		t.Errorf("CompleteHintBytes = %d, want 250000", cfg.Catalog.CompleteHintBytes)
	}
	if !cfg.Quota.Enabled {
		t.Error("quota not enabled")
	}
	if cfg.RateLimit.Enabled {
		t.Error("rate limit not disabled")
	}
}
