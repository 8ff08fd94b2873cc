package service

import (
	"testing"

	"streamcatalog/internal/model"
)

func TestRateLimitWindow(t *testing.T) {
	rls := NewRateLimitService(&model.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 3,
		CleanupInterval:   3600,
	})
	defer rls.Stop()

	for i := 0; i < 3; i++ {
		if !rls.IsAllowed("1.2.3.4") {
			t.Fatalf("request %d blocked below limit", i+1)
		}
	}
	if rls.IsAllowed("1.2.3.4") {
		t.Error("request above limit allowed")
	}
	// Other IPs are unaffected
	if !rls.IsAllowed("5.6.7.8") {
		t.Error("independent IP blocked")
	}
}

func TestRateLimitBurstHeadroom(t *testing.T) {
	rls := NewRateLimitService(&model.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 2,
		BurstSize:         2,
		CleanupInterval:   3600,
	})
	defer rls.Stop()

	for i := 0; i < 4; i++ {
		if !rls.IsAllowed("1.2.3.4") {
			t.Fatalf("request %d blocked within burst headroom", i+1)
		}
	}
	if rls.IsAllowed("1.2.3.4") {
		t.Error("request above burst headroom allowed")
	}
}

func TestRateLimitDisabled(t *testing.T) {
	rls := NewRateLimitService(&model.RateLimitConfig{Enabled: false})
	for i := 0; i < 100; i++ {
		if !rls.IsAllowed("1.2.3.4") {
			t.Fatal("disabled limiter blocked a request")
		}
	}
	if rls.GetRemaining("1.2.3.4") != -1 {
		t.Error("disabled limiter must report unlimited")
	}
}

func TestRateLimitRemaining(t *testing.T) {
	rls := NewRateLimitService(&model.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 5,
		CleanupInterval:   3600,
	})
	defer rls.Stop()

	rls.IsAllowed("9.9.9.9")
	rls.IsAllowed("9.9.9.9")
	if got := rls.GetRemaining("9.9.9.9"); got != 3 {
		t.Errorf("remaining = %d, want 3", got)
	}
	if got := rls.GetRemaining("unseen"); got != 5 {
		t.Errorf("remaining for unseen IP = %d, want 5", got)
	}
}

func TestQuotaAccounting(t *testing.T) {
	qs := NewQuotaService(&model.QuotaConfig{
		Enabled:      true,
		DailyLimitMB: 100,
		ResetHour:    0,
	})
	defer qs.Stop()

	allowed, remaining := qs.CheckQuota("1.2.3.4", 50)
	if !allowed || remaining != 100 {
		t.Fatalf("fresh quota = %v, %d", allowed, remaining)
	}

	qs.AddUsage("1.2.3.4", 80)
	allowed, remaining = qs.CheckQuota("1.2.3.4", 50)
	if allowed || remaining != 20 {
		t.Errorf("over-request = %v, %d, want denied with 20 remaining", allowed, remaining)
	}

	qs.AddUsage("1.2.3.4", 20)
	allowed, remaining = qs.CheckQuota("1.2.3.4", 0)
	if allowed || remaining != 0 {
		t.Errorf("exhausted quota = %v, %d", allowed, remaining)
	}
}

func TestQuotaDisabled(t *testing.T) {
	qs := NewQuotaService(&model.QuotaConfig{Enabled: false, DailyLimitMB: 10})
	allowed, remaining := qs.CheckQuota("1.2.3.4", 1000)
	if !allowed || remaining != 10 {
		t.Errorf("disabled quota = %v, %d", allowed, remaining)
	}
	info := qs.GetQuotaInfo("1.2.3.4")
	if enabled, _ := info["enabled"].(bool); enabled {
		t.Error("disabled quota reports enabled")
	}
}
