package model

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Extractor ExtractorConfig
	Logging   LoggingConfig
	Security  SecurityConfig
	Quota     QuotaConfig
	RateLimit RateLimitConfig
	Catalog   CatalogConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port    int
	Host    string
	Timeout int // seconds
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	DownloadDir     string
	MaxVideoSizeMB  int
	CleanupInterval int // seconds
	FileTTLSeconds  int // Time to live for downloaded files
}

// ExtractorConfig holds extractor worker configuration
type ExtractorConfig struct {
	Port    int
	Host    string
	Timeout int // seconds
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level        string
	FilePath     string
	RotationSize int64 // bytes
	MaxBackups   int
	MaxAge       int // days
}

// SecurityConfig holds security configuration
type SecurityConfig struct {
	AllowedDomains []string
	RequestTimeout int // seconds
	RateLimitPerIP int
}

// QuotaConfig holds user download quota configuration
type QuotaConfig struct {
	Enabled      bool  // Enable quota limiting
	DailyLimitMB int64 // Daily quota limit in MB per IP
	ResetHour    int   // Hour (0-23) to reset quota (midnight = 0)
	ResetMinute  int   // Minute (0-59) to reset quota
}

// RateLimitConfig holds rate limiting configuration for DDoS protection
type RateLimitConfig struct {
	Enabled           bool // Enable rate limiting
	RequestsPerMinute int  // Max requests per minute per IP
	BurstSize         int  // Max burst size
	CleanupInterval   int  // Interval in seconds to clean up old entries
}

// CatalogConfig holds classifier tuning for the catalog engine.
// The size cutoffs decide when an ambiguous video-extension descriptor
// counts as a complete (muxed) stream.
type CatalogConfig struct {
	CompleteHintBytes int64 // min filesize for h264/bytevc1 identifier hint
	CompleteHTTPBytes int64 // min filesize for plain http(s) protocol
}
