// Package config holds process configuration for the microsite backend.
package config

import (
	"time"

	"yatstats/internal/tenancy"
)

// Config contains process configuration.
type Config struct {
	// Addr is the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Env selects development behavior. In "development" the host resolver
	// never produces a tenant key.
	Env string `koanf:"env"`

	// LogMode is "production" (JSON) or "development" (console).
	LogMode  string `koanf:"log_mode"`
	LogLevel string `koanf:"log_level"`

	DatabaseURL       string        `koanf:"database_url"`
	DBMaxConns        int32         `koanf:"db_max_conns"`
	DBMinConns        int32         `koanf:"db_min_conns"`
	DBMaxConnIdleTime time.Duration `koanf:"db_max_conn_idle_time"`
	DBMaxConnLifetime time.Duration `koanf:"db_max_conn_lifetime"`
	QueryTimeout      time.Duration `koanf:"query_timeout"`

	// PrimarySiteURL is where unknown tenants are redirected.
	PrimarySiteURL     string   `koanf:"primary_site_url"`
	ReservedSubdomains []string `koanf:"reserved_subdomains"`

	RedisAddr     string        `koanf:"redis_addr"`
	RedisPassword string        `koanf:"redis_password"`
	RedisDB       int           `koanf:"redis_db"`
	ViewCacheTTL  time.Duration `koanf:"view_cache_ttl"`

	MinioEndpoint    string        `koanf:"minio_endpoint"`
	MinioAccessKey   string        `koanf:"minio_access_key"`
	MinioSecretKey   string        `koanf:"minio_secret_key"`
	MinioUseSSL      bool          `koanf:"minio_use_ssl"`
	CrestBucket      string        `koanf:"crest_bucket"`
	CrestURLExpiry   time.Duration `koanf:"crest_url_expiry"`
	CrestPlaceholder string        `koanf:"crest_placeholder"`

	// RateLimitRequests per RateLimitWindow per client IP. Zero disables it.
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`

	PoolStatsInterval time.Duration `koanf:"pool_stats_interval"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Addr:               ":8080",
		Env:                "production",
		LogMode:            "production",
		LogLevel:           "info",
		DBMaxConns:         10,
		DBMinConns:         1,
		DBMaxConnIdleTime:  5 * time.Minute,
		DBMaxConnLifetime:  time.Hour,
		QueryTimeout:       5 * time.Second,
		PrimarySiteURL:     "https://yatstats.com",
		ReservedSubdomains: append([]string(nil), tenancy.DefaultReservedAliases...),
		CrestBucket:        "crests",
		CrestURLExpiry:     time.Hour,
		CrestPlaceholder:   "/assets/img/placeholder.png",
		RateLimitRequests:  120,
		RateLimitWindow:    time.Minute,
		PoolStatsInterval:  15 * time.Second,
		ShutdownTimeout:    10 * time.Second,
	}
}

// IsDevelopment reports whether the process runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// CacheEnabled reports whether the composite view cache should be wired.
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != "" && c.ViewCacheTTL > 0
}

// StorageEnabled reports whether crest lookups go to object storage.
func (c *Config) StorageEnabled() bool {
	return c.MinioEndpoint != ""
}
