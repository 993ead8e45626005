// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import "time"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Fetch    FetchConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 0s, disabled)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"0s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 120s).
	// A full cursor walk over a large register is many sequential upstream
	// calls, so this is deliberately generous.
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"120s"`
}

// UpstreamConfig holds settings for the Drata public API.
type UpstreamConfig struct {
	// BaseURL is the API root for the risk-register endpoints.
	BaseURL string `env:"DRATA_API_BASE" default:"https://public-api.drata.com/public/v2"`

	// Token is the fallback bearer token used when a request carries no
	// X-Drata-Token header. Optional; a request without either fails with 400.
	Token string `env:"DRATA_API_TOKEN"`

	// RiskRegisterID identifies the register to aggregate. Checked per
	// request rather than at startup so the dashboard can boot without it.
	RiskRegisterID string `env:"RISK_REGISTER_ID"`

	// RequestTimeout bounds a single upstream page request (default: 30s)
	RequestTimeout time.Duration `env:"DRATA_REQUEST_TIMEOUT" default:"30s"`
}

// FetchConfig holds safety bounds for the pagination loop.
type FetchConfig struct {
	// MaxPages is the default page cap per aggregation (default: 200)
	MaxPages int `env:"FETCH_MAX_PAGES" default:"200"`

	// MaxRecords is the default record cap per aggregation (default: 20000)
	MaxRecords int `env:"FETCH_MAX_RECORDS" default:"20000"`

	// PageSize is the page size requested upstream; 0 lets the API choose.
	// The Drata API accepts 1..50.
	PageSize int `env:"FETCH_PAGE_SIZE" default:"0"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + itoa(c.Port)
	}
	return c.Host + ":" + itoa(c.Port)
}

// itoa converts an int to string without importing strconv in this file.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var b [20]byte
	n := len(b)
	neg := i < 0
	if neg {
		i = -i
	}
	for i > 0 {
		n--
		b[n] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		n--
		b[n] = '-'
	}
	return string(b[n:])
}
