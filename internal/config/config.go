// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import "time"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Import   ImportConfig
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

	// WriteTimeout is the maximum duration for writing response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// StoreConfig holds durable state settings.
type StoreConfig struct {
	// Backend selects the durable slot: sqlite, postgres or memory
	// (default: sqlite). Memory keeps nothing across restarts.
	Backend string `env:"STORE_BACKEND" default:"sqlite"`

	// SQLitePath is the sqlite database file (default: loredex.db)
	SQLitePath string `env:"STORE_SQLITE_PATH" default:"loredex.db"`

	// PostgresURL is the connection string, required when Backend is postgres
	// Supports DATABASE_URL as an alternate for compatibility
	PostgresURL string `env:"STORE_POSTGRES_URL" envAlt:"DATABASE_URL"`

	// StateKey is the slot key the whole state blob lives under
	StateKey string `env:"STORE_STATE_KEY" default:"loredex/state"`
}

// ImportConfig holds ingestion settings.
type ImportConfig struct {
	// MaxFileSize is the maximum allowed upload size in bytes (default: 100MB)
	MaxFileSize int64 `env:"IMPORT_MAX_FILE_SIZE" default:"104857600"`

	// BootstrapURL fetches the default source over HTTP when set
	BootstrapURL string `env:"IMPORT_BOOTSTRAP_URL"`

	// BootstrapPath is the local default source (default: base-items.csv)
	BootstrapPath string `env:"IMPORT_BOOTSTRAP_PATH" default:"base-items.csv"`

	// BootstrapDelimiter separates fields in the bootstrap file (default: ;)
	BootstrapDelimiter string `env:"IMPORT_BOOTSTRAP_DELIMITER" default:";"`

	// UploadDelimiter separates fields in user uploads (default: ,)
	UploadDelimiter string `env:"IMPORT_UPLOAD_DELIMITER" default:","`
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
	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`
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

// Delimiter returns the single-rune delimiter for s, defaulting to comma
// when the setting is empty or longer than one rune.
func Delimiter(s string) rune {
	r := []rune(s)
	if len(r) != 1 {
		return ','
	}
	return r[0]
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
