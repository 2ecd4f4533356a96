// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// MockURLScheme is the reserved URL scheme that activates the deterministic
// zero-key bypass, used exclusively for testing without a live key service.
const MockURLScheme = "mock://"

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// VaultURL is the base URL of the Vault server (e.g., "https://vault:8200").
	// A URL starting with "mock://" activates the deterministic test bypass.
	VaultURL string
	// VaultToken is the authentication token for the Vault server.
	VaultToken string
	// VaultMount is the mount path of the transit engine.
	VaultMount string
	// VaultTimeout bounds each request to the Vault server.
	VaultTimeout time.Duration

	// KeyCacheTTL is the time-to-live for cached key material.
	// A non-positive value disables caching.
	KeyCacheTTL time.Duration

	// SealScheme is the AEAD scheme used for new seal operations
	// ("aes-gcm" or "chacha20-poly1305").
	SealScheme string

	// RateLimitEnabled indicates whether per-IP rate limiting is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of requests allowed per second per IP.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size for rate limiting.
	RateLimitBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost: env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort: env.GetInt("SERVER_PORT", 8080),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Vault key service
		VaultURL:     env.GetString("PII_VAULT_URL", ""),
		VaultToken:   env.GetString("PII_VAULT_TOKEN", ""),
		VaultMount:   env.GetString("PII_VAULT_MOUNT", "transit"),
		VaultTimeout: env.GetDuration("PII_VAULT_TIMEOUT_SECONDS", 10, time.Second),

		// Key cache
		KeyCacheTTL: env.GetDuration("PII_VAULT_CACHE_TTL_SECONDS", 300, time.Second),

		// Sealing scheme
		SealScheme: env.GetString("PII_SEAL_SCHEME", "aes-gcm"),

		// Rate Limiting
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 10.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 20),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "piivault"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// IsMockMode reports whether the Vault URL uses the reserved mock scheme.
// In mock mode all key resolution uses a fixed all-zero key and the key
// service is never contacted.
func (c *Config) IsMockMode() bool {
	return strings.HasPrefix(c.VaultURL, MockURLScheme)
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	case "info", "warn", "error":
		return "release"
	default:
		return "release"
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	// Search for .env file recursively up the directory tree
	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// .env file found, load it
			_ = godotenv.Load(envPath)
			return
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}
}
