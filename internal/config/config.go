package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Persistence tiers for stored credentials. Chosen once at startup; the
// store still clears both tiers on logout regardless of this setting.
const (
	PersistDurable = "durable"
	PersistSession = "session"
)

// Config holds all client configuration.
// Values are loaded from environment variables with sensible defaults.
type Config struct {
	// Backend
	APIBaseURL string
	LogLevel   string

	// Credential storage
	PersistMode string
	StateDir    string

	// HTTP client
	HTTPTimeout time.Duration

	// Resilience
	MaxRetries     int
	InitialBackoff time.Duration
	MaxConcurrency int

	// Cache / polling
	CacheTTL     time.Duration
	PollInterval time.Duration

	// Observability
	OTLPEndpoint string
	MetricsAddr  string
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		APIBaseURL: getEnv("FIELDOS_API_URL", "http://localhost:8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		PersistMode: getEnv("FIELDOS_PERSIST", PersistDurable),
		StateDir:    getEnv("FIELDOS_STATE_DIR", defaultStateDir()),

		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 10*time.Second),

		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		InitialBackoff: getEnvDuration("INITIAL_BACKOFF", 100*time.Millisecond),
		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 10),

		CacheTTL:     getEnvDuration("CACHE_TTL", 30*time.Second),
		PollInterval: getEnvDuration("POLL_INTERVAL", 15*time.Second),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		MetricsAddr:  getEnv("METRICS_ADDR", "127.0.0.1:9465"),
	}
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fieldos"
	}
	return filepath.Join(home, ".fieldos")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
