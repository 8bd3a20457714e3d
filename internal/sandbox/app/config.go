package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	JWTSecret string // Required in prod: HMAC secret for session tokens
	Issuer    string // Optional: issuer claim for session tokens (default: sandbox-api)

	DatabaseFile     string        // Optional: path to SQLite session store (default: ./sandbox.db)
	SimulatedLatency time.Duration // Optional: artificial delay per service call (default: 0)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)

	RateLimit  int           // Optional: service fixed-window budget (default: 10)
	RateWindow time.Duration // Optional: service fixed-window length (default: 1m)
}

func LoadConfig() Config {
	cfg := Config{
		JWTSecret:           os.Getenv("SANDBOX_JWT_SECRET"),
		Issuer:              getEnvOrDefault("SANDBOX_ISSUER", "sandbox-api"),
		DatabaseFile:        getEnvOrDefault("SANDBOX_DATABASE_FILE", "sandbox.db"),
		SimulatedLatency:    getEnvDurationOrDefault("SANDBOX_SIMULATED_LATENCY", 0),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		RateLimit:           getEnvIntOrDefault("SANDBOX_RATE_LIMIT", 0),
		RateWindow:          getEnvDurationOrDefault("SANDBOX_RATE_WINDOW", 0),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Accepts duration strings ("250ms", "1m") or bare integer seconds.
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
