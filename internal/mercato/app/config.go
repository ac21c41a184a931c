package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer    string        // Issuer claim stamped on access tokens (default: mercato)
	JWTSecret string        // Required: HMAC secret for signing tokens (min 32 bytes)
	Algorithm string        // JWT signing algorithm (HS256, HS384, HS512) (default: HS256)
	AccessTTL time.Duration // Access token lifetime (default: 30m)

	DatabaseFile string // Path to SQLite database file (default: ./mercato.db)
	PepperFile   string // Path to file containing pepper for password hashing (default: ./pepper)

	SMTPHost     string // Optional: SMTP relay host; welcome emails are skipped when empty
	SMTPPort     int    // SMTP relay port (default: 587)
	SMTPUsername string // Optional: SMTP auth username
	SMTPPassword string // Optional: SMTP auth password
	SMTPFrom     string // From address on outgoing mail

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:    getEnvOrDefault("JWT_ISSUER", "mercato"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		Algorithm: getEnvOrDefault("JWT_ALGORITHM", "HS256"),
		AccessTTL: getEnvDurationOrDefault("JWT_EXPIRE_MINUTES", 30*time.Minute),

		DatabaseFile: getEnvOrDefault("DATABASE_FILE", "mercato.db"),
		PepperFile:   getEnvOrDefault("PEPPER_FILE", "pepper"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvIntOrDefault("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     getEnvOrDefault("SMTP_FROM", "no-reply@mercato.local"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
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

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
