package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Supported persistence backends.
const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

// Config holds the application configuration.
type Config struct {
	ServerPort      int
	ShutdownTimeout time.Duration

	DatabaseDriver string // "sqlite" or "mongo"
	DatabasePath   string // SQLite file
	MongoURI       string
	MongoDatabase  string

	BcryptCost         int
	CORSAllowedOrigins []string

	LogLevel  string
	LogFormat string // "console" or "json"

	EventRetention     time.Duration
	EventPruneSchedule string // cron expression
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "5000"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	bcryptCost, err := strconv.Atoi(getEnv("BCRYPT_COST", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}
	if bcryptCost < 4 || bcryptCost > 31 {
		return nil, fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", bcryptCost)
	}

	shutdownTimeout, err := time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	retention, err := time.ParseDuration(getEnv("EVENT_RETENTION", "720h"))
	if err != nil {
		return nil, fmt.Errorf("invalid EVENT_RETENTION: %w", err)
	}
	if retention <= 0 {
		return nil, fmt.Errorf("EVENT_RETENTION must be positive, got %s", retention)
	}

	cfg := &Config{
		ServerPort:         port,
		ShutdownTimeout:    shutdownTimeout,
		DatabaseDriver:     strings.ToLower(getEnv("DATABASE_DRIVER", DriverSQLite)),
		DatabasePath:       getEnv("DATABASE_PATH", "./courses.db"),
		MongoURI:           getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:      getEnv("MONGO_DATABASE", "course-api"),
		BcryptCost:         bcryptCost,
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "console"),
		EventRetention:     retention,
		EventPruneSchedule: getEnv("EVENT_PRUNE_SCHEDULE", "@hourly"),
	}

	switch cfg.DatabaseDriver {
	case DriverSQLite, DriverMongo:
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}

	return cfg, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
