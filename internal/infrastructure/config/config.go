package config

import (
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration
	LogLevel        slog.Level

	// Lesson storage
	DBDriver        string // "sqlite" or "postgres"
	DBDSN           string // empty = driver default
	AutosaveWorkers int

	// Test taking
	AppConfigURL  string // takes precedence over AppConfigPath
	AppConfigPath string // .json, .yaml or .yml
	FetchTimeout  time.Duration
	ExplainDelay  time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	return &Config{
		ServerAddress:   mustGetenv("SERVER_ADDRESS"),
		ShutdownTimeout: mustGetDuration("SHUTDOWN_TIMEOUT"),
		LogLevel:        getLevelDefault("LOG_LEVEL", slog.LevelInfo),
		DBDriver:        getenvDefault("DB_DRIVER", "sqlite"),
		DBDSN:           os.Getenv("DB_DSN"),
		AutosaveWorkers: getIntDefault("AUTOSAVE_WORKERS", 2),
		AppConfigURL:    os.Getenv("APP_CONFIG_URL"),
		AppConfigPath:   os.Getenv("APP_CONFIG_PATH"),
		FetchTimeout:    getDurationDefault("APP_CONFIG_TIMEOUT", 10*time.Second),
		ExplainDelay:    getDurationDefault("EXPLAIN_DELAY", 2*time.Second),
	}
}

func mustGetenv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	return v
}

func mustGetDuration(k string) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getDurationDefault(k string, fallback time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getIntDefault(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		log.Fatalf("config: %s=%q must be a positive integer", k, v)
	}
	return n
}

// getLevelDefault accepts anything slog.Level.UnmarshalText does, such as
// "warn" or "DEBUG+2".
func getLevelDefault(k string, fallback slog.Level) slog.Level {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		log.Fatalf("config: %s=%q is not a valid log level: %v", k, v, err)
	}
	return level
}
