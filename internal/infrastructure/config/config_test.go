package config_test

import (
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/eduquiz/backend/internal/infrastructure/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9090")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")
	for _, k := range []string{"LOG_LEVEL", "DB_DRIVER", "DB_DSN", "AUTOSAVE_WORKERS", "APP_CONFIG_URL", "APP_CONFIG_PATH", "APP_CONFIG_TIMEOUT", "EXPLAIN_DELAY"} {
		t.Setenv(k, "")
	}

	cfg := config.Load()

	if cfg.ServerAddress != ":9090" || cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("unexpected server settings: %+v", cfg)
	}
	if cfg.DBDriver != "sqlite" || cfg.AutosaveWorkers != 2 {
		t.Errorf("unexpected storage defaults: %+v", cfg)
	}
	if cfg.ExplainDelay != 2*time.Second || cfg.FetchTimeout != 10*time.Second {
		t.Errorf("unexpected timing defaults: %+v", cfg)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected info level, got %v", cfg.LogLevel)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":8080")
	t.Setenv("SHUTDOWN_TIMEOUT", "1s")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_DSN", "postgres://db/eduquiz")
	t.Setenv("AUTOSAVE_WORKERS", "4")
	t.Setenv("APP_CONFIG_URL", "https://example.com/config.json")
	t.Setenv("EXPLAIN_DELAY", "500ms")

	cfg := config.Load()

	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.LogLevel)
	}
	if cfg.DBDriver != "postgres" || cfg.DBDSN != "postgres://db/eduquiz" || cfg.AutosaveWorkers != 4 {
		t.Errorf("unexpected storage settings: %+v", cfg)
	}
	if cfg.AppConfigURL != "https://example.com/config.json" || cfg.ExplainDelay != 500*time.Millisecond {
		t.Errorf("unexpected test settings: %+v", cfg)
	}
}

func TestLoad_LogLevels(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"warn", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"DEBUG+2", slog.LevelDebug + 2},
		{"info", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("SERVER_ADDRESS", ":8080")
			t.Setenv("SHUTDOWN_TIMEOUT", "1s")
			t.Setenv("LOG_LEVEL", tt.value)

			if got := config.Load().LogLevel; got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

// Load exits the process on a bad value, so the check runs in a child process.
func TestLoad_InvalidLogLevelExits(t *testing.T) {
	if os.Getenv("CONFIG_LOAD_CHILD") == "1" {
		config.Load()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestLoad_InvalidLogLevelExits$")
	cmd.Env = append(os.Environ(),
		"CONFIG_LOAD_CHILD=1",
		"SERVER_ADDRESS=:8080",
		"SHUTDOWN_TIMEOUT=1s",
		"LOG_LEVEL=loud",
	)
	err := cmd.Run()

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected the process to exit with an error, got %v", err)
	}
}
