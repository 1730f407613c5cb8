package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/eduquiz/backend/internal/api"
	"github.com/eduquiz/backend/internal/configsource"
	"github.com/eduquiz/backend/internal/domain/testsession"
	"github.com/eduquiz/backend/internal/id"
	"github.com/eduquiz/backend/internal/infrastructure/config"
	"github.com/eduquiz/backend/internal/service"
	"github.com/eduquiz/backend/internal/store"

	_ "github.com/eduquiz/backend/docs" // swagger docs
)

// @title           EduQuiz API
// @version         1.0
// @description     Lessons with quizzes for authors and a scored self-assessment test for takers.

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	ctx := context.Background()

	// ── Dependencies ────────────────────────────────────────────────
	db, err := store.Open(ctx, store.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		logger.Error("failed to open database", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	st := store.NewSQLStore(db, store.Driver(cfg.DBDriver))
	defer st.Close()

	autosaver := service.NewAutosaver(st, cfg.AutosaveWorkers, logger)

	lessons, err := service.NewLessonService(ctx, st, autosaver, id.Random, logger)
	if err != nil {
		logger.Error("failed to load lessons", "error", err)
		os.Exit(1)
	}

	tests := service.NewTestService(
		configSource(cfg, logger),
		testsession.SessionConfig{ExplainDelay: cfg.ExplainDelay},
		logger,
	)

	handler := api.NewHandler(lessons, tests, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	api.RegisterRoutes(mux, handler)

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// ── Middleware chain: Logging → CORS → mux ──────────────────────
	logged := api.Logging(logger)(api.CORS(mux))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress, "driver", cfg.DBDriver)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}

	// ListenAndServe returns as soon as Shutdown starts; in-flight edits may
	// still queue snapshots until it returns.
	<-shutdownDone
	autosaver.Close()
	logger.Info("server stopped")
}

// configSource picks where the test configuration comes from. A URL wins over
// a local file; with neither, starting a test reports the configuration as
// unavailable.
func configSource(cfg *config.Config, logger *slog.Logger) configsource.Source {
	switch {
	case cfg.AppConfigURL != "":
		logger.Info("test configuration", "source", "http", "url", cfg.AppConfigURL)
		return configsource.NewCached(configsource.NewHTTPSource(cfg.AppConfigURL, cfg.FetchTimeout))
	case cfg.AppConfigPath != "":
		logger.Info("test configuration", "source", "file", "path", cfg.AppConfigPath)
		return configsource.NewCached(configsource.NewFileSource(cfg.AppConfigPath))
	default:
		logger.Warn("no test configuration source set; APP_CONFIG_URL or APP_CONFIG_PATH")
		return nil
	}
}
