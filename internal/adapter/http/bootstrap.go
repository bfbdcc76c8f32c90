package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"ziluri/internal/adapter/database/postgres"
	database "ziluri/internal/adapter/database/sqlite"
	"ziluri/internal/adapter/http/routes"
	"ziluri/internal/core/port"
	"ziluri/internal/core/telemetry"
	"ziluri/pkg/config"
)

func StartServer(metrics *telemetry.AppMetrics, logger *config.LokiLogger, probe port.Telemetry) {
	StartServerWithConfig(metrics, logger, probe, config.GetDefaultConfig())
}

func StartServerWithConfig(metrics *telemetry.AppMetrics, logger *config.LokiLogger, probe port.Telemetry, cfg *config.AppConfig) {
	db := openDatabase(cfg)
	defer db.Close()

	container := NewContainer(db, logger, cfg, probe)
	defer container.Cache.Close()

	router := routes.SetupRouterWithConfig(routes.HandlersConfig{
		SessionHandler:  container.SessionHandler,
		GroupHandler:    container.GroupHandler,
		TodoHandler:     container.TodoHandler,
		CalendarHandler: container.CalendarHandler,
		MemoHandler:     container.MemoHandler,
		ProfileHandler:  container.ProfileHandler,
	}, metrics, logger, cfg)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	slog.Info("Server starting",
		"port", port,
		"environment", cfg.Environment,
		"database_driver", cfg.DatabaseDriver,
		"cache_driver", cfg.CacheDriver,
		"rate_limit_enabled", cfg.RateLimitEnabled,
		"https_enforced", cfg.EnforceHTTPS)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Server failed to start", "error", err)
	}
}

func openDatabase(cfg *config.AppConfig) *database.DB {
	if cfg.DatabaseDriver == "postgres" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := postgres.NewDB(ctx, cfg.DatabaseURL, cfg.MigrationsPath)
		if err != nil {
			slog.Error("Postgres connection failed", "error", err)
			panic(err)
		}
		return db
	}

	db, err := database.NewDB(cfg.DatabasePath, cfg.MigrationsPath)
	if err != nil {
		slog.Error("SQLite open failed", "error", err)
		panic(err)
	}
	return db
}
