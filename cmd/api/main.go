package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	api "ziluri/internal/adapter/http"
	"ziluri/internal/adapter/telemetry"
	"ziluri/pkg/config"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		cfg.Environment = "production"
		cfg.EnforceHTTPS = true
	}

	logger, err := config.NewLokiLogger("ziluri", cfg.LokiURL)
	if err != nil {
		log.Fatal("Failed to initialize Loki logger:", err)
	}
	defer logger.Sync()

	tel, err := telemetry.NewContainer(telemetry.Config{
		ServiceName:    "ziluri",
		ServiceVersion: "1.0.0",
		MetricsPort:    cfg.MetricsPort,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Environment:    cfg.Environment,
	}, slog.Default())

	if err != nil {
		log.Fatal("Failed to initialize telemetry:", err)
	}

	defer tel.Shutdown(ctx)

	tel.AppMetrics.StartSystemMetrics(ctx)

	probe := tel.NewTelemetryProbe(slog.Default())

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		api.StartServerWithConfig(tel.AppMetrics, logger, probe, cfg)
	}()

	<-c
	logger.Logger.Info("Shutting down gracefully...")
}
