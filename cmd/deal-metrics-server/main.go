package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/deal-metrics/internal/config"
	"github.com/iwvelando/deal-metrics/internal/scenario"
	"github.com/iwvelando/deal-metrics/internal/server"
	"github.com/iwvelando/deal-metrics/pkg/constants"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// A missing .env file is fine; the environment may already be populated.
	_ = godotenv.Load()

	defaultConfig := os.Getenv("DEAL_METRICS_SERVER_CONFIG")
	if defaultConfig == "" {
		defaultConfig = constants.DefaultServerConfigFile
	}
	configLocation := flag.String("config", defaultConfig, "path to server configuration file")
	address := flag.String("address", os.Getenv("DEAL_METRICS_ADDRESS"), "listen address override")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	cfg, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}
	if *address != "" {
		cfg.Address = *address
	}

	logger, err := config.InitializeLogger(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	orchestrator, err := scenario.NewOrchestrator(logger, scenario.DefaultAnalyzers(logger)...)
	if err != nil {
		logger.Fatal("failed to build orchestrator",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           server.NewHandler(logger, orchestrator, cfg.BodySizeBytes(), version),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting deal-metrics server",
			zap.String("op", "main"),
			zap.String("address", cfg.Address),
			zap.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server", zap.String("op", "main"))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
