package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Black-And-White-Club/campus-clubs/app"
	"github.com/Black-And-White-Club/campus-clubs/app/observability"
	"github.com/Black-And-White-Club/campus-clubs/config"
	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	obs, err := observability.Init(ctx, cfg.Observability)
	if err != nil {
		log.Fatalf("Failed to initialize observability: %v", err)
	}
	logger := obs.Logger
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to flush traces", attr.Error(err))
		}
	}()

	application, err := app.Initialize(ctx, cfg, obs)
	if err != nil {
		logger.Error("Failed to initialize app", attr.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Error("Error closing application", attr.Error(err))
		}
	}()

	if err := application.Prepare(ctx); err != nil {
		logger.Error("Failed to prepare app", attr.Error(err))
		return
	}

	if err := application.Start(ctx); err != nil {
		logger.Error("Server stopped with error", attr.Error(err))
		return
	}
	logger.Info("Application shut down gracefully")
}
