// main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"travel-booking/cmd"
	"travel-booking/internal/wire"
	"travel-booking/pkg/metrics"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}

	logger.Debug("Starting client",
		zap.String("app", config.App.Name),
		zap.String("api_base", config.API.BaseURL),
		zap.Bool("debug", config.App.Debug),
	)

	// Wire all dependencies
	app, err := wire.Wiring(config, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}

	// Optional metrics endpoint, mainly useful for the watch command
	if port := config.Client.MetricsPort; port != "" {
		go func() {
			logger.Info("Metrics listening", zap.String("port", port))
			if err := metrics.Serve(port, logger); err != nil {
				logger.Warn("Metrics server stopped", zap.Error(err))
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := cmd.Run(ctx, app, logger, os.Args[1:])

	stop()
	logger.Sync()
	os.Exit(code)
}
