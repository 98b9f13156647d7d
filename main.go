package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	app "github.com/rocketscienceinc/tictactoe-web/internal"
	"github.com/rocketscienceinc/tictactoe-web/internal/config"
	"github.com/rocketscienceinc/tictactoe-web/internal/logger"
	"github.com/rocketscienceinc/tictactoe-web/internal/telemetry"
)

// main - is the entry point of the application. It initializes the configuration, telemetry, logger, and runs the application.
func main() {
	defer func() {
		if err := recover(); err != nil {
			app.Exit(fmt.Errorf("recovered from panic: %v", err))
		}
	}()

	conf := initConfig()

	shutdownTelemetry, err := telemetry.InitOtel(context.Background(), conf.Telemetry)
	if err != nil {
		panic(fmt.Errorf("telemetry init failed: %w", err))
	}

	log := logger.New(os.Stdout, conf.LogLevel, telemetry.Enabled(conf.Telemetry))

	runErr := app.RunApp(log, conf)

	if err = shutdownTelemetry(context.Background()); err != nil {
		log.Error("telemetry shutdown failed", "error", err)
	}

	if runErr != nil {
		panic(fmt.Errorf("app run failed: %w", runErr))
	}
}

// initialize config.
func initConfig() *config.Config {
	baseDir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get current directory: %w", err))
	}

	return config.MustLoad(filepath.Join(baseDir, "./config.yml"))
}
