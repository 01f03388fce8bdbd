package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"tally/internal/audit"
	"tally/internal/configuration"
	"tally/internal/points"
	"tally/internal/score"
	"tally/internal/server"
)

// prepareLogger configures the global slog logger. Takes a textual log level
// (for example "debug", "info", "warn", "error") and installs a
// JSON-formatted handler on os.Stdout. An unrecognized level falls back to
// Info.
func prepareLogger(level string) {
	var logLevel slog.Level

	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn", "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	logger := slog.New(handler)
	slog.SetDefault(logger)
}

// On configuration or component initialization errors the application exits
// with code 1.
func main() {
	configPath := flag.String("config", "/etc/tally/config.yaml", "configuration file")
	flag.Parse()
	config, err := configuration.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Unable to load configuration", "error", err)
		os.Exit(1)
	}
	prepareLogger(config.Logger.Level)

	appCtx, appCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer appCancel()

	pointsRepo := points.NewMemoryRepository(config.Points.Ttl)
	go pointsRepo.Serve()

	var recorder audit.Recorder = audit.NopRecorder{}
	if len(config.Audit.File) != 0 {
		recorder = audit.NewJsonRecorder(
			config.Audit.File,
			config.Audit.Size,
			config.Audit.Amount,
			config.Audit.Recent,
		)
	}

	calculator := score.NewCalculator()
	srv := server.NewServer(
		config.Server.Address,
		pointsRepo,
		calculator,
		recorder,
	)
	go srv.ListenAndServe()
	slog.Info("Server listening " + config.Server.Address)
	<-appCtx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second*10)
	defer shutdownCancel()

	err = srv.Shutdown(shutdownCtx)
	if err != nil {
		slog.Error("Server shutdown", "error", err)
	}
	slog.Info("Server stopped", "stored", pointsRepo.Len(), "recent", len(recorder.Recent()))

	pointsRepo.Stop()
	recorder.Close()
}
