// Command etl runs the wildfire-climate analysis pipeline once: it reads the
// three raw CSV datasets, writes the processed tables and charts, and exits
// non-zero when any dataset failed its load or schema check.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/couchcryptid/wildfire-climate-etl/internal/config"
	"github.com/couchcryptid/wildfire-climate-etl/internal/loader"
	"github.com/couchcryptid/wildfire-climate-etl/internal/observability"
	"github.com/couchcryptid/wildfire-climate-etl/internal/pipeline"
	"github.com/couchcryptid/wildfire-climate-etl/internal/report"
	"github.com/couchcryptid/wildfire-climate-etl/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg, logger); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	for _, dir := range []string{cfg.ProcessedDir, cfg.OutputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	metrics := observability.NewMetrics()

	// Snapshot persistence is opt-in via SQLITE_PATH.
	var snapshot pipeline.Snapshotter
	if cfg.SQLitePath != "" {
		snap, err := repository.Open(cfg.SQLitePath)
		if err != nil {
			return err
		}
		defer func() {
			if err := snap.Close(); err != nil {
				logger.Error("snapshot close error", "error", err)
			}
		}()
		snapshot = snap
		logger.Info("snapshot enabled", "path", cfg.SQLitePath)
	}

	p := pipeline.New(
		loader.New(cfg.RawDataDir, logger, metrics),
		report.NewCSVWriter(cfg.ProcessedDir, logger, metrics),
		report.NewChartRenderer(cfg.OutputDir, logger, metrics),
		report.NewDashboard(cfg.OutputDir, logger),
		snapshot,
		logger,
		metrics,
	)

	runErr := p.Run()

	if cfg.PushgatewayURL != "" {
		if err := metrics.Push(cfg.PushgatewayURL); err != nil {
			logger.Warn("metrics push failed", "error", err)
		}
	}

	return runErr
}
