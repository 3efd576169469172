package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"adlytics/internal/adapter/csvsource"
	httpadapter "adlytics/internal/adapter/http"
	"adlytics/internal/adapter/modelstore"
	"adlytics/internal/adapter/openai"
	"adlytics/internal/adapter/postgres"
	"adlytics/internal/adapter/usecase"
	"adlytics/internal/config"
	"adlytics/internal/core/port"
	"adlytics/internal/core/predict"
	"adlytics/internal/db"
	"adlytics/internal/metrics"
)

// main is the entry point of the adlytics service. It loads
// configuration, optionally runs database migrations, wires the chosen
// record source, the narrative client and the model store into the
// usecases, then starts the HTTP server. On receiving a termination
// signal it gracefully shuts down the server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	var logger *slog.Logger
	{
		// Initialise structured logger based on configuration.
		var handler slog.Handler
		level := cfg.Log.SlogLevel()
		switch cfg.Log.SlogFormat() {
		case "json":
			handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		default:
			handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		}
		logger = slog.New(handler)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var source port.RecordSource
	switch cfg.Data.Source {
	case "csv":
		source = csvsource.New(cfg.Data.CSVPath, logger)
		logger.Info("using csv record source", slog.String("path", cfg.Data.CSVPath))
	default:
		if cfg.Psql.RunMigrations {
			if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
				logger.Error("migration error", slog.Any("error", err))
			} else {
				logger.Info("migrations applied successfully")
			}
		}
		pool, err := db.NewPostgresPool(ctx, cfg.Psql)
		if err != nil {
			logger.Error("database connection error", slog.Any("error", err))
			os.Exit(1)
		}
		defer pool.Close()

		if cfg.Psql.SeedDemo {
			if err = db.Seed(ctx, pool); err != nil {
				logger.Error("seed error", slog.Any("error", err))
			} else {
				logger.Info("demo ad events seeded")
			}
		}
		source = postgres.NewEventRepository(pool)
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	var narrative port.NarrativeClient
	if cfg.Narrative.Enabled() {
		narrative = openai.New(cfg.Narrative, logger)
		logger.Info("narrative service enabled", slog.String("model", cfg.Narrative.Model))
	} else {
		logger.Info("narrative service disabled, rule-based summaries only")
	}

	reports := usecase.NewReportService(source, narrative, logger, m)
	predicts := usecase.NewPredictService(
		source,
		modelstore.New(cfg.Predictor.Path),
		predict.Config{
			Trees:    cfg.Predictor.Trees,
			MaxDepth: cfg.Predictor.MaxDepth,
			MinLeaf:  cfg.Predictor.MinLeaf,
			Seed:     cfg.Predictor.Seed,
		},
		logger, m)

	handler := httpadapter.NewHandler(reports, predicts, logger, m, registry)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
}
