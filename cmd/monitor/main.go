package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	httpadapter "github.com/couchcryptid/coastal-monitor/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/coastal-monitor/internal/adapter/kafka"
	"github.com/couchcryptid/coastal-monitor/internal/config"
	"github.com/couchcryptid/coastal-monitor/internal/forecast"
	"github.com/couchcryptid/coastal-monitor/internal/generator"
	"github.com/couchcryptid/coastal-monitor/internal/ingest"
	"github.com/couchcryptid/coastal-monitor/internal/observability"
	"github.com/couchcryptid/coastal-monitor/internal/settings"
	"github.com/couchcryptid/coastal-monitor/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	db, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open record store", "error", err, "path", cfg.DBPath)
		os.Exit(1)
	}

	// Kafka fan-out is feature-flagged via KAFKA_ENABLED.
	var publisher ingest.Publisher
	var kafkaPublisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		kafkaPublisher = kafkaadapter.NewPublisher(cfg, logger)
		publisher = kafkaPublisher
		logger.Info("kafka fan-out enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Info("kafka fan-out disabled")
	}

	gen := generator.New()
	set := settings.NewStore()
	recorder := ingest.NewRecorder(db, publisher, logger, metrics)
	loop := ingest.NewLoop(gen, recorder, set, logger, metrics, clockwork.NewRealClock(), cfg.DummyMode)
	engine := forecast.New(db, set, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, httpadapter.Deps{
		Store:     db,
		Recorder:  recorder,
		Loop:      loop,
		Generator: gen,
		Settings:  set,
		Forecast:  engine,
		Readiness: db,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start ingest loop.
	go func() {
		if err := loop.Run(ctx); err != nil {
			logger.Error("ingest loop error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}
	if err := db.Close(); err != nil {
		logger.Error("record store close error", "error", err)
	}

	logger.Info("shutdown complete")
}
