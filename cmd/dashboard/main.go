package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/joho/godotenv"
	"github.com/nickhafer/ufo-sightings-dashboard/internal/adapter/csvsource"
	"github.com/nickhafer/ufo-sightings-dashboard/internal/adapter/httpadapter"
	kafkaadapter "github.com/nickhafer/ufo-sightings-dashboard/internal/adapter/kafka"
	"github.com/nickhafer/ufo-sightings-dashboard/internal/adapter/mapbox"
	"github.com/nickhafer/ufo-sightings-dashboard/internal/config"
	"github.com/nickhafer/ufo-sightings-dashboard/internal/dashboard"
	"github.com/nickhafer/ufo-sightings-dashboard/internal/domain"
	"github.com/nickhafer/ufo-sightings-dashboard/internal/observability"
	"github.com/nickhafer/ufo-sightings-dashboard/internal/pipeline"
)

type extractor interface {
	pipeline.BatchExtractor
	io.Closer
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to read .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	page, err := dashboard.ParsePage(cfg.Containers)
	if err != nil {
		logger.Error("invalid container list", "error", err)
		os.Exit(1)
	}

	// Place lookups on marker details are feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN.
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	source, err := newExtractor(cfg, logger)
	if err != nil {
		logger.Error("failed to open data source", "source", cfg.DataSource, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The dispatcher outlives ctx so in-flight requests drain during shutdown.
	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	dispatcher := dashboard.NewDispatcher()
	dispatcherDone := make(chan struct{})
	go func() {
		dispatcher.Run(dispatcherCtx)
		close(dispatcherDone)
	}()

	dash := dashboard.New(page, dispatcher, geocoder, logger, metrics)
	transformer := pipeline.NewTransformer(logger, metrics)
	p := pipeline.New(source, transformer, dash, logger, metrics, cfg.BatchSize, cfg.LoadMaxRetries)

	srv := httpadapter.NewServer(cfg.HTTPAddr, observability.ReadinessGroup{p, dash}, dash, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Load the data set once; the dashboard serves it until shutdown.
	go func() {
		if err := p.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("dataset load failed", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	stopDispatcher()
	<-dispatcherDone
	if err := source.Close(); err != nil {
		logger.Error("data source close error", "error", err)
	}

	logger.Info("shutdown complete")
}

func newExtractor(cfg *config.Config, logger *slog.Logger) (extractor, error) {
	switch cfg.DataSource {
	case config.SourceKafka:
		logger.Info("loading sightings from kafka",
			"brokers", cfg.KafkaBrokers,
			"topic", cfg.KafkaSourceTopic,
			"group_id", cfg.KafkaGroupID,
		)
		return kafkaadapter.NewReader(cfg, logger), nil
	default:
		logger.Info("loading sightings from csv", "path", cfg.CSVPath)
		src, err := csvsource.Open(cfg.CSVPath, logger)
		if err != nil {
			return nil, err
		}
		return src, nil
	}
}
