package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"houseprice/internal/artifact"
	"houseprice/internal/platform/config"
	"houseprice/internal/platform/httpserver"
	"houseprice/internal/platform/logger"
	"houseprice/internal/platform/middleware"
	"houseprice/internal/predict"
	"houseprice/internal/predict/handler"
	"houseprice/internal/predict/metrics"
	"houseprice/internal/predlog"
)

type storeFactory func(ctx context.Context) (*artifact.S3Store, error)

// buildSources assembles the artifact source chain. A failed S3 client
// construction is a remote failure like any other: the local fallback is
// still consulted, and the loader reports the terminal error if it also
// fails.
func buildSources(ctx context.Context, log *slog.Logger, cfg *config.Config, newStore storeFactory) []artifact.Source {
	var sources []artifact.Source
	if cfg.S3Bucket != "" {
		store, err := newStore(ctx)
		if err != nil {
			log.WarnContext(ctx, "s3 store init failed, falling back to local artifacts", "error", err)
		} else {
			sources = append(sources, &artifact.S3Source{
				Store:           store,
				ModelKey:        cfg.ModelKey,
				PreprocessorKey: cfg.PreprocessorKey,
			})
		}
	}
	return append(sources, &artifact.LocalSource{
		ModelPath:        cfg.LocalModelPath,
		PreprocessorPath: cfg.LocalPreprocessorPath,
	})
}

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	// Artifacts must load before the listener binds. A service that cannot
	// predict should never accept traffic.
	sources := buildSources(ctx, log, cfg, func(ctx context.Context) (*artifact.S3Store, error) {
		return artifact.NewS3Store(ctx, cfg.S3Bucket, cfg.S3Region, cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey)
	})

	arts, err := artifact.NewLoader(log, sources...).Load(ctx)
	if err != nil {
		log.ErrorContext(ctx, "artifact load failed", "error", err)
		os.Exit(1)
	}

	opts := []predict.Option{}
	var recorder *predlog.PostgresRecorder
	if cfg.PredictionLogDSN != "" {
		recorder, err = predlog.NewPostgresRecorder(cfg.PredictionLogDSN)
		if err != nil {
			log.ErrorContext(ctx, "prediction log init failed", "error", err)
			os.Exit(1)
		}
		defer recorder.Close()
		opts = append(opts, predict.WithRecorder(recorder))
	}

	service := predict.NewService(arts, log, metrics.New(), opts...)
	h := handler.New(service, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logger(log))
	r.Use(middleware.Timeout(time.Duration(cfg.RequestTimeoutSeconds) * time.Second))
	h.Register(r)
	r.Handle("/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Addr, r)

	log.InfoContext(ctx, "starting inference server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.ErrorContext(ctx, "server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.ErrorContext(ctx, "graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.InfoContext(ctx, "server stopped")
}
