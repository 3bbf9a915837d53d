package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dataquality_backend/internal/adapters/storage"
	apphttp "dataquality_backend/internal/http"
	"dataquality_backend/internal/http/router"
	"dataquality_backend/internal/quality"
	"dataquality_backend/internal/refdata"
	"dataquality_backend/platform/config"
	"dataquality_backend/platform/logger"
	"dataquality_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Reference Data
	// ========================================================================

	index := loadReferenceData(ctx, cfg, log)

	// ========================================================================
	// Modules
	// ========================================================================

	// Shared validator instance for dependency injection
	val := validator.New()

	qualityModule, err := quality.NewModule(index, val, cfg, log)
	if err != nil {
		log.Error("failed to initialize quality module", "error", err)
		panic("failed to initialize quality module: " + err.Error())
	}

	app := &apphttp.App{
		Config:  cfg,
		Logger:  log,
		Health:  qualityModule,
		Modules: []apphttp.Module{qualityModule},
	}

	engine := router.New(app)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// loadReferenceData loads the postcode dataset from object storage when a
// bucket is configured, otherwise from the local file. The service cannot
// score without it, so failure is fatal.
func loadReferenceData(ctx context.Context, cfg *config.Config, log *logger.Logger) *refdata.Index {
	start := time.Now()

	var (
		index  *refdata.Index
		source string
		err    error
	)
	if cfg.IsReferenceDatasetRemote() {
		source = "s3://" + cfg.GetReferenceDatasetBucket() + "/" + cfg.GetReferenceDatasetObject()
		index, err = loadRemoteReferenceData(ctx, cfg, log)
	} else {
		source = cfg.GetReferenceDatasetPath()
		index, err = refdata.Load(source)
	}
	if err != nil {
		log.Error("failed to load reference dataset", "source", source, "error", err)
		panic("failed to load reference dataset: " + err.Error())
	}

	log.DatasetLoaded(source, index.Len(), index.MunicipalityCount(), float64(time.Since(start).Milliseconds()))
	return index
}

func loadRemoteReferenceData(ctx context.Context, cfg *config.Config, log *logger.Logger) (*refdata.Index, error) {
	storageSvc, err := storage.NewMinIOService(cfg)
	if err != nil {
		return nil, err
	}

	bucket := cfg.GetReferenceDatasetBucket()
	if err := withRetry(ctx, log, "reference dataset bucket", 5, 2*time.Second, func() error {
		return storageSvc.EnsureBucketReadable(ctx, bucket)
	}); err != nil {
		return nil, err
	}

	var index *refdata.Index
	err = withRetry(ctx, log, "reference dataset download", 3, 2*time.Second, func() error {
		idx, err := refdata.LoadObject(ctx, storageSvc, bucket, cfg.GetReferenceDatasetObject())
		if err != nil {
			return err
		}
		index = idx
		return nil
	})
	return index, err
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return fmt.Errorf("%s: %w", name, lastErr)
}
