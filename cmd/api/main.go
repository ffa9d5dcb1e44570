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

	"product-catalog/internal/config"
	"product-catalog/internal/database"
	"product-catalog/internal/handler"
	"product-catalog/internal/middleware"
	"product-catalog/internal/repository"
	"product-catalog/internal/router"
	"product-catalog/internal/seed"
	"product-catalog/internal/service"
	"product-catalog/internal/telemetry"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Str("storage_backend", cfg.Storage.Backend).Msg("starting product-catalog API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := telemetry.InitTracing(ctx, cfg.Telemetry, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Error().Err(err).Msg("failed to flush traces")
		}
	}()

	newService, closeStorage, err := newServiceFactory(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStorage()

	if cfg.Seed.Enabled {
		if err := seedCatalogue(ctx, cfg, newService, logger); err != nil {
			return fmt.Errorf("failed to seed catalogue: %w", err)
		}
	}

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(newService, logger)

	opts := router.Options{APIKey: cfg.Auth.APIKey}
	if cfg.Metrics.Enabled {
		metrics, err := middleware.NewMetrics()
		if err != nil {
			return fmt.Errorf("failed to initialize metrics: %w", err)
		}
		opts.Metrics = metrics
	}

	// Initialize router
	mux := router.New(productHandler, opts, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      otelhttp.NewHandler(mux, "product-catalog"),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newServiceFactory wires the configured storage backend and returns a factory
// that builds one service per request, plus a function releasing the backend.
func newServiceFactory(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (service.ProductServiceFactory, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		repo := repository.NewMemoryProductRepository(logger)
		return func() service.ProductService {
			return service.NewProductService(repo, logger)
		}, func() {}, nil

	default:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}

		if err := database.Migrate(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
		}

		return func() service.ProductService {
			return service.NewProductService(repository.NewProductRepository(pool, logger), logger)
		}, pool.Close, nil
	}
}

// seedCatalogue loads the seed file, from S3 when enabled with local fallback, and adds it.
func seedCatalogue(ctx context.Context, cfg *config.Config, newService service.ProductServiceFactory, logger zerolog.Logger) error {
	var s3Loader seed.Loader
	if cfg.S3.Enabled {
		loader, err := seed.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			s3Loader = loader
		}
	} else {
		logger.Info().Msg("using local file system for seed file (S3 disabled)")
	}

	loader := seed.NewFallbackLoader(s3Loader, seed.NewFileLoader(logger), cfg.S3.Prefix, logger)

	_, err := seed.NewSeeder(newService, logger).Run(ctx, loader, cfg.Seed.File)
	return err
}
