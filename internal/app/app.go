// Package app wires the WellNodal API server from configuration: logging,
// PostgreSQL with migrations, redis cache, kafka events, minio archive, the
// physics-engine client, the application services, and the HTTP interface.
// Both cmd/apiserver and the CLI serve command run through it.
package app

import (
	"context"

	appanalysis "github.com/turtacn/WellNodal/internal/application/analysis"
	appfluid "github.com/turtacn/WellNodal/internal/application/fluid"
	appwellbore "github.com/turtacn/WellNodal/internal/application/wellbore"
	"github.com/turtacn/WellNodal/internal/config"
	"github.com/turtacn/WellNodal/internal/infrastructure/database/postgres"
	"github.com/turtacn/WellNodal/internal/infrastructure/database/postgres/repositories"
	"github.com/turtacn/WellNodal/internal/infrastructure/database/redis"
	"github.com/turtacn/WellNodal/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/WellNodal/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/WellNodal/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/WellNodal/internal/infrastructure/storage/minio"
	httpiface "github.com/turtacn/WellNodal/internal/interfaces/http"
	"github.com/turtacn/WellNodal/internal/interfaces/http/handlers"
	"github.com/turtacn/WellNodal/pkg/client"
)

// Options carries the startup parameters for the API server.
type Options struct {
	Config *config.Config
	// ConfigPath, when non-empty, enables watching the file for changes.
	ConfigPath string
	Version    string
}

// Run builds the full server stack and serves until ctx is cancelled or the
// listener fails, then shuts down gracefully.
func Run(ctx context.Context, opts Options) error {
	cfg := opts.Config

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:            cfg.Log.Level,
		Format:           cfg.Log.Format,
		OutputPaths:      cfg.Log.OutputPaths,
		ErrorOutputPaths: cfg.Log.ErrorOutputPaths,
	})
	if err != nil {
		return err
	}
	logging.SetDefault(logger)
	logger.Info("starting apiserver", logging.String("version", opts.Version))

	if opts.ConfigPath != "" {
		config.Watch(opts.ConfigPath, func(updated *config.Config) {
			// Infrastructure settings need a restart; only note the change.
			logger.Info("configuration file changed",
				logging.String("path", opts.ConfigPath),
				logging.String("log_level", updated.Log.Level),
			)
		})
	}

	// PostgreSQL: connect, then bring the schema up to date.
	conn, err := postgres.NewConnection(cfg.Database, logger)
	if err != nil {
		return err
	}
	defer conn.Close()
	if cfg.Database.MigrationPath != "" {
		if err := postgres.NewMigrator(conn, cfg.Database.MigrationPath, logger).Up(); err != nil {
			return err
		}
	}

	redisClient, err := redis.NewClient(cfg.Redis, logger)
	if err != nil {
		return err
	}
	defer redisClient.Close()
	cache := redis.NewCache(redisClient, logger,
		redis.WithPrefix(cfg.Redis.KeyPrefix),
		redis.WithDefaultTTL(cfg.Redis.DefaultTTL),
	)

	var publisher kafka.Publisher = kafka.NopPublisher{}
	if cfg.Kafka.Enabled {
		producer, err := kafka.NewProducer(cfg.Kafka, logger)
		if err != nil {
			return err
		}
		defer producer.Close()
		publisher = producer
	}

	var archive minio.ArchiveStore = minio.NopArchive{}
	if cfg.MinIO.Enabled {
		store, err := minio.NewClient(cfg.MinIO, logger)
		if err != nil {
			return err
		}
		archive = minio.NewArchive(store, logger)
	}

	engine, err := client.NewClient(cfg.Engine.BaseURL, cfg.Engine.APIKey,
		client.WithTimeout(cfg.Engine.Timeout),
		client.WithRetry(cfg.Engine.RetryMax, cfg.Engine.RetryWaitMin, cfg.Engine.RetryWaitMax),
	)
	if err != nil {
		return err
	}

	metrics := prometheus.NewMetrics()

	wellRepo := repositories.NewWellRepository(conn.DB(), logger)
	designRepo := repositories.NewDesignRepository(conn.DB(), logger)
	fluidRepo := repositories.NewFluidRepository(conn.DB(), logger)
	runRepo := repositories.NewRunRepository(conn.DB(), logger)

	wellSvc := appwellbore.NewService(wellRepo, designRepo, cache, publisher, metrics, logger, cfg.Geometry)
	fluidSvc := appfluid.NewService(fluidRepo, wellRepo, logger)
	analysisSvc := appanalysis.NewService(runRepo, fluidRepo, wellSvc, engine, archive, publisher, metrics, logger)

	router := httpiface.NewRouter(httpiface.RouterConfig{
		Mode:      cfg.Server.Mode,
		Version:   opts.Version,
		RateLimit: cfg.Server.RateLimit,
		Wells:     wellSvc,
		Fluids:    fluidSvc,
		Analyses:  analysisSvc,
		Metrics:   metrics,
		Logger:    logger,
		Checkers: []handlers.HealthChecker{
			handlers.CheckerFunc{CheckerName: "postgres", Fn: conn.HealthCheck},
			handlers.CheckerFunc{CheckerName: "redis", Fn: cache.Ping},
		},
	})
	server := httpiface.NewServer(cfg.Server, router, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	if err := server.Stop(context.Background()); err != nil {
		return err
	}
	logger.Info("apiserver stopped")
	return nil
}
