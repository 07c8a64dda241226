package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/moodreel/moodreel_app/internal/adapters/blob/fsblob"
	"github.com/moodreel/moodreel_app/internal/adapters/blob/miniostore"
	pgsqladapter "github.com/moodreel/moodreel_app/internal/adapters/database/pgsql"
	"github.com/moodreel/moodreel_app/internal/adapters/storage/flatfile"
	portsrepo "github.com/moodreel/moodreel_app/internal/core/ports/repositories"
	"github.com/moodreel/moodreel_app/internal/core/services"
	"github.com/moodreel/moodreel_app/internal/handlers"
	"github.com/moodreel/moodreel_app/internal/middleware"
	"github.com/moodreel/moodreel_app/internal/platform/config"
	"github.com/moodreel/moodreel_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	repos, cleanup, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage backends", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	svcContainer := services.NewContainer(repos, cfg.AnalysisDelay, cfg.MaxUploadBytes)

	uploadLimiter, err := middleware.NewUploadLimiter(cfg.UploadRateLimit)
	if err != nil {
		logger.Error("Failed to configure upload rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS for the browser/WebView clients)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, svcContainer, uploadLimiter)

	logger.Info("Server starting",
		slog.String("port", cfg.Port),
		slog.String("storage_backend", cfg.StorageBackend),
		slog.String("blob_backend", cfg.BlobBackend))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildRepositories selects the entry and blob storage strategies from
// config and wires them into a provider. The returned cleanup releases any
// pooled resources.
func buildRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*portsrepo.RepositoryProvider, func(), error) {
	cleanup := func() {}

	var blobRepo portsrepo.BlobRepositoryFacade
	var err error
	switch cfg.BlobBackend {
	case config.BlobMinio:
		blobRepo, err = miniostore.New(ctx, miniostore.Config{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
			URLTTL:    cfg.MinioURLTTL,
		})
	default:
		blobRepo, err = fsblob.NewStore(cfg.DataDir, cfg.PublicBaseURL)
	}
	if err != nil {
		return nil, cleanup, err
	}

	var entryRepo portsrepo.EntryRepositoryFacade
	switch cfg.StorageBackend {
	case config.StoragePgsql:
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, cleanup, err
		}
		cleanup = pool.Close
		if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
			pool.Close()
			return nil, func() {}, err
		}
		entryRepo = pgsqladapter.NewEntryRepository(pool)
	default:
		entryRepo, err = flatfile.NewEntryRepository(cfg.DataDir)
		if err != nil {
			return nil, cleanup, err
		}
	}

	return &portsrepo.RepositoryProvider{EntryRepo: entryRepo, BlobRepo: blobRepo}, cleanup, nil
}

// runMigrations applies all pending "up" migrations over a temporary
// database/sql connection using the pgx stdlib driver.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	logger.Info("Database migrations applied.")
	return nil
}
