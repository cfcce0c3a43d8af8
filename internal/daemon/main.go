// Package daemon opens the database and the blob store and runs the web service.
package daemon

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/melitabakes/bakery/internal/blob"
	"github.com/melitabakes/bakery/internal/config"
	"github.com/melitabakes/bakery/internal/db/dsn"
	"github.com/melitabakes/bakery/internal/db/models"
	"github.com/melitabakes/bakery/internal/store"
	"github.com/melitabakes/bakery/internal/web"
	"github.com/melitabakes/bakery/internal/web/session"
)

// sessionTable holds the fiber sessions on mysql and postgres.
const sessionTable = "sessions"

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start starts the Daemon's web service and blocks until it is shut down by a signal.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(":" + strconv.Itoa(d.cfg.Webserver.Port))
}

// OpenDB opens the configured database engine.
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.DB.GormEngine {
	case config.EnginePostgres:
		dialector = gormpostgres.Open(dsn.Postgres(cfg))
	case config.EngineSQLite:
		if dir := filepath.Dir(cfg.DB.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}

		dialector = sqlite.Open(cfg.DB.Path)
	default:
		dialector = gormmysql.Open(dsn.MySQL(cfg))
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect %s database: %w", cfg.DB.GormEngine, err)
	}

	if cfg.DB.GormEngine == config.EngineSQLite {
		// one writer at a time
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err //nolint:wrapcheck
		}

		sqlDB.SetMaxOpenConns(1)
	}

	if err = db.AutoMigrate(models.Migrate()...); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return db, nil
}

// sessionStorage keeps sessions in the database for mysql and postgres so they
// survive restarts. sqlite uses fiber's in-memory storage.
func sessionStorage(cfg *config.Config) fiber.Storage {
	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.MySQL(cfg),
			Table:         sessionTable,
		})
	case config.EnginePostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.Postgres(cfg),
			Table:         sessionTable,
		})
	default:
		return nil
	}
}

// OpenStore opens the database and the blob store and returns the content store client.
func OpenStore(ctx context.Context, cfg *config.Config) (*store.Client, blob.Store, error) {
	db, err := OpenDB(cfg)
	if err != nil {
		return nil, nil, err
	}

	blobs, err := blob.New(ctx, cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("open blob store: %w", err)
	}

	if s3, ok := blobs.(*blob.S3); ok {
		for _, bucket := range []string{cfg.Storage.CakeBucket, cfg.Storage.AssetBucket} {
			if err = s3.EnsureBucket(ctx, bucket); err != nil {
				return nil, nil, fmt.Errorf("ensure bucket %s: %w", bucket, err)
			}
		}
	}

	st, err := store.New(db, blobs, store.ConfigFromStorage(cfg.Storage))
	if err != nil {
		return nil, nil, err //nolint:wrapcheck
	}

	return st, blobs, nil
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	ctx := context.Background()

	st, blobs, err := OpenStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open content store")
		return nil
	}

	if err = seed(ctx, cfg, st); err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin")
		return nil
	}

	session.Init(sessionStorage(cfg), cfg.Webserver.Session.ExpiryTime)

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, st, blobs),
	}
}
