package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/inventory/internal/config"
	"github.com/Skotchmaster/inventory/internal/db"
	"github.com/Skotchmaster/inventory/internal/events"
	"github.com/Skotchmaster/inventory/internal/httpserver"
	"github.com/Skotchmaster/inventory/internal/repo"
	"github.com/Skotchmaster/inventory/internal/search"
	"github.com/Skotchmaster/inventory/internal/service"
	"github.com/Skotchmaster/inventory/internal/tokens"
	"github.com/Skotchmaster/inventory/internal/upload"
)

type App struct {
	Echo   *echo.Echo
	DB     *gorm.DB
	Events events.Publisher

	Inventory *service.InventoryService
	Auth      *service.AuthService
}

// New opens every backing store named by cfg and registers the HTTP routes.
// Kafka, Elasticsearch and MinIO are only used when configured.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	gdb, err := db.Open(openCtx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(gdb); err != nil {
		_ = db.Close(gdb)
		return nil, err
	}

	a := &App{DB: gdb, Events: events.Nop{}}

	if len(cfg.KafkaBrokers) > 0 {
		p, err := events.NewProducer(cfg.KafkaBrokers, logger)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.Events = p
	}

	var (
		indexer       search.Indexer = search.Nop{}
		searchHandler *httpserver.SearchHTTP
	)
	if cfg.ESURL != "" {
		es, err := search.NewClient(openCtx, search.Config{
			URL:      cfg.ESURL,
			User:     cfg.ESUser,
			Password: cfg.ESPassword,
			Index:    cfg.ESIndex,
		})
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		indexer = es
		searchHandler = &httpserver.SearchHTTP{Searcher: es}
	}

	store, err := newStore(openCtx, cfg)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	r := &repo.GormRepo{DB: gdb}
	a.Inventory = &service.InventoryService{Repo: r, Events: a.Events, Index: indexer}
	a.Auth = &service.AuthService{
		Repo:             r,
		Tokens:           &tokens.Issuer{Secret: cfg.JWTSecret, TTL: cfg.TokenTTL},
		Events:           a.Events,
		AllowAdminSignup: cfg.AllowAdminSignup,
	}

	if created, err := a.Auth.EnsureAdmin(openCtx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		_ = a.Close()
		return nil, err
	} else if created {
		logger.Info("admin_seeded", "email", cfg.AdminEmail)
	}

	a.Echo = httpserver.NewEcho(logger)
	httpserver.Register(a.Echo, &httpserver.Deps{
		ProductHandler:  &httpserver.ProductHTTP{Svc: a.Inventory, Uploads: &upload.Uploader{Store: store}},
		SupplierHandler: &httpserver.SupplierHTTP{Svc: a.Inventory},
		AuthHandler:     &httpserver.AuthHTTP{Svc: a.Auth},
		UploadHandler:   &httpserver.UploadHTTP{Store: store},
		SearchHandler:   searchHandler,
		JWTSecret:       cfg.JWTSecret,
		EnforceRoles:    cfg.EnforceRoles,
		Ready: func(ctx context.Context) error {
			return db.Ping(ctx, gdb)
		},
	})

	return a, nil
}

func newStore(ctx context.Context, cfg config.Config) (upload.Store, error) {
	if cfg.MinIOEndpoint == "" {
		return &upload.LocalStore{Dir: cfg.UploadDir}, nil
	}

	s, err := upload.NewMinIOStore(upload.MinIOConfig{
		Endpoint:  cfg.MinIOEndpoint,
		AccessKey: cfg.MinIOAccessKey,
		SecretKey: cfg.MinIOSecretKey,
		Bucket:    cfg.MinIOBucket,
		UseSSL:    cfg.MinIOUseSSL,
	})
	if err != nil {
		return nil, err
	}
	if err := s.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("minio: %w", err)
	}
	return s, nil
}

// Close flushes pending events and closes the database pool.
func (a *App) Close() error {
	var errs []error
	if a.Events != nil {
		errs = append(errs, a.Events.Close())
	}
	if a.DB != nil {
		errs = append(errs, db.Close(a.DB))
	}
	return errors.Join(errs...)
}
