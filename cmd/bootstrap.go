package cmd

import (
	"context"
	"fmt"

	"wish-archive/core/config"
	"wish-archive/core/database"
	"wish-archive/core/logger"
	"wish-archive/core/storage"
	"wish-archive/feature/catalog"
	"wish-archive/feature/gachalog"
	"wish-archive/feature/gachalog/fetch"
	"wish-archive/feature/gachalog/store"
	"wish-archive/feature/statistics"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// appDeps bundles the wired dependencies shared by the commands.
type appDeps struct {
	db      *gorm.DB
	storage storage.Client
	catalog *catalog.Cache
	service *gachalog.Service
}

// bootstrap connects the database and storage and wires the archive service.
func bootstrap(ctx context.Context, cfg *config.Config, logg *zap.Logger) (*appDeps, error) {
	if !cfg.Fetch.IsValidRegion() && cfg.Fetch.Endpoint == "" {
		return nil, fmt.Errorf("unknown fetch region %q and no endpoint override", cfg.Fetch.Region)
	}
	if !cfg.Fetch.IsValidLang() {
		return nil, fmt.Errorf("unsupported fetch language %q (use zh-cn or en-us)", cfg.Fetch.Lang)
	}

	// 1. Database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	st := store.New(db)
	if err := st.Migrate(ctx); err != nil {
		return nil, err
	}
	logg.Info("Connected to archive database", zap.String("driver", cfg.Database.Driver))

	// 2. Catalog (object storage)
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, err
	}
	loader := catalog.NewLoader(client, cfg.Storage.Bucket, cfg.Catalog.Prefix, logg)
	cache := catalog.NewCache(loader, cfg.Catalog.CacheTTL())

	// 3. Remote log client
	fetcher, err := fetch.NewHTTPClient(cfg.Fetch, logg)
	if err != nil {
		return nil, err
	}

	// 4. Statistics pools
	pools, err := statistics.LoadPools(cfg.Statistics.PoolsFile)
	if err != nil {
		return nil, err
	}

	engine := gachalog.NewEngine(fetcher, st, cache, cfg.Fetch.Delay(), cfg.Fetch.Size(), logg)

	return &appDeps{
		db:      db,
		storage: client,
		catalog: cache,
		service: gachalog.NewService(engine, st, cache, pools, logg),
	}, nil
}

// loadLogger loads the configuration and builds the logger for a command.
func loadLogger() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logg, nil
}
