package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/jobscout/internal/config"
	"github.com/jonathan/jobscout/internal/fetch"
	"github.com/jonathan/jobscout/internal/logger"
	"github.com/jonathan/jobscout/internal/profile"
	"github.com/jonathan/jobscout/internal/scheduler"
	"github.com/jonathan/jobscout/internal/scrape"
	"github.com/jonathan/jobscout/internal/store"
)

// app holds the wired components shared by the subcommands. Components are
// built once per invocation; close releases their connections.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	store    *store.PostgresStore
	provider profile.Provider
	sched    *scheduler.Scheduler

	closers []func()
}

// loadConfig layers environment, optional config file, and global flags.
func loadConfig() (*config.Config, error) {
	cfg := config.FromEnv()

	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg.Merge(fileCfg)
	}

	cfg.Merge(&config.Config{LogJSON: flagJSON, Debug: flagDebug})
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newApp builds the full component graph against Postgres. Redis is
// optional; without it the demand aggregate is computed from SQL each pass.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	a := &app{cfg: cfg, log: log}

	st, err := store.Connect(ctx, cfg.DatabaseURL, cfg.Retention())
	if err != nil {
		a.close()
		return nil, err
	}
	a.store = st
	a.closers = append(a.closers, st.Close)

	if err := st.EnsureSchema(ctx); err != nil {
		a.close()
		return nil, err
	}

	pgProvider := profile.NewPostgresProvider(st.Pool())
	if err := pgProvider.EnsureSchema(ctx); err != nil {
		a.close()
		return nil, err
	}
	a.provider = pgProvider

	if cfg.RedisURL != "" {
		rdb, err := profile.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			a.close()
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = rdb.Close() })
		a.provider = profile.NewCachedProvider(pgProvider, rdb, log)
	}

	fetcher := fetch.New(&fetch.Config{
		MinInterval: cfg.RateLimit(),
		MaxRetries:  cfg.MaxRetries,
		UseBrowser:  cfg.UseBrowser,
	}, log)
	scraper := scrape.NewScraper(fetcher, scrape.NewIndeedSource(), log)

	a.sched = scheduler.New(scraper, st, a.provider, cfg, log)

	return a, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}
