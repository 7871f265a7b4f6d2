package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopadmin/shopadmin/internal/catalog"
	"github.com/shopadmin/shopadmin/internal/core/cache"
	corecfg "github.com/shopadmin/shopadmin/internal/core/config"
	"github.com/shopadmin/shopadmin/internal/core/storage"
	"github.com/shopadmin/shopadmin/internal/core/storage/memory"
	"github.com/shopadmin/shopadmin/internal/core/storage/postgres"
	"github.com/shopadmin/shopadmin/internal/dashboard"
	"github.com/shopadmin/shopadmin/internal/migrations"
	"github.com/shopadmin/shopadmin/internal/observability"
	"github.com/shopadmin/shopadmin/internal/server"
)

func main() {
	configPath := flag.String("config", "shopadmin.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config",
		"database", cfg.Database.Type,
		"address", fmtAddr(cfg.Server.Host, cfg.Server.Port),
		"metrics", cfg.Metrics.Enabled,
	)

	warmInterval, err := cfg.Dashboard.EffectiveWarmInterval()
	if err != nil {
		slog.Error("Invalid dashboard warm interval", "value", cfg.Dashboard.WarmInterval, "error", err)
		os.Exit(1)
	}

	// 2. Initialize Storage
	repo, health, closeRepo, err := openRepository(cfg.Database)
	if err != nil {
		slog.Error("Failed to initialize storage", "type", cfg.Database.Type, "error", err)
		os.Exit(1)
	}
	defer closeRepo()

	// 3. Initialize Cache and Metrics
	var (
		collector *observability.Collector
		cacheOpts []cache.Option
		reportObs dashboard.ReportObserver
	)
	if cfg.Metrics.Enabled {
		collector = observability.NewCollector(cfg.Metrics.Namespace)
		cacheOpts = append(cacheOpts, cache.WithObserver(collector))
		reportObs = collector
	}
	store := cache.NewStore(cacheOpts...)

	// 4. Initialize Services
	dashboardSvc := dashboard.NewService(repo, store, reportObs)
	catalogSvc := catalog.NewService(repo, store, catalog.Options{
		ProductsPerPage: cfg.Catalog.ProductsPerPage,
		LatestLimit:     cfg.Catalog.LatestLimit,
		MaxBodySizeMB:   cfg.Server.MaxBodySizeMB,
	})

	// 5. Initialize Server
	var registry *prometheus.Registry
	if collector != nil {
		registry = collector.Registry()
	}
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), cfg.Server.Mode, health, registry)
	api := srv.API()
	dashboardSvc.RegisterRoutes(api)
	catalogSvc.RegisterRoutes(api)

	// 6. Start Services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if warmInterval > 0 {
		warmer := dashboard.NewWarmer(warmInterval, dashboardSvc)
		go func() {
			if err := warmer.Start(ctx); err != nil {
				slog.Error("Warmer stopped with error", "error", err)
			}
		}()
	} else {
		slog.Info("Dashboard warmer disabled by config")
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

// openRepository selects the storage backend. The returned health checker is nil
// for the memory backend.
func openRepository(cfg corecfg.DatabaseConfig) (storage.Repository, server.HealthChecker, func(), error) {
	switch cfg.Type {
	case corecfg.DatabaseMemory:
		store := memory.NewStore()
		if cfg.SeedPath != "" {
			if err := store.LoadSeedFile(cfg.SeedPath); err != nil {
				return nil, nil, nil, err
			}
		}
		return store, nil, func() {}, nil

	case corecfg.DatabasePostgres:
		adapter, err := postgres.NewAdapter(cfg.DSN, cfg.MaxOpenConns, cfg.MaxIdleConns)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := migrations.RunMigrations(adapter.DB(), cfg.AutoMigrate); err != nil {
			adapter.Close()
			return nil, nil, nil, fmt.Errorf("run migrations: %w", err)
		}
		if err := adapter.ValidateSchema(context.Background()); err != nil {
			adapter.Close()
			return nil, nil, nil, err
		}
		return adapter, adapter, func() { adapter.Close() }, nil

	default:
		return nil, nil, nil, fmt.Errorf("unsupported database type %q", cfg.Type)
	}
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
