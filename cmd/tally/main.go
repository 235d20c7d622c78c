package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	corecfg "github.com/aevon-lab/tally/internal/core/config"
	"github.com/aevon-lab/tally/internal/core/rollup"
	"github.com/aevon-lab/tally/internal/core/snapshot"
	"github.com/aevon-lab/tally/internal/core/storage/postgres"
	"github.com/aevon-lab/tally/internal/migrations"
	"github.com/aevon-lab/tally/internal/notify"
	"github.com/aevon-lab/tally/internal/observability"
	"github.com/aevon-lab/tally/internal/projection"
	"github.com/aevon-lab/tally/internal/refresh"
	"github.com/aevon-lab/tally/internal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	configPath := flag.String("config", "tally.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger (reconfigured once the config is loaded)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(cfg.Log))
	slog.Info("Loaded config",
		"server", cfg.Server,
		"rollups", cfg.Rollups,
		"refresh", cfg.Refresh,
		"notify_enabled", cfg.Notify.Enabled,
		"metrics_enabled", cfg.Metrics.Enabled,
	)

	// 2. Initialize Storage (PostgreSQL) and run migrations before the raw
	// tables are validated.
	db, err := postgres.Open(cfg.Database.DSN, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	if err := migrations.RunMigrations(db, cfg.Database.AutoMigrate); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		db.Close()
		os.Exit(1)
	}
	rawAdapter, err := postgres.NewAdapterFromDB(db)
	if err != nil {
		slog.Error("Failed to initialize raw data accessor", "error", err)
		db.Close()
		os.Exit(1)
	}
	defer rawAdapter.Close()

	// 3. Resolve rollup definitions from the catalog
	defs, err := cfg.Catalog.Resolve(rollup.Builtins(), cfg.Location)
	if err != nil {
		slog.Error("Failed to resolve rollup catalog", "error", err)
		os.Exit(1)
	}
	registry, err := rollup.NewRegistry(defs...)
	if err != nil {
		slog.Error("Failed to build rollup registry", "error", err)
		os.Exit(1)
	}
	slog.Info("Rollups enabled", "rollups", registry.Names(), "timezone", cfg.Location.String())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 4. Snapshot store, restored from the archive when persistence is on
	store := snapshot.NewStore()
	var archive refresh.SnapshotArchive
	if cfg.Refresh.PersistSnapshots {
		snapshotAdapter := postgres.NewSnapshotAdapter(rawAdapter.DB())
		archive = snapshotAdapter
		if _, err := refresh.Restore(ctx, snapshotAdapter, registry, store); err != nil {
			slog.Warn("Failed to restore archived snapshots, starting uninitialized", "error", err)
		}
	}

	// 5. Metrics
	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics = observability.NewMetrics(reg)
		for _, name := range store.Names() {
			if snap, ok := store.Current(name); ok {
				metrics.ObserveSnapshot(name, snap.RowCount(), snap.SourceRowCount, snap.ComputedAt)
			}
		}
	}

	// 6. Notifications
	var notifier refresh.Notifier
	var publisher *notify.RedisPublisher
	if cfg.Notify.Enabled {
		publisher, err = notify.NewRedisPublisher(ctx, notify.Options{
			Addr:     cfg.Notify.RedisAddr,
			Password: cfg.Notify.RedisPassword,
			DB:       cfg.Notify.RedisDB,
			Channel:  cfg.Notify.Channel,
		})
		if err != nil {
			slog.Error("Failed to initialize notifications", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
		notifier = publisher
	}

	// 7. Refresh coordinator and scheduler
	coordinator, err := refresh.NewCoordinator(registry, rawAdapter, store, refresh.Options{
		WorkerCount: cfg.Refresh.WorkerCount,
		Timeout:     cfg.Refresh.RefreshTimeout(),
		Policy:      refresh.Policy(cfg.Refresh.Policy),
		Location:    cfg.Location,
		Archive:     archive,
		Notifier:    notifier,
		Metrics:     metrics,
	})
	if err != nil {
		slog.Error("Failed to initialize refresh coordinator", "error", err)
		os.Exit(1)
	}
	defer coordinator.Close()

	var scheduler *refresh.Scheduler
	if cfg.Refresh.Enabled {
		scheduler, err = refresh.NewScheduler(cfg.Refresh.Schedule, cfg.Refresh.RunOnStart, coordinator)
		if err != nil {
			slog.Error("Failed to initialize refresh scheduler", "error", err)
			os.Exit(1)
		}
	}

	// 8. Query service and HTTP server
	projectionSvc := projection.NewService(registry, store, metrics)

	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), rawAdapter.DB(), cfg.Server.Mode)
	if publisher != nil {
		srv.AddHealthCheck("redis", publisher)
	}
	if metrics != nil {
		srv.MountMetrics(cfg.Metrics.Path, metrics.Handler())
	}
	projectionSvc.RegisterRoutes(srv.Engine)
	coordinator.RegisterRoutes(srv.Engine)

	// 9. Start Services
	schedulerDone := make(chan struct{})
	if scheduler != nil {
		go func() {
			defer close(schedulerDone)
			if err := scheduler.Start(ctx); err != nil {
				slog.Error("Scheduler stopped with error", "error", err)
			}
		}()
	} else {
		close(schedulerDone)
		slog.Info("Refresh scheduler disabled by config")
	}

	// Signal handler triggers the shutdown sequence below.
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
		cancel()
	}

	<-schedulerDone
	slog.Info("Shutdown complete")
}

func newLogger(cfg corecfg.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
