package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/lootworks/casesim/internal/catalog"
	"github.com/lootworks/casesim/internal/config"
	"github.com/lootworks/casesim/internal/daily"
	"github.com/lootworks/casesim/internal/database"
	"github.com/lootworks/casesim/internal/domain"
	"github.com/lootworks/casesim/internal/droptable"
	"github.com/lootworks/casesim/internal/economy"
	"github.com/lootworks/casesim/internal/server"
	"github.com/lootworks/casesim/internal/shop"
	"github.com/lootworks/casesim/internal/storage"
)

const (
	dbMaxConns       = 10
	dbMaxIdle        = 5 * time.Minute
	dbMaxLife        = 30 * time.Minute
	shutdownDeadline = 10 * time.Second
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	cat, err := catalog.Load()
	if err != nil {
		slog.Error("Failed to load case catalog", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Without a configured database the engine runs on the in-memory
	// store and state does not survive a restart.
	var store storage.Store
	var dbPool database.Pool
	if cfg.DBHost != "" {
		pool, err := database.NewPool(cfg.GetDBConnString(), dbMaxConns, dbMaxIdle, dbMaxLife)
		if err != nil {
			slog.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		dbPool = pool
		store = storage.NewPostgresStore(pool)
	} else {
		slog.Warn("DB_HOST not set, state is in-memory only")
		store = storage.NewMemoryStore()
	}

	clock := domain.UTCClock{}
	resolver := droptable.NewResolver()
	shopSvc := shop.NewService(ctx, cat, store, clock, cfg.ShopSlots)
	dailySvc := daily.NewService(ctx, store, clock, daily.ResetPolicy(cfg.StreakReset))
	economySvc := economy.NewService(ctx, store, cat, resolver, shopSvc, dailySvc, domain.Dollars(cfg.StartingBalance))

	srv := server.NewServer(server.Config{
		Port:        cfg.Port,
		APIKey:      cfg.APIKey,
		ServiceName: cfg.ServiceName,
		Version:     cfg.Version,
		Environment: cfg.Environment,
	}, dbPool, economySvc)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-quit:
		slog.Info("Shutdown signal received", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownDeadline)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("Server forced to shut down", "error", err)
	}

	slog.Info("Server stopped")
}
