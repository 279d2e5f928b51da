package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/RecipeCraft_Go/internal/bootstrap"
	"github.com/osse101/RecipeCraft_Go/internal/config"
	"github.com/osse101/RecipeCraft_Go/internal/database"
	"github.com/osse101/RecipeCraft_Go/internal/logger"
	"github.com/osse101/RecipeCraft_Go/internal/scheduler"
	"github.com/osse101/RecipeCraft_Go/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.InitLogger(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName,
		cfg.Version,
		cfg.Environment,
	))
	slog.Info("Starting RecipeCraft",
		"environment", cfg.Environment,
		"version", cfg.Version,
		"port", cfg.Port,
		"save_backend", cfg.SaveBackend)
	for _, warning := range cfg.Warnings() {
		slog.Warn("Configuration warning", "detail", warning)
	}

	ctx := context.Background()

	content, err := bootstrap.LoadContent(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to load content: %v", err)
	}

	store, pool, err := bootstrap.InitializeSaveStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize save store: %v", err)
	}

	game, err := bootstrap.NewGame(ctx, cfg, content, store)
	if err != nil {
		log.Fatalf("Failed to assemble game: %v", err)
	}

	if err := game.Crafting.Load(ctx); err != nil {
		log.Fatalf("Failed to load saved game: %v", err)
	}

	jobs := scheduler.New(ctx)
	jobs.Schedule("craft-tick", cfg.TickInterval(), scheduler.JobFunc(func(ctx context.Context) error {
		game.Crafting.Tick(ctx, 1)
		return nil
	}))
	if cfg.AutosaveInterval > 0 {
		jobs.Schedule("autosave", cfg.AutosaveInterval, scheduler.JobFunc(game.Crafting.Save))
	}

	deps := server.Dependencies{
		Crafting:    game.Crafting,
		Inventory:   game.Party,
		Professions: game.Professions,
		Toasts:      game.Toasts,
		Events:      game.Events,
	}
	// A typed nil pool would make the health check ping a nil pointer
	if pool != nil {
		deps.DBPool = database.Pool(pool)
	}

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
	}, deps)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:          srv,
		Events:          game.Events,
		Scheduler:       jobs,
		CraftingService: game.Crafting,
		DBPool:          pool,
	})
}
