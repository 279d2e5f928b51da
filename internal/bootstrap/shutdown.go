package bootstrap

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/RecipeCraft_Go/internal/crafting"
	"github.com/osse101/RecipeCraft_Go/internal/scheduler"
	"github.com/osse101/RecipeCraft_Go/internal/sse"
)

// stoppable is satisfied by *server.Server
type stoppable interface {
	Stop(ctx context.Context) error
}

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server          stoppable
	Events          *sse.Hub
	Scheduler       *scheduler.Scheduler
	CraftingService crafting.Service
	DBPool          *pgxpool.Pool
}

// GracefulShutdown stops components in order:
// 1. HTTP server (stop accepting new requests) and the event stream hub
// 2. Scheduled jobs (no tick or autosave runs concurrently with the final save)
// 3. Final save of the recipe book
// 4. Database pool
//
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Events != nil {
		components.Events.Stop()
	}

	if components.Scheduler != nil {
		slog.Info(LogMsgStoppingScheduler)
		components.Scheduler.Stop()
	}

	if components.CraftingService != nil {
		if err := components.CraftingService.Save(ctx); err != nil {
			slog.Error(LogMsgFinalSaveFailed, "error", err)
		}
	}

	if components.DBPool != nil {
		slog.Info(LogMsgClosingDatabase)
		components.DBPool.Close()
	}

	slog.Info(LogMsgServerStopped)
}
