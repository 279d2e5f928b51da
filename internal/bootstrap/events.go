package bootstrap

import (
	"context"

	"github.com/osse101/RecipeCraft_Go/internal/event"
	"github.com/osse101/RecipeCraft_Go/internal/logger"
)

// InitializeEventSystem creates the in-process event bus. Handlers run
// synchronously inside Publish, so no retry or dead-letter layer is needed.
func InitializeEventSystem(ctx context.Context) *event.MemoryBus {
	bus := event.NewMemoryBus()
	logger.FromContext(ctx).Info(LogMsgEventSystemInitialized)
	return bus
}
