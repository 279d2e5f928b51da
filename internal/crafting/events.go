package crafting

import (
	"context"

	"github.com/osse101/RecipeCraft_Go/internal/event"
	"github.com/osse101/RecipeCraft_Go/internal/logger"
)

// publish sends evt on bus, logging instead of failing the caller
func publish(ctx context.Context, bus event.Bus, evt event.Event) {
	if err := bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Error(LogMsgPublishFailed, "event", evt.Type, "error", err)
	}
}
