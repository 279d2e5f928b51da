package bootstrap

import (
	"context"
	"fmt"

	"github.com/osse101/RecipeCraft_Go/internal/crafting"
	"github.com/osse101/RecipeCraft_Go/internal/event"
	"github.com/osse101/RecipeCraft_Go/internal/logger"
	"github.com/osse101/RecipeCraft_Go/internal/metrics"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus        event.Bus
	CraftingService crafting.Service
}

// RegisterEventHandlers sets up all event subscribers:
// - item.used teaches recipes through the crafting service
// - the metrics collector counts every crafting event
func RegisterEventHandlers(ctx context.Context, deps EventHandlerDependencies) error {
	log := logger.FromContext(ctx)

	deps.EventBus.Subscribe(event.ItemUsed, deps.CraftingService.HandleItemUsed)
	log.Info(LogMsgItemUseHandlerRegistered)

	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	log.Info(LogMsgMetricsCollectorRegistered)

	return nil
}
