package metrics

import (
	"context"

	"github.com/osse101/RecipeCraft_Go/internal/event"
	"github.com/osse101/RecipeCraft_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.CraftStarted,
		event.CraftCompleted,
		event.RecipeLearned,
		event.ItemUsed,
		event.ExperienceAwarded,
		event.ProfessionLevelUp,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.CraftStarted:
		var p event.CraftStartedPayloadV1
		if p, err = event.DecodePayload[event.CraftStartedPayloadV1](evt.Payload); err == nil {
			CraftsStarted.WithLabelValues(p.Recipe).Inc()
			CraftResolutionTime.Observe(p.ResolutionTime)
		}

	case event.CraftCompleted:
		var p event.CraftCompletedPayloadV1
		if p, err = event.DecodePayload[event.CraftCompletedPayloadV1](evt.Payload); err == nil {
			outcome := OutcomeFailure
			if p.Succeeded {
				outcome = OutcomeSuccess
			}
			CraftsCompleted.WithLabelValues(p.Category, outcome).Inc()
		}

	case event.RecipeLearned:
		RecipesLearned.Inc()

	case event.ItemUsed:
		var p event.ItemUsedPayloadV1
		if p, err = event.DecodePayload[event.ItemUsedPayloadV1](evt.Payload); err == nil {
			ItemsUsed.WithLabelValues(string(p.Item.Type)).Inc()
		}

	case event.ExperienceAwarded:
		var p event.ExperienceAwardedPayloadV1
		if p, err = event.DecodePayload[event.ExperienceAwardedPayloadV1](evt.Payload); err == nil {
			ExperienceAwarded.WithLabelValues(p.Profession).Add(float64(p.Amount))
		}

	case event.ProfessionLevelUp:
		var p event.ProfessionLevelUpPayloadV1
		if p, err = event.DecodePayload[event.ProfessionLevelUpPayloadV1](evt.Payload); err == nil {
			ProfessionLevelUps.WithLabelValues(p.Profession).Add(float64(p.NewLevel - p.OldLevel))
		}
	}

	if err != nil {
		// Metrics never fail the publisher
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		log.Debug(LogMsgPayloadMismatch, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
