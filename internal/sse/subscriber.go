package sse

import (
	"context"

	"github.com/osse101/RecipeCraft_Go/internal/event"
	"github.com/osse101/RecipeCraft_Go/internal/logger"
)

// StreamedEvents are the bus events forwarded to stream clients. item.used is
// left out since recipe.learned already reports the outcome that matters.
var StreamedEvents = []event.Type{
	event.CraftStarted,
	event.CraftCompleted,
	event.RecipeLearned,
	event.ProfessionLevelUp,
}

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{hub: hub, bus: bus}
}

// Subscribe registers the forwarding handler for every streamed event type
func (s *Subscriber) Subscribe(ctx context.Context) {
	names := make([]string, 0, len(StreamedEvents))
	for _, t := range StreamedEvents {
		s.bus.Subscribe(t, s.forward)
		names = append(names, string(t))
	}
	logger.FromContext(ctx).Info(LogMsgSubscriberRegistered, "types", names)
}

// forward relays the typed payload unchanged; payload structs carry their own JSON tags
func (s *Subscriber) forward(ctx context.Context, evt event.Event) error {
	s.hub.Broadcast(string(evt.Type), evt.Payload)
	logger.FromContext(ctx).Debug(LogMsgEventBroadcast, "event_type", evt.Type)
	return nil
}
