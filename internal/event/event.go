package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/RecipeCraft_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Event types published by the crafting system
const (
	CraftStarted      Type = domain.EventTypeCraftStarted
	CraftCompleted    Type = domain.EventTypeCraftCompleted
	RecipeLearned     Type = domain.EventTypeRecipeLearned
	ItemUsed          Type = domain.EventTypeItemUsed
	ProfessionLevelUp Type = domain.EventTypeProfessionLevelUp
	ExperienceAwarded Type = domain.EventTypeExperienceAwarded
)

// Typed event payloads for type safety

// CraftStartedPayloadV1 is published when a craft is resolved and its timer starts.
// The outcome is already decided but must not be shown until CraftCompleted.
type CraftStartedPayloadV1 struct {
	CraftID        string          `json:"craft_id"`
	Recipe         string          `json:"recipe"`
	ResolutionTime float64         `json:"resolution_time"`
	Cue            domain.AudioCue `json:"cue"`
	Timestamp      int64           `json:"timestamp"`
}

// CraftCompletedPayloadV1 is published when a craft's outcome is revealed
type CraftCompletedPayloadV1 struct {
	CraftID   string                   `json:"craft_id"`
	Recipe    string                   `json:"recipe"`
	Category  string                   `json:"category"`
	Succeeded bool                     `json:"succeeded"`
	Rewards   []domain.ItemRequirement `json:"rewards"`
	Cue       domain.AudioCue          `json:"cue"`
	Timestamp int64                    `json:"timestamp"`
}

// RecipeLearnedPayloadV1 is published when a recipe transitions to discovered
type RecipeLearnedPayloadV1 struct {
	Recipe    string          `json:"recipe"`
	Text      string          `json:"text"`
	Cue       domain.AudioCue `json:"cue"`
	Timestamp int64           `json:"timestamp"`
}

// ItemUsedPayloadV1 is published when an item is used from the party inventory
type ItemUsedPayloadV1 struct {
	Item      domain.ItemKey `json:"item"`
	Consumed  bool           `json:"consumed"`
	Timestamp int64          `json:"timestamp"`
}

// ProfessionLevelUpPayloadV1 is the typed payload for profession level up events
type ProfessionLevelUpPayloadV1 struct {
	Profession string `json:"profession"`
	OldLevel   int    `json:"old_level"`
	NewLevel   int    `json:"new_level"`
}

// ExperienceAwardedPayloadV1 is the typed payload for experience awards
type ExperienceAwardedPayloadV1 struct {
	Profession string `json:"profession"`
	Amount     int    `json:"amount"`
}

// Type-safe event constructors

// NewCraftStartedEvent creates a new craft started event
func NewCraftStartedEvent(craftID, recipe string, resolutionTime float64, cue domain.AudioCue) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CraftStarted,
		Payload: CraftStartedPayloadV1{
			CraftID:        craftID,
			Recipe:         recipe,
			ResolutionTime: resolutionTime,
			Cue:            cue,
			Timestamp:      time.Now().Unix(),
		},
		Metadata: map[string]interface{}{
			MetadataKeyRecipe: recipe,
		},
	}
}

// NewCraftCompletedEvent creates a new craft completed event
func NewCraftCompletedEvent(craftID, recipe, category string, result *domain.CraftAttemptResult, cue domain.AudioCue) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CraftCompleted,
		Payload: CraftCompletedPayloadV1{
			CraftID:   craftID,
			Recipe:    recipe,
			Category:  category,
			Succeeded: result.Succeeded,
			Rewards:   result.Rewards,
			Cue:       cue,
			Timestamp: time.Now().Unix(),
		},
		Metadata: map[string]interface{}{
			MetadataKeyRecipe:   recipe,
			MetadataKeyCategory: category,
		},
	}
}

// NewRecipeLearnedEvent creates a new recipe learned event
func NewRecipeLearnedEvent(recipe, text string, cue domain.AudioCue) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RecipeLearned,
		Payload: RecipeLearnedPayloadV1{
			Recipe:    recipe,
			Text:      text,
			Cue:       cue,
			Timestamp: time.Now().Unix(),
		},
		Metadata: map[string]interface{}{
			MetadataKeyRecipe: recipe,
		},
	}
}

// NewItemUsedEvent creates a new item used event
func NewItemUsedEvent(key domain.ItemKey, consumed bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ItemUsed,
		Payload: ItemUsedPayloadV1{
			Item:      key,
			Consumed:  consumed,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewProfessionLevelUpEvent creates a new profession level up event
func NewProfessionLevelUpEvent(profession string, oldLevel, newLevel int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ProfessionLevelUp,
		Payload: ProfessionLevelUpPayloadV1{
			Profession: profession,
			OldLevel:   oldLevel,
			NewLevel:   newLevel,
		},
		Metadata: map[string]interface{}{
			MetadataKeyCategory: profession,
		},
	}
}

// NewExperienceAwardedEvent creates a new experience awarded event
func NewExperienceAwardedEvent(profession string, amount int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ExperienceAwarded,
		Payload: ExperienceAwardedPayloadV1{
			Profession: profession,
			Amount:     amount,
		},
		Metadata: map[string]interface{}{
			MetadataKeyCategory: profession,
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers.
// Handlers run synchronously in subscription order.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
