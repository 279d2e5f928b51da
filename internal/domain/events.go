package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "craft.completed")
const (
	// EventTypeCraftStarted is published when a craft is resolved and its timer starts
	EventTypeCraftStarted = "craft.started"

	// EventTypeCraftCompleted is published when a craft's outcome is revealed
	EventTypeCraftCompleted = "craft.completed"

	// EventTypeRecipeLearned is published when a recipe becomes discovered
	EventTypeRecipeLearned = "recipe.learned"

	// EventTypeItemUsed is published when an item is used from the inventory
	EventTypeItemUsed = "item.used"

	// EventTypeProfessionLevelUp is published when a profession gains a level
	EventTypeProfessionLevelUp = "profession.level_up"

	// EventTypeExperienceAwarded is published when crafting awards profession experience
	EventTypeExperienceAwarded = "profession.experience_awarded"
)
