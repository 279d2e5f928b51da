package event

// Event schema versioning
const (
	// EventSchemaVersion is the current event schema version
	EventSchemaVersion = "1.0"
)

// Metadata keys attached to crafting events
const (
	MetadataKeyRecipe   = "recipe"
	MetadataKeyCategory = "category"
)

// Error messages
const (
	ErrMsgNilPayload    = "event has no payload"
	ErrMsgDecodePayload = "failed to decode payload into"
)

// Log message constants
const (
	LogMsgPublishFailed = "Failed to publish event"

	// Log message for handler errors
	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
)
