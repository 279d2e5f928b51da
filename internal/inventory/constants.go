package inventory

// Log messages
const (
	LogMsgItemUsed      = "Item used"
	LogMsgItemsAdded    = "Items added to party inventory"
	LogMsgPublishFailed = "Failed to publish item used event"
)

// Error messages
const (
	ErrMsgQuantityNotPositive = "quantity must be positive (got %d)"
	ErrMsgNotHeld             = "%s is not in the party inventory"
)
