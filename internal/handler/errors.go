package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingPathParam      = "Missing %s path parameter"
	ErrMsgInvalidItemType       = "Invalid item type"

	ErrMsgListRecipesFailed = "Failed to list recipes"
	ErrMsgDiscoverFailed    = "Failed to update discovery status"
	ErrMsgInitializeFailed  = "Failed to initialize recipes"
	ErrMsgStartCraftFailed  = "Failed to start craft"
	ErrMsgAddItemFailed     = "Failed to add item"
	ErrMsgUseItemFailed     = "Failed to use item"
	ErrMsgSaveFailed        = "Failed to save game"
	ErrMsgLoadFailed        = "Failed to load game"
)

// Success messages for API responses
const (
	MsgItemAddedSuccess   = "Item added successfully"
	MsgDiscoveryUpdated   = "Discovery status updated"
	MsgRecipesInitialized = "Recipes initialized"
	MsgGameSaved          = "Game saved"
	MsgGameLoaded         = "Game loaded"
)

// User-facing messages derived from domain errors
const (
	ErrMsgGenericServerError     = "Something went wrong"
	ErrMsgUnknownError           = "Unknown error"
	ErrMsgInvalidRequestError    = "Invalid request. Please check your inputs."
	ErrMsgRecipeNotFoundError    = "Recipe not found"
	ErrMsgRecipeLockedError      = "Recipe has not been discovered yet"
	ErrMsgNotEligibleError       = "Missing tools, ingredients or profession level for that recipe"
	ErrMsgCraftInProgressError   = "A craft is already in progress"
	ErrMsgItemNotFoundError      = "Item not found"
	ErrMsgInsufficientItemsError = "You don't have that item"
	ErrMsgSaveNotFoundError      = "No saved game found"
	ErrMsgProfessionNotFound     = "Profession not found"
)

// Log messages
const (
	LogMsgDecodeFailed    = "Failed to decode request"
	LogMsgRequestDecoded  = "Request decoded"
	LogMsgServiceError    = "Service call failed"
	LogMsgEncodeFailed    = "Failed to encode JSON response"
	LogMsgWriteFailed     = "Failed to write response buffer"
	LogMsgReadinessFailed = "Readiness check failed"
	LogMsgCraftStarted    = "Craft started via API"
	LogMsgItemUsed        = "Item used via API"
)
