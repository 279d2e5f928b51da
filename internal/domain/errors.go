package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Item errors
	ErrMsgItemNotFound         = "item not found"
	ErrMsgInsufficientQuantity = "insufficient quantity"

	// Recipe/Crafting errors
	ErrMsgRecipeNotFound     = "recipe not found"
	ErrMsgRecipeLocked       = "recipe is locked"
	ErrMsgInvalidRecipe      = "invalid recipe"
	ErrMsgNotEligible        = "recipe requirements not met"
	ErrMsgCraftInProgress    = "a craft is already in progress"
	ErrMsgSaveNotFound       = "save not found"
	ErrMsgProfessionNotFound = "profession not found"

	// Input errors
	ErrMsgInvalidInput = "invalid input"

	// Database errors
	ErrMsgTxClosed = "tx is closed"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%s | %w", details, domain.ErrXxx) for additional context.
var (
	// Item errors
	ErrItemNotFound         = errors.New(ErrMsgItemNotFound)
	ErrInsufficientQuantity = errors.New(ErrMsgInsufficientQuantity)

	// Recipe/Crafting errors
	ErrRecipeNotFound     = errors.New(ErrMsgRecipeNotFound)
	ErrRecipeLocked       = errors.New(ErrMsgRecipeLocked)
	ErrInvalidRecipe      = errors.New(ErrMsgInvalidRecipe)
	ErrNotEligible        = errors.New(ErrMsgNotEligible)
	ErrCraftInProgress    = errors.New(ErrMsgCraftInProgress)
	ErrSaveNotFound       = errors.New(ErrMsgSaveNotFound)
	ErrProfessionNotFound = errors.New(ErrMsgProfessionNotFound)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
