package repository

import (
	"context"

	"github.com/osse101/RecipeCraft_Go/internal/domain"
)

// SaveStore persists the per-recipe state of a game under a named slot
type SaveStore interface {
	// SaveRecipeStates replaces everything stored under slot with states
	SaveRecipeStates(ctx context.Context, slot string, states map[string]domain.RecipeState) error

	// LoadRecipeStates returns domain.ErrSaveNotFound when nothing was ever saved under slot
	LoadRecipeStates(ctx context.Context, slot string) (map[string]domain.RecipeState, error)

	// ListSlots returns every slot with saved state, sorted by name
	ListSlots(ctx context.Context) ([]string, error)
}
