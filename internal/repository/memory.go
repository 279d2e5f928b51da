package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/osse101/RecipeCraft_Go/internal/domain"
)

// MemorySaveStore keeps saves in process memory. Used when no database is configured and in tests.
type MemorySaveStore struct {
	mu    sync.RWMutex
	slots map[string]map[string]domain.RecipeState
}

// NewMemorySaveStore creates an empty MemorySaveStore
func NewMemorySaveStore() *MemorySaveStore {
	return &MemorySaveStore{slots: make(map[string]map[string]domain.RecipeState)}
}

// SaveRecipeStates replaces the slot with a copy of states
func (m *MemorySaveStore) SaveRecipeStates(ctx context.Context, slot string, states map[string]domain.RecipeState) error {
	if slot == "" {
		return fmt.Errorf("save slot cannot be empty | %w", domain.ErrInvalidInput)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[slot] = copyStates(states)
	return nil
}

// LoadRecipeStates returns a copy of the slot
func (m *MemorySaveStore) LoadRecipeStates(ctx context.Context, slot string) (map[string]domain.RecipeState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	states, ok := m.slots[slot]
	if !ok {
		return nil, fmt.Errorf("slot %q | %w", slot, domain.ErrSaveNotFound)
	}
	return copyStates(states), nil
}

// ListSlots returns the saved slot names in order
func (m *MemorySaveStore) ListSlots(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	slots := make([]string, 0, len(m.slots))
	for slot := range m.slots {
		slots = append(slots, slot)
	}
	sort.Strings(slots)
	return slots, nil
}

func copyStates(in map[string]domain.RecipeState) map[string]domain.RecipeState {
	out := make(map[string]domain.RecipeState, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
