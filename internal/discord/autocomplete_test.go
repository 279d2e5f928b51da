package discord

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/RecipeCraft_Go/internal/domain"
	"github.com/osse101/RecipeCraft_Go/internal/inventory"
)

func recipeServer(t *testing.T, calls *atomic.Int32, names ...string) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/recipes", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		views := make([]domain.RecipeView, 0, len(names))
		for _, n := range names {
			views = append(views, domain.RecipeView{RecipeDefinition: domain.RecipeDefinition{Name: n}})
		}
		writeJSON(t, w, http.StatusOK, views)
	})
	return mux
}

func TestRecipeCache_CachesUntilInvalidated(t *testing.T) {
	var calls atomic.Int32
	client, _, _ := newTestContext(t, recipeServer(t, &calls, "Potion", "Fire Potion"))
	cache := NewRecipeCache(time.Minute)

	names, err := cache.Names(client)
	require.NoError(t, err)
	assert.Equal(t, []string{"Potion", "Fire Potion"}, names)

	_, err = cache.Names(client)
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())

	cache.Invalidate()
	_, err = cache.Names(client)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestRecipeCache_Expires(t *testing.T) {
	var calls atomic.Int32
	client, _, _ := newTestContext(t, recipeServer(t, &calls, "Potion"))
	cache := NewRecipeCache(20 * time.Millisecond)

	_, err := cache.Names(client)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		_, err := cache.Names(client)
		return err == nil && calls.Load() >= 2
	}, time.Second, 10*time.Millisecond)
}

func TestRecipeCache_ErrorNotCached(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/recipes", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	client, _, _ := newTestContext(t, mux)
	cache := NewRecipeCache(time.Minute)

	_, err := cache.Names(client)
	assert.Error(t, err)
	_, ok := cache.lru.Get(recipeCacheKey)
	assert.False(t, ok)
}

func TestMatchChoices(t *testing.T) {
	choices := matchChoices([]string{"Potion", "Fire Potion", "Sword"}, "potion")
	require.Len(t, choices, 2)
	assert.Equal(t, "Potion", choices[0].Name)
	assert.Equal(t, "Fire Potion", choices[1].Value)

	many := make([]string, 40)
	for i := range many {
		many[i] = fmt.Sprintf("Recipe %d", i)
	}
	assert.Len(t, matchChoices(many, ""), maxAutocompleteChoices)
}

func TestItemChoices(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/inventory", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, []inventory.Slot{
			{Item: domain.ItemKey{Type: domain.ItemTypeGood, ID: 1}, Name: "Herb", Quantity: 3},
			{Item: domain.ItemKey{Type: domain.ItemTypeGood, ID: 7}, Name: "Fire Primer", Quantity: 1},
		})
	})
	client, _, _ := newTestContext(t, mux)

	choices := itemChoices(client, "primer")

	require.Len(t, choices, 1)
	assert.Equal(t, "Fire Primer (x1)", choices[0].Name)
	assert.Equal(t, "item:7", choices[0].Value)
}
