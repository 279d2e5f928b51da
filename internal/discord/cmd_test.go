package discord

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/RecipeCraft_Go/internal/domain"
	"github.com/osse101/RecipeCraft_Go/internal/handler"
)

func TestDiscoverCommand_NameWithSpaces(t *testing.T) {
	var recipeCalls atomic.Int32
	var got map[string]interface{}
	mux := recipeServer(t, &recipeCalls, "Potion")
	mux.HandleFunc("POST /api/v1/recipes/discover", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(t, w, http.StatusOK, map[string]string{"message": handler.MsgDiscoveryUpdated})
	})
	client, session, recorder := newTestContext(t, mux)

	cache := NewRecipeCache(time.Minute)
	_, err := cache.Names(client)
	require.NoError(t, err)

	_, run := DiscoverCommand(cache)
	run(session, commandInteraction(CmdDiscover, map[string]string{"args": "Fire Potion true"}), client)

	assert.Equal(t, "Fire Potion", got["name"])
	assert.Equal(t, true, got["discovered"])

	edits := recorder.edits(t)
	require.Len(t, edits, 1)
	require.NotNil(t, edits[0].Embeds)
	assert.Equal(t, "**Fire Potion** is now discovered.", (*edits[0].Embeds)[0].Description)

	_, err = cache.Names(client)
	require.NoError(t, err)
	assert.Equal(t, int32(2), recipeCalls.Load(), "discovery change should drop cached names")
}

func TestDiscoverCommand_BadArgs(t *testing.T) {
	var discoverCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/recipes/discover", func(w http.ResponseWriter, r *http.Request) {
		discoverCalls.Add(1)
	})
	client, session, recorder := newTestContext(t, mux)

	_, run := DiscoverCommand(NewRecipeCache(time.Minute))
	run(session, commandInteraction(CmdDiscover, map[string]string{"args": "Fire Potion"}), client)

	assert.Zero(t, discoverCalls.Load())
	edits := recorder.edits(t)
	require.Len(t, edits, 1)
	require.NotNil(t, edits[0].Content)
	assert.Equal(t, MsgDiscoverUsage, *edits[0].Content)
}

func TestUseItemCommand_TeachesRecipe(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/items/use", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, UseItemResult{Item: "Fire Primer", Consumed: true, Teaches: "Fire Potion"})
	})
	client, session, recorder := newTestContext(t, mux)

	_, run := UseItemCommand(NewRecipeCache(time.Minute))
	run(session, commandInteraction(CmdUse, map[string]string{"item": "item:7"}), client)

	edits := recorder.edits(t)
	require.Len(t, edits, 1)
	require.NotNil(t, edits[0].Embeds)
	assert.Contains(t, (*edits[0].Embeds)[0].Description, "You learned how to make **Fire Potion**!")
}

func TestUseItemCommand_InvalidKey(t *testing.T) {
	client, session, recorder := newTestContext(t, http.NewServeMux())

	_, run := UseItemCommand(NewRecipeCache(time.Minute))
	run(session, commandInteraction(CmdUse, map[string]string{"item": "Herb"}), client)

	edits := recorder.edits(t)
	require.Len(t, edits, 1)
	require.NotNil(t, edits[0].Content)
	assert.Equal(t, MsgInvalidInput, *edits[0].Content)
}

func TestCraftCommand_Locked(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/craft", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusConflict, map[string]string{"error": handler.ErrMsgRecipeLockedError})
	})
	client, session, recorder := newTestContext(t, mux)

	_, run := CraftCommand()
	run(session, commandInteraction(CmdCraft, map[string]string{"recipe": "Elixir"}), client)

	edits := recorder.edits(t)
	require.Len(t, edits, 1)
	require.NotNil(t, edits[0].Content)
	assert.Equal(t, MsgRecipeLocked, *edits[0].Content)
}

func TestCraftStatusCommand_Succeeded(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/craft", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, domain.CraftStatus{
			Phase:  domain.CraftPhaseFinished,
			Recipe: "Potion",
			Result: &domain.CraftAttemptResult{Succeeded: true},
		})
	})
	client, session, recorder := newTestContext(t, mux)

	_, run := CraftStatusCommand()
	run(session, commandInteraction(CmdCraftStatus, nil), client)

	edits := recorder.edits(t)
	require.Len(t, edits, 1)
	require.NotNil(t, edits[0].Embeds)
	embed := (*edits[0].Embeds)[0]
	assert.Equal(t, ColorSuccess, embed.Color)
	assert.Contains(t, embed.Description, "**Potion** succeeded!")
}

func TestRecipesCommand_Category(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/recipes", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "alchemy", r.URL.Query().Get("category"))
		writeJSON(t, w, http.StatusOK, []domain.RecipeView{})
	})
	client, session, recorder := newTestContext(t, mux)

	_, run := RecipesCommand()
	run(session, commandInteraction(CmdRecipes, map[string]string{"category": "alchemy"}), client)

	edits := recorder.edits(t)
	require.Len(t, edits, 1)
	require.NotNil(t, edits[0].Embeds)
	embed := (*edits[0].Embeds)[0]
	assert.Equal(t, "📜 Alchemy Recipes", embed.Title)
	assert.Equal(t, "You don't know any Alchemy recipes yet.", embed.Description)
}
