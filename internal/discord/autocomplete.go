package discord

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultRecipeCacheTTL bounds how stale recipe autocomplete can be
const DefaultRecipeCacheTTL = 30 * time.Second

// RecipeCache keeps the discovered recipe names so autocomplete does not hit
// the API on every keystroke.
type RecipeCache struct {
	lru *expirable.LRU[string, []string]
}

// NewRecipeCache creates a cache whose entries live for ttl
func NewRecipeCache(ttl time.Duration) *RecipeCache {
	return &RecipeCache{
		lru: expirable.NewLRU[string, []string](recipeCacheSize, nil, ttl),
	}
}

// Names returns the discovered recipe names, fetching them when the cache is cold
func (c *RecipeCache) Names(client *APIClient) ([]string, error) {
	if names, ok := c.lru.Get(recipeCacheKey); ok {
		return names, nil
	}

	recipes, err := client.ListRecipes("")
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(recipes))
	for _, r := range recipes {
		names = append(names, r.Name)
	}
	c.lru.Add(recipeCacheKey, names)
	return names, nil
}

// Invalidate drops the cached names. Called after discovery changes.
func (c *RecipeCache) Invalidate() {
	c.lru.Purge()
}

// HandleAutocomplete routes autocomplete interactions to the appropriate handler
func (b *Bot) HandleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()

	switch data.Name {
	case CmdCraft, CmdRecipe:
		respondAutocomplete(s, i, b.recipeChoices(getFocusedOptionValue(data.Options)))
	case CmdUse:
		respondAutocomplete(s, i, itemChoices(b.Client, getFocusedOptionValue(data.Options)))
	default:
		slog.Warn("Unhandled autocomplete command", "command", data.Name)
	}
}

// recipeChoices filters the discovered recipe names by the typed prefix
func (b *Bot) recipeChoices(focused string) []*discordgo.ApplicationCommandOptionChoice {
	names, err := b.Recipes.Names(b.Client)
	if err != nil {
		slog.Error("Failed to get recipes for autocomplete", "error", err)
		return nil
	}
	return matchChoices(names, focused)
}

// matchChoices builds up to 25 choices whose name contains focused
func matchChoices(names []string, focused string) []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(names))
	for _, name := range names {
		if focused == "" || strings.Contains(strings.ToLower(name), focused) {
			choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
				Name:  name,
				Value: name,
			})
		}
		if len(choices) >= maxAutocompleteChoices {
			break
		}
	}
	return choices
}

// itemChoices lists held items matching focused, valued by their "type:id" key
func itemChoices(client *APIClient, focused string) []*discordgo.ApplicationCommandOptionChoice {
	slots, err := client.Inventory()
	if err != nil {
		slog.Error("Failed to get inventory for autocomplete", "error", err)
		return nil
	}

	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, slot := range slots {
		name := slot.Name
		if name == "" {
			name = slot.Item.String()
		}
		if focused != "" && !strings.Contains(strings.ToLower(name), focused) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  fmt.Sprintf("%s (x%d)", name, slot.Quantity),
			Value: slot.Item.String(),
		})
		if len(choices) >= maxAutocompleteChoices {
			break
		}
	}
	return choices
}

func getFocusedOptionValue(options []*discordgo.ApplicationCommandInteractionDataOption) string {
	for _, opt := range options {
		if opt.Focused {
			return strings.ToLower(opt.StringValue())
		}
	}
	return ""
}

func respondAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, choices []*discordgo.ApplicationCommandOptionChoice) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: choices,
		},
	})
	if err != nil {
		slog.Error("Failed to respond to autocomplete", "error", err)
	}
}
