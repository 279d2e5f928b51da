package discord

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/RecipeCraft_Go/internal/domain"
)

// parseItemKey reads the "type:id" form produced by item autocomplete
func parseItemKey(s string) (domain.ItemKey, error) {
	typ, rawID, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return domain.ItemKey{}, fmt.Errorf("item %q is not type:id | %w", s, domain.ErrInvalidInput)
	}

	itemType, err := domain.ParseItemType(typ)
	if err != nil {
		return domain.ItemKey{}, err
	}

	id, err := strconv.Atoi(rawID)
	if err != nil || id < 1 {
		return domain.ItemKey{}, fmt.Errorf("item id %q is not a positive number | %w", rawID, domain.ErrInvalidInput)
	}

	return domain.ItemKey{Type: itemType, ID: id}, nil
}

// InventoryCommand shows the party's items
func InventoryCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdInventory,
		Description: "Show the party's items",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			slots, err := client.Inventory()
			if err != nil {
				return "", err
			}
			return formatInventory(slots), nil
		}, ResponseConfig{Title: "🎒 Inventory", Color: ColorInfo})
	}

	return cmd, handler
}

// UseItemCommand uses one item. Recipe primers teach their recipe.
func UseItemCommand(cache *RecipeCache) (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdUse,
		Description: "Use an item from the party inventory",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         "item",
				Description:  "Item to use (start typing to search)",
				Required:     true,
				Autocomplete: true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			key, err := parseItemKey(optionString(getOptions(i), "item"))
			if err != nil {
				return "", err
			}

			result, err := client.UseItem(key.Type, key.ID)
			if err != nil {
				return "", err
			}

			msg := fmt.Sprintf("Used **%s**.", result.Item)
			if result.Teaches != "" {
				cache.Invalidate()
				msg += fmt.Sprintf("\nYou learned how to make **%s**!", result.Teaches)
			}
			return msg, nil
		}, ResponseConfig{Title: "✨ Item Used", Color: ColorSuccess})
	}

	return cmd, handler
}

// ProfessionsCommand shows profession levels
func ProfessionsCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdProfessions,
		Description: "Show crafting profession levels",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			professions, err := client.Professions()
			if err != nil {
				return "", err
			}
			return formatProfessions(professions), nil
		}, ResponseConfig{Title: "🛠️ Professions", Color: ColorInfo})
	}

	return cmd, handler
}

// SaveCommand persists the recipe book. Admin only.
func SaveCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	adminPerms := int64(discordgo.PermissionAdministrator)
	cmd := &discordgo.ApplicationCommand{
		Name:                     CmdSave,
		Description:              "Save the recipe book",
		DefaultMemberPermissions: &adminPerms,
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, client.Save, ResponseConfig{
			Title:  "💾 Saved",
			Color:  ColorAdmin,
			Footer: FooterRecipeCraftAdmin,
		})
	}

	return cmd, handler
}
