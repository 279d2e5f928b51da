package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// RecipesCommand lists discovered recipes, optionally for one category
func RecipesCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdRecipes,
		Description: "List the recipes you know",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "category",
				Description: "Only show recipes of this profession (e.g. alchemy)",
				Required:    false,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		category := optionString(getOptions(i), "category")
		title := "📜 Known Recipes"
		if category != "" {
			title = fmt.Sprintf("📜 %s Recipes", categoryTitle(category))
		}

		handleEmbedResponse(s, i, func() (string, error) {
			recipes, err := client.ListRecipes(category)
			if err != nil {
				return "", err
			}
			return formatRecipeList(recipes, category), nil
		}, ResponseConfig{Title: title, Color: ColorInfo})
	}

	return cmd, handler
}

// RecipeCommand shows the full details of one recipe
func RecipeCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdRecipe,
		Description: "Show what a recipe needs and makes",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         "name",
				Description:  "Recipe name (start typing to search)",
				Required:     true,
				Autocomplete: true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		name := optionString(getOptions(i), "name")
		handleEmbedResponse(s, i, func() (string, error) {
			recipe, err := client.GetRecipe(name)
			if err != nil {
				return "", err
			}
			return formatRecipeDetail(recipe), nil
		}, ResponseConfig{Title: "📖 " + name, Color: ColorInfo})
	}

	return cmd, handler
}

// CraftCommand starts crafting a recipe
func CraftCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdCraft,
		Description: "Craft a recipe you have discovered",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         "recipe",
				Description:  "Recipe to craft (start typing to search)",
				Required:     true,
				Autocomplete: true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		recipe := optionString(getOptions(i), "recipe")
		handleEmbedResponse(s, i, func() (string, error) {
			status, err := client.StartCraft(recipe)
			if err != nil {
				return "", err
			}
			return formatCraftStatus(status) + "\nUse `/craft-status` to check on it.", nil
		}, ResponseConfig{Title: "🔨 Crafting Started", Color: ColorCraft})
	}

	return cmd, handler
}

// CraftStatusCommand reports progress or the outcome of the current craft
func CraftStatusCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdCraftStatus,
		Description: "Check on the current craft",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		status, err := client.CraftStatus()
		if err != nil {
			respondFriendlyError(s, i, err)
			return
		}

		color := ColorCraft
		if status.Result != nil {
			color = ColorFailure
			if status.Result.Succeeded {
				color = ColorSuccess
			}
		}
		sendEmbed(s, i, createEmbed("🔨 Craft Status", formatCraftStatus(status), color, ""))
	}

	return cmd, handler
}

// DiscoverCommand sets a recipe's discovered flag. Admin only.
// Takes free text so recipe names with spaces work: "Fire Potion true".
func DiscoverCommand(cache *RecipeCache) (*discordgo.ApplicationCommand, CommandHandler) {
	adminPerms := int64(discordgo.PermissionAdministrator)
	cmd := &discordgo.ApplicationCommand{
		Name:                     CmdDiscover,
		Description:              "Teach or forget a recipe",
		DefaultMemberPermissions: &adminPerms,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "args",
				Description: "<recipe name> <true|false>",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		name, discovered, err := parseDiscoverArgs(optionString(getOptions(i), "args"))
		if err != nil {
			respondError(s, i, MsgDiscoverUsage)
			return
		}

		if _, err := client.SetDiscovery(name, discovered); err != nil {
			respondFriendlyError(s, i, err)
			return
		}
		cache.Invalidate()

		verb := "forgotten"
		if discovered {
			verb = "discovered"
		}
		sendEmbed(s, i, createEmbed("📜 Recipe Updated", fmt.Sprintf("**%s** is now %s.", name, verb), ColorAdmin, FooterRecipeCraftAdmin))
	}

	return cmd, handler
}
