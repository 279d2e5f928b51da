package discord

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/RecipeCraft_Go/internal/domain"
	"github.com/osse101/RecipeCraft_Go/internal/inventory"
)

// categoryTitle renders a recipe category for display. An empty category is "General".
func categoryTitle(category string) string {
	if strings.TrimSpace(category) == "" {
		return "General"
	}
	return cases.Title(language.English).String(category)
}

// parseDiscoverArgs splits "<recipe name...> <true|false>" into its parts.
// Recipe names may contain spaces; the flag is always the last word.
func parseDiscoverArgs(args string) (string, bool, error) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return "", false, fmt.Errorf("expected a recipe name and true/false | %w", domain.ErrInvalidInput)
	}

	flag, err := strconv.ParseBool(strings.ToLower(fields[len(fields)-1]))
	if err != nil {
		return "", false, fmt.Errorf("discovery flag %q is not true or false | %w", fields[len(fields)-1], domain.ErrInvalidInput)
	}

	return strings.Join(fields[:len(fields)-1], " "), flag, nil
}

// formatRecipeList groups recipes by category, one line each
func formatRecipeList(recipes []domain.RecipeView, category string) string {
	if len(recipes) == 0 {
		if category != "" {
			return fmt.Sprintf(MsgNoRecipesInGroup, categoryTitle(category))
		}
		return MsgNoRecipes
	}

	sorted := make([]domain.RecipeView, len(recipes))
	copy(sorted, recipes)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].Category < sorted[b].Category
	})

	var sb strings.Builder
	lastCategory := "\x00"
	for _, r := range sorted {
		if r.Category != lastCategory {
			if sb.Len() > 0 {
				sb.WriteString("\n")
			}
			fmt.Fprintf(&sb, "**%s**\n", categoryTitle(r.Category))
			lastCategory = r.Category
		}

		mark := "▫️"
		if r.Eligible {
			mark = "✅"
		}
		fmt.Fprintf(&sb, "%s %s (%d%%, %d ticks)", mark, r.Name, r.SuccessRate, r.CraftDuration)
		if r.TimesCrafted > 0 {
			fmt.Fprintf(&sb, " ×%d", r.TimesCrafted)
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// formatRequirements renders a requirement list as "2× item:5, 1× weapon:3"
func formatRequirements(reqs []domain.ItemRequirement) string {
	if len(reqs) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(reqs))
	for _, req := range reqs {
		parts = append(parts, fmt.Sprintf("%d× %s", req.Quantity, req.Key()))
	}
	return strings.Join(parts, ", ")
}

// formatRecipeDetail describes one recipe in full
func formatRecipeDetail(r *domain.RecipeView) string {
	var sb strings.Builder
	if r.Description != "" {
		sb.WriteString(r.Description)
		sb.WriteString("\n\n")
	}
	fmt.Fprintf(&sb, "**Category:** %s\n", categoryTitle(r.Category))
	fmt.Fprintf(&sb, "**Success rate:** %d%%\n", r.SuccessRate)
	fmt.Fprintf(&sb, "**Craft time:** %d ticks\n", r.CraftDuration)
	if r.Category != "" {
		fmt.Fprintf(&sb, "**Required level:** %d\n", r.RequiredLevel)
	}
	fmt.Fprintf(&sb, "**Ingredients:** %s\n", formatRequirements(r.Ingredients))
	fmt.Fprintf(&sb, "**Tools:** %s\n", formatRequirements(r.Tools))
	fmt.Fprintf(&sb, "**Products:** %s", formatRequirements(r.Products))
	if len(r.FailProducts) > 0 {
		fmt.Fprintf(&sb, "\n**On failure:** %s", formatRequirements(r.FailProducts))
	}
	return sb.String()
}

// formatCraftStatus describes the craft state machine
func formatCraftStatus(status *domain.CraftStatus) string {
	switch status.Phase {
	case domain.CraftPhaseCrafting:
		return fmt.Sprintf("Crafting **%s**... %s %d%%", status.Recipe, progressBar(status.Progress), int(status.Progress*100))
	case domain.CraftPhaseFinished:
		if status.Result == nil {
			return fmt.Sprintf("**%s** finished.", status.Recipe)
		}
		if status.Result.Succeeded {
			return fmt.Sprintf("✨ **%s** succeeded!\nReceived: %s", status.Recipe, formatRequirements(status.Result.Rewards))
		}
		if len(status.Result.Rewards) > 0 {
			return fmt.Sprintf("💥 **%s** failed.\nSalvaged: %s", status.Recipe, formatRequirements(status.Result.Rewards))
		}
		return fmt.Sprintf("💥 **%s** failed.", status.Recipe)
	default:
		return "Nothing is being crafted."
	}
}

const progressBarWidth = 10

// progressBar draws a fixed width bar for a fraction in [0, 1]
func progressBar(fraction float64) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction * progressBarWidth)
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", progressBarWidth-filled) + "]"
}

// formatInventory renders the party inventory one slot per line
func formatInventory(slots []inventory.Slot) string {
	if len(slots) == 0 {
		return MsgEmptyInventory
	}
	var sb strings.Builder
	for _, slot := range slots {
		name := slot.Name
		if name == "" {
			name = slot.Item.String()
		}
		fmt.Fprintf(&sb, "%s ×%d (`%s`)\n", name, slot.Quantity, slot.Item)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// formatProfessions renders profession levels and progress
func formatProfessions(professions []domain.ProfessionInfo) string {
	if len(professions) == 0 {
		return MsgNoProfessions
	}
	var sb strings.Builder
	for _, p := range professions {
		fmt.Fprintf(&sb, "**%s** Lv. %d (%d XP, %d to next)\n", categoryTitle(p.Name), p.Level, p.Experience, p.XPToNext)
	}
	return strings.TrimRight(sb.String(), "\n")
}
