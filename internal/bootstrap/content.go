package bootstrap

import (
	"context"
	"fmt"

	"github.com/osse101/RecipeCraft_Go/internal/config"
	"github.com/osse101/RecipeCraft_Go/internal/crafting"
	"github.com/osse101/RecipeCraft_Go/internal/domain"
	"github.com/osse101/RecipeCraft_Go/internal/item"
	"github.com/osse101/RecipeCraft_Go/internal/logger"
	"github.com/osse101/RecipeCraft_Go/internal/profession"
)

// Content is the static game data read at startup
type Content struct {
	Catalog *item.Catalog
	Recipes []domain.RecipeDefinition
}

// LoadContent reads the item catalog and then the recipes, whose item
// references are checked against it. Invalid recipes are skipped and logged.
func LoadContent(ctx context.Context, cfg *config.Config) (*Content, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgLoadingContent, "items", cfg.ItemsPath, "recipes", cfg.RecipesPath)

	catalog, err := item.LoadCatalog(ctx, cfg.ItemsPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadItems, err)
	}

	report, err := crafting.LoadRecipes(ctx, cfg.RecipesPath, catalog)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadRecipes, err)
	}

	log.Info(LogMsgContentLoaded,
		"items", catalog.Len(),
		"recipes", len(report.Definitions),
		"skipped", len(report.Skipped))

	return &Content{Catalog: catalog, Recipes: report.Definitions}, nil
}

// RecipeSource rereads the recipe file on every call so a forced
// reinitialization picks up edits made while the server runs.
func RecipeSource(path string, catalog *item.Catalog) crafting.DefinitionSource {
	return func(ctx context.Context) ([]domain.RecipeDefinition, error) {
		logger.FromContext(ctx).Info(LogMsgReloadingRecipes, "path", path)

		report, err := crafting.LoadRecipes(ctx, path, catalog)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadRecipes, err)
		}
		return report.Definitions, nil
	}
}

// TrackCategories wraps source so every category it returns is registered
// with professions. Without it a category first seen in a content patch
// would have no level and its recipes could never pass the level gate.
func TrackCategories(source crafting.DefinitionSource, professions *profession.Tracker) crafting.DefinitionSource {
	return func(ctx context.Context) ([]domain.RecipeDefinition, error) {
		defs, err := source(ctx)
		if err != nil {
			return nil, err
		}
		for _, def := range defs {
			professions.Register(def.Category)
		}
		return defs, nil
	}
}
