package crafting

import (
	"context"

	"github.com/osse101/RecipeCraft_Go/internal/domain"
	"github.com/osse101/RecipeCraft_Go/internal/logger"
)

// Registry is the ordered collection of every recipe known to a game.
// Insertion order is the order definitions were loaded in and is preserved
// by every listing. Registry is not safe for concurrent use; Service
// serialises access to it.
type Registry struct {
	env     *Environment
	defs    []domain.RecipeDefinition
	recipes []*Recipe
	byName  map[string]*Recipe
}

// NewRegistry creates an empty registry over defs. Call Initialize to build recipes.
func NewRegistry(defs []domain.RecipeDefinition, env Environment) (*Registry, error) {
	resolved, err := env.resolve()
	if err != nil {
		return nil, err
	}
	return &Registry{
		env:    resolved,
		defs:   defs,
		byName: make(map[string]*Recipe, len(defs)),
	}, nil
}

// Environment returns the resolved collaborators shared by the registry's recipes
func (g *Registry) Environment() *Environment {
	return g.env
}

// SetDefinitions replaces the definitions used by the next Initialize call
func (g *Registry) SetDefinitions(defs []domain.RecipeDefinition) {
	g.defs = defs
}

// Initialize builds recipes from the registry's definitions and returns how
// many were added. Without force it only appends names the registry does not
// know yet, so calling it again after a content patch keeps all progress.
// With force every recipe is dropped and rebuilt, losing discovery flags and
// craft counters.
func (g *Registry) Initialize(ctx context.Context, force bool) int {
	log := logger.FromContext(ctx)

	if force && len(g.recipes) > 0 {
		log.Warn(LogMsgRegistryForcedReset, "recipes", len(g.recipes))
		g.recipes = nil
		g.byName = make(map[string]*Recipe, len(g.defs))
	}

	added := 0
	for _, def := range g.defs {
		if _, exists := g.byName[def.Name]; exists {
			continue
		}
		recipe := newRecipe(def, g.env)
		g.recipes = append(g.recipes, recipe)
		g.byName[def.Name] = recipe
		added++
	}

	log.Info(LogMsgRegistryInitialized, "added", added, "total", len(g.recipes), "force", force)
	return added
}

// FindByName returns the recipe with the given name
func (g *Registry) FindByName(name string) (*Recipe, bool) {
	r, ok := g.byName[name]
	return r, ok
}

// All returns every recipe in insertion order
func (g *Registry) All() []*Recipe {
	out := make([]*Recipe, len(g.recipes))
	copy(out, g.recipes)
	return out
}

// AllDiscovered returns the discovered recipes in insertion order
func (g *Registry) AllDiscovered() []*Recipe {
	return g.filter(func(r *Recipe) bool { return r.state.Discovered })
}

// DiscoveredByCategory returns the discovered recipes of one category in insertion order
func (g *Registry) DiscoveredByCategory(category string) []*Recipe {
	return g.filter(func(r *Recipe) bool {
		return r.state.Discovered && r.def.Category == category
	})
}

func (g *Registry) filter(keep func(*Recipe) bool) []*Recipe {
	out := make([]*Recipe, 0, len(g.recipes))
	for _, r := range g.recipes {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// SetDiscoveryStatus discovers (with notification) or silently forgets the
// named recipe. An unknown name is logged and reported as false.
func (g *Registry) SetDiscoveryStatus(ctx context.Context, name string, discovered bool) bool {
	log := logger.FromContext(ctx)

	recipe, ok := g.byName[name]
	if !ok {
		log.Warn(LogMsgRecipeNotFound, "recipe", name)
		return false
	}

	if discovered {
		recipe.MarkDiscovered(ctx)
	} else {
		recipe.SetDiscovered(false)
		log.Info(LogMsgDiscoveryOverridden, "recipe", name, "discovered", false)
	}
	return true
}

// DiscoverByItem discovers the recipe taught by the given item, if any
func (g *Registry) DiscoverByItem(ctx context.Context, key domain.ItemKey) bool {
	item, ok := g.env.Catalog.Lookup(key)
	if !ok || item == nil || item.TeachesRecipe == "" {
		logger.FromContext(ctx).Debug(LogMsgItemTeachesNothing, "item", key.String())
		return false
	}
	return g.SetDiscoveryStatus(ctx, item.TeachesRecipe, true)
}

// Snapshot returns the persisted state of every recipe keyed by name
func (g *Registry) Snapshot() map[string]domain.RecipeState {
	out := make(map[string]domain.RecipeState, len(g.recipes))
	for _, r := range g.recipes {
		out[r.def.Name] = r.state
	}
	return out
}

// Restore applies saved state to matching recipes and returns how many were
// restored. Names the registry does not know are ignored, and recipes absent
// from the snapshot keep their current state.
func (g *Registry) Restore(ctx context.Context, snapshot map[string]domain.RecipeState) int {
	log := logger.FromContext(ctx)

	restored := 0
	for name, state := range snapshot {
		recipe, ok := g.byName[name]
		if !ok {
			log.Warn(LogMsgUnknownRecipeInSave, "recipe", name)
			continue
		}
		recipe.restore(state)
		restored++
	}

	log.Info(LogMsgStateRestored, "restored", restored, "saved", len(snapshot))
	return restored
}
