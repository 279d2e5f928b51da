package crafting

import (
	"context"
	"fmt"
	"math"

	"github.com/osse101/RecipeCraft_Go/internal/domain"
	"github.com/osse101/RecipeCraft_Go/internal/logger"
)

// Recipe is a craftable recipe: its static definition plus the progress a
// player has made with it. Recipes are owned by a Registry.
type Recipe struct {
	def   domain.RecipeDefinition
	state domain.RecipeState
	env   *Environment
}

func newRecipe(def domain.RecipeDefinition, env *Environment) *Recipe {
	return &Recipe{
		def:   def,
		state: domain.RecipeState{Discovered: def.InitiallyDiscovered},
		env:   env,
	}
}

// Name returns the unique recipe name
func (r *Recipe) Name() string {
	return r.def.Name
}

// Definition returns the static configuration of the recipe
func (r *Recipe) Definition() domain.RecipeDefinition {
	return r.def
}

// State returns the persisted part of the recipe
func (r *Recipe) State() domain.RecipeState {
	return r.state
}

// View projects the recipe for read-only callers
func (r *Recipe) View(ctx context.Context) domain.RecipeView {
	return domain.RecipeView{
		RecipeDefinition: r.def,
		RecipeState:      r.state,
		Eligible:         r.IsEligible(ctx),
	}
}

// IsEligible reports whether the party can craft the recipe right now.
// It has no side effects.
func (r *Recipe) IsEligible(ctx context.Context) bool {
	return r.meetsLevelRequirement() &&
		r.hasItems(ctx, r.def.Tools) &&
		r.hasItems(ctx, r.def.Ingredients)
}

func (r *Recipe) meetsLevelRequirement() bool {
	level, ok := r.env.Professions.LevelOf(r.def.Category)
	if !ok {
		return false
	}
	return level >= r.def.RequiredLevel
}

func (r *Recipe) hasItems(ctx context.Context, reqs []domain.ItemRequirement) bool {
	for _, req := range reqs {
		if !r.resolvable(ctx, req) {
			continue
		}
		if r.env.Inventory.QuantityOf(req.Key()) < req.Quantity {
			return false
		}
	}
	return true
}

func (r *Recipe) resolvable(ctx context.Context, req domain.ItemRequirement) bool {
	if _, ok := r.env.Catalog.Lookup(req.Key()); ok {
		return true
	}
	logger.FromContext(ctx).Warn(LogMsgUnresolvableItem, "recipe", r.def.Name, "item", req.Key().String())
	return false
}

// ResolveCraft decides the outcome of one craft immediately. Ingredients are
// consumed, rewards are added to the inventory and experience is awarded
// before returning; the caller only delays revealing the result until
// ActualResolutionTime ticks have passed.
//
// Returns domain.ErrNotEligible without touching any state when the recipe
// cannot be crafted.
func (r *Recipe) ResolveCraft(ctx context.Context) (*domain.CraftAttemptResult, error) {
	log := logger.FromContext(ctx)

	if !r.IsEligible(ctx) {
		return nil, fmt.Errorf("cannot craft %s | %w", r.def.Name, domain.ErrNotEligible)
	}

	succeeded := r.env.Random.Float64() < float64(r.def.SuccessRate)/100

	for _, ing := range r.def.Ingredients {
		if !r.resolvable(ctx, ing) {
			continue
		}
		r.env.Inventory.Remove(ing.Key(), ing.Quantity)
	}

	duration := float64(r.def.CraftDuration)
	result := &domain.CraftAttemptResult{
		Succeeded:        succeeded,
		ExpectedDuration: duration,
	}

	if succeeded {
		r.state.TimesCrafted++
		result.Rewards = cloneRequirements(r.def.Products)
		result.ActualResolutionTime = duration
	} else {
		// Failures reveal early, somewhere in [d/2, d)
		half := duration / 2
		result.Rewards = cloneRequirements(r.def.FailProducts)
		failAt := half + r.env.Random.Float64()*half
		if failAt >= duration {
			// r close to 1 can round up to d
			failAt = math.Nextafter(duration, 0)
		}
		result.ActualResolutionTime = failAt
	}

	for _, reward := range result.Rewards {
		if !r.resolvable(ctx, reward) {
			continue
		}
		r.env.Inventory.Add(reward.Key(), reward.Quantity)
	}

	if succeeded || r.env.AlwaysAwardExperience {
		r.env.Professions.AwardExperience(ctx, r.def.Category, r.def.ExperienceAward)
		log.Debug(LogMsgExperienceAwarded, "category", r.def.Category, "amount", r.def.ExperienceAward)
	}

	log.Info(LogMsgCraftResolved,
		"recipe", r.def.Name,
		"succeeded", succeeded,
		"resolution_time", result.ActualResolutionTime,
		"times_crafted", r.state.TimesCrafted)

	return result, nil
}

// MarkDiscovered discovers the recipe and notifies on the first discovery only
func (r *Recipe) MarkDiscovered(ctx context.Context) {
	if r.state.Discovered {
		return
	}
	r.state.Discovered = true
	logger.FromContext(ctx).Info(LogMsgRecipeLearned, "recipe", r.def.Name)
	r.env.Notifier.Notify(ctx, r.def.Name, r.def.Cues.Learn)
}

// SetDiscovered overrides the discovered flag without notifying anyone
func (r *Recipe) SetDiscovered(discovered bool) {
	r.state.Discovered = discovered
}

// Progress returns how far elapsed ticks are through the craft duration, clamped to [0, 1]
func (r *Recipe) Progress(elapsed int) float64 {
	if elapsed <= 0 {
		return 0
	}
	ratio := float64(elapsed) / float64(r.def.CraftDuration)
	if ratio > 1 {
		return 1
	}
	return ratio
}

func (r *Recipe) restore(state domain.RecipeState) {
	r.state = state
}

func cloneRequirements(reqs []domain.ItemRequirement) []domain.ItemRequirement {
	if len(reqs) == 0 {
		return []domain.ItemRequirement{}
	}
	out := make([]domain.ItemRequirement, len(reqs))
	copy(out, reqs)
	return out
}
