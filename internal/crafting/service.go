package crafting

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/osse101/RecipeCraft_Go/internal/domain"
	"github.com/osse101/RecipeCraft_Go/internal/event"
	"github.com/osse101/RecipeCraft_Go/internal/logger"
	"github.com/osse101/RecipeCraft_Go/internal/repository"
)

// DefinitionSource reloads recipe definitions, e.g. from the content file, for Reinitialize
type DefinitionSource func(ctx context.Context) ([]domain.RecipeDefinition, error)

// Service defines the interface for crafting operations
type Service interface {
	ListRecipes(ctx context.Context, category string) ([]domain.RecipeView, error)
	GetRecipe(ctx context.Context, name string) (*domain.RecipeView, error)
	StartCraft(ctx context.Context, name string) (*domain.CraftStatus, error)
	Tick(ctx context.Context, n int) domain.CraftStatus
	CraftStatus(ctx context.Context) domain.CraftStatus
	SetDiscoveryStatus(ctx context.Context, name string, discovered bool) error
	Reinitialize(ctx context.Context, force bool) (int, error)
	HandleItemUsed(ctx context.Context, evt event.Event) error
	Save(ctx context.Context) error
	Load(ctx context.Context) error
}

type service struct {
	mu       sync.Mutex
	registry *Registry
	session  *Session
	store    repository.SaveStore
	slot     string
	source   DefinitionSource
}

// NewService creates a new crafting service over an initialized registry.
// source may be nil, in which case Reinitialize reuses the current definitions.
func NewService(registry *Registry, store repository.SaveStore, slot string, source DefinitionSource) Service {
	return &service{
		registry: registry,
		session:  NewSession(registry.Environment().Bus),
		store:    store,
		slot:     slot,
		source:   source,
	}
}

// ListRecipes returns the discovered recipes, optionally narrowed to one category
func (s *service) ListRecipes(ctx context.Context, category string) ([]domain.RecipeView, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgListRecipesCalled, "category", category)

	s.mu.Lock()
	defer s.mu.Unlock()

	var recipes []*Recipe
	if category == "" {
		recipes = s.registry.AllDiscovered()
	} else {
		recipes = s.registry.DiscoveredByCategory(category)
	}

	views := make([]domain.RecipeView, 0, len(recipes))
	for _, r := range recipes {
		views = append(views, r.View(ctx))
	}
	return views, nil
}

// GetRecipe returns one discovered recipe
func (s *service) GetRecipe(ctx context.Context, name string) (*domain.RecipeView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipe, err := s.discoveredRecipe(name)
	if err != nil {
		return nil, err
	}
	view := recipe.View(ctx)
	return &view, nil
}

// StartCraft resolves a craft of the named recipe and starts its timer
func (s *service) StartCraft(ctx context.Context, name string) (*domain.CraftStatus, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgStartCraftCalled, "recipe", name)

	s.mu.Lock()
	defer s.mu.Unlock()

	recipe, err := s.discoveredRecipe(name)
	if err != nil {
		return nil, err
	}

	status, err := s.session.Start(ctx, recipe)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// Tick advances the craft timer
func (s *service) Tick(ctx context.Context, n int) domain.CraftStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Tick(ctx, n)
}

// CraftStatus reports the state of the current craft
func (s *service) CraftStatus(ctx context.Context) domain.CraftStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Status()
}

// SetDiscoveryStatus discovers (notifying) or silently forgets a recipe
func (s *service) SetDiscoveryStatus(ctx context.Context, name string, discovered bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.registry.SetDiscoveryStatus(ctx, name, discovered) {
		return fmt.Errorf("%s | %w", name, domain.ErrRecipeNotFound)
	}
	return nil
}

// Reinitialize reloads definitions and rebuilds the registry, see Registry.Initialize
func (s *service) Reinitialize(ctx context.Context, force bool) (int, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgReinitializeCalled, "force", force)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.source != nil {
		defs, err := s.source(ctx)
		if err != nil {
			return 0, fmt.Errorf(ErrMsgReloadDefinitionsFailed, err)
		}
		s.registry.SetDefinitions(defs)
	}

	if force && s.session.Phase() != domain.CraftPhaseIdle {
		// The running craft points at a recipe that is about to be discarded
		s.session.reset(ctx)
	}

	return s.registry.Initialize(ctx, force), nil
}

// HandleItemUsed discovers the recipe taught by a used item. It is an event.Handler for event.ItemUsed.
func (s *service) HandleItemUsed(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.ItemUsedPayloadV1](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgDecodeItemUsedFailed, "error", err)
		return fmt.Errorf("decode item used payload: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.registry.DiscoverByItem(ctx, payload.Item)
	return nil
}

// Save writes every recipe's state to the configured slot
func (s *service) Save(ctx context.Context) error {
	s.mu.Lock()
	snapshot := s.registry.Snapshot()
	s.mu.Unlock()

	if err := s.store.SaveRecipeStates(ctx, s.slot, snapshot); err != nil {
		return fmt.Errorf(ErrMsgSaveFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgStateSaved, "slot", s.slot, "recipes", len(snapshot))
	return nil
}

// Load restores recipe state from the configured slot. A missing save is not an error.
func (s *service) Load(ctx context.Context) error {
	log := logger.FromContext(ctx)

	states, err := s.store.LoadRecipeStates(ctx, s.slot)
	if errors.Is(err, domain.ErrSaveNotFound) {
		log.Info(LogMsgNoSaveFound, "slot", s.slot)
		return nil
	}
	if err != nil {
		return fmt.Errorf(ErrMsgLoadFailed, err)
	}

	s.mu.Lock()
	restored := s.registry.Restore(ctx, states)
	s.mu.Unlock()

	log.Info(LogMsgStateLoaded, "slot", s.slot, "restored", restored)
	return nil
}

func (s *service) discoveredRecipe(name string) (*Recipe, error) {
	recipe, ok := s.registry.FindByName(name)
	if !ok {
		return nil, fmt.Errorf("%s | %w", name, domain.ErrRecipeNotFound)
	}
	if !recipe.State().Discovered {
		return nil, fmt.Errorf("%s | %w", name, domain.ErrRecipeLocked)
	}
	return recipe, nil
}
