package bootstrap

import (
	"context"
	"fmt"

	"github.com/osse101/RecipeCraft_Go/internal/config"
	"github.com/osse101/RecipeCraft_Go/internal/crafting"
	"github.com/osse101/RecipeCraft_Go/internal/event"
	"github.com/osse101/RecipeCraft_Go/internal/inventory"
	"github.com/osse101/RecipeCraft_Go/internal/logger"
	"github.com/osse101/RecipeCraft_Go/internal/profession"
	"github.com/osse101/RecipeCraft_Go/internal/repository"
	"github.com/osse101/RecipeCraft_Go/internal/sse"
	"github.com/osse101/RecipeCraft_Go/internal/toast"
)

// Game holds every in-process component of a running crafting game
type Game struct {
	Bus         *event.MemoryBus
	Party       *inventory.Party
	Professions *profession.Tracker
	Toasts      *toast.Queue
	Registry    *crafting.Registry
	Crafting    crafting.Service
	Events      *sse.Hub
}

// NewGame wires the party, professions, toasts and recipe registry around one
// event bus and returns the crafting service on top of them. Recipes are built
// but no save is loaded yet. The returned event hub is running; stop it on shutdown.
func NewGame(ctx context.Context, cfg *config.Config, content *Content, store repository.SaveStore) (*Game, error) {
	log := logger.FromContext(ctx)

	bus := InitializeEventSystem(ctx)
	party := inventory.NewParty(content.Catalog, bus)
	tracker := profession.NewTracker(bus)
	toasts := toast.NewQueue(toast.Config{
		Enabled: cfg.ShowLearnToast,
		Prefix:  cfg.ToastText,
	}, bus)

	env := crafting.Environment{
		Inventory:             party,
		Notifier:              toasts,
		Catalog:               content.Catalog,
		Bus:                   bus,
		AlwaysAwardExperience: cfg.AlwaysAwardExp,
	}

	source := RecipeSource(cfg.RecipesPath, content.Catalog)
	if cfg.ProfessionsEnabled {
		source = TrackCategories(source, tracker)
		for _, def := range content.Recipes {
			tracker.Register(def.Category)
		}
		env.Professions = tracker
		log.Info(LogMsgProfessionsTracked, "count", len(tracker.List()))
	} else {
		log.Info(LogMsgProfessionsOff)
	}

	if cfg.RNGSeed != 0 {
		env.Random = crafting.NewSeededRandomSource(cfg.RNGSeed)
		log.Info(LogMsgSeededRNG, "seed", cfg.RNGSeed)
	}

	registry, err := crafting.NewRegistry(content.Recipes, env)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateRegistry, err)
	}
	registry.Initialize(ctx, false)

	svc := crafting.NewService(registry, store, cfg.SaveSlot, source)

	if err := RegisterEventHandlers(ctx, EventHandlerDependencies{
		EventBus:        bus,
		CraftingService: svc,
	}); err != nil {
		return nil, err
	}

	hub := sse.NewHub()
	hub.Start()
	sse.NewSubscriber(hub, bus).Subscribe(ctx)

	log.Info(LogMsgGameAssembled, "recipes", len(registry.All()))

	return &Game{
		Bus:         bus,
		Party:       party,
		Professions: tracker,
		Toasts:      toasts,
		Registry:    registry,
		Crafting:    svc,
		Events:      hub,
	}, nil
}
