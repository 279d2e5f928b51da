package crafting

import (
	"context"
	"fmt"
	"math"

	"github.com/osse101/RecipeCraft_Go/internal/domain"
	"github.com/osse101/RecipeCraft_Go/internal/event"
)

// Inventory is the party inventory recipes read from and write to
type Inventory interface {
	QuantityOf(key domain.ItemKey) int
	Remove(key domain.ItemKey, quantity int)
	Add(key domain.ItemKey, quantity int)
}

// Professions exposes the level and experience of crafting categories.
// LevelOf returns false for a category the profession system does not know.
type Professions interface {
	LevelOf(category string) (int, bool)
	AwardExperience(ctx context.Context, category string, amount int)
}

// Notifier is told when a recipe becomes discovered
type Notifier interface {
	Notify(ctx context.Context, recipeName string, cue domain.AudioCue)
}

// ItemCatalog resolves item references. A missing item is not an error;
// recipe checks skip references the catalog cannot resolve.
type ItemCatalog interface {
	Lookup(key domain.ItemKey) (*domain.Item, bool)
}

// Environment is the set of collaborators shared by every recipe in a registry.
// Only Inventory is required; the rest fall back to no-op implementations.
type Environment struct {
	Inventory   Inventory
	Professions Professions
	Notifier    Notifier
	Catalog     ItemCatalog
	Random      RandomSource
	Bus         event.Bus

	// AlwaysAwardExperience grants experience on failed crafts too
	AlwaysAwardExperience bool
}

func (e Environment) resolve() (*Environment, error) {
	if e.Inventory == nil {
		return nil, fmt.Errorf("%s | %w", ErrMsgInventoryRequired, domain.ErrInvalidInput)
	}
	if e.Professions == nil {
		e.Professions = noProfessions{}
	}
	if e.Notifier == nil {
		e.Notifier = noNotifier{}
	}
	if e.Catalog == nil {
		e.Catalog = openCatalog{}
	}
	if e.Random == nil {
		e.Random = DefaultRandomSource()
	}
	if e.Bus == nil {
		e.Bus = noBus{}
	}
	return &e, nil
}

// noProfessions stands in when no profession system is installed: every level gate passes
type noProfessions struct{}

func (noProfessions) LevelOf(string) (int, bool) { return math.MaxInt32, true }

func (noProfessions) AwardExperience(context.Context, string, int) {}

type noNotifier struct{}

func (noNotifier) Notify(context.Context, string, domain.AudioCue) {}

// openCatalog resolves every reference to an anonymous item
type openCatalog struct{}

func (openCatalog) Lookup(key domain.ItemKey) (*domain.Item, bool) {
	return &domain.Item{Key: key}, true
}

type noBus struct{}

func (noBus) Publish(context.Context, event.Event) error { return nil }

func (noBus) Subscribe(event.Type, event.Handler) {}
