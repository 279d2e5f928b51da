package crafting

import (
	"context"
	"sync"

	"github.com/osse101/RecipeCraft_Go/internal/domain"
	"github.com/osse101/RecipeCraft_Go/internal/event"
)

// Keys used across crafting tests
var (
	keyHerb   = domain.ItemKey{Type: domain.ItemTypeGood, ID: 1}
	keyWater  = domain.ItemKey{Type: domain.ItemTypeGood, ID: 2}
	keyPotion = domain.ItemKey{Type: domain.ItemTypeGood, ID: 3}
	keySludge = domain.ItemKey{Type: domain.ItemTypeGood, ID: 4}
	keyKettle = domain.ItemKey{Type: domain.ItemTypeGood, ID: 5}
	keyBook   = domain.ItemKey{Type: domain.ItemTypeGood, ID: 6}
	keyIron   = domain.ItemKey{Type: domain.ItemTypeGood, ID: 7}
	keySword  = domain.ItemKey{Type: domain.ItemTypeWeapon, ID: 1}
	keyHammer = domain.ItemKey{Type: domain.ItemTypeWeapon, ID: 2}
)

func req(key domain.ItemKey, qty int) domain.ItemRequirement {
	return domain.ItemRequirement{Type: key.Type, ID: key.ID, Quantity: qty}
}

// potionDef needs 2 herbs and 1 water, with the kettle as a tool
func potionDef() domain.RecipeDefinition {
	return domain.RecipeDefinition{
		Name:            "Potion",
		Category:        "Alchemy",
		SuccessRate:     100,
		CraftDuration:   120,
		RequiredLevel:   1,
		ExperienceAward: 5,
		Products:        []domain.ItemRequirement{req(keyPotion, 1)},
		FailProducts:    []domain.ItemRequirement{req(keySludge, 1)},
		Tools:           []domain.ItemRequirement{req(keyKettle, 1)},
		Ingredients:     []domain.ItemRequirement{req(keyHerb, 2), req(keyWater, 1)},
		Cues: domain.RecipeCues{
			Craft:   domain.NewAudioCue("Bubble"),
			Success: domain.NewAudioCue("Chime"),
			Failure: domain.NewAudioCue("Buzzer"),
			Learn:   domain.NewAudioCue("Book"),
		},
	}
}

func swordDef() domain.RecipeDefinition {
	return domain.RecipeDefinition{
		Name:            "Iron Sword",
		Category:        "Smithing",
		SuccessRate:     100,
		CraftDuration:   60,
		RequiredLevel:   3,
		ExperienceAward: 10,
		Products:        []domain.ItemRequirement{req(keySword, 1)},
		Tools:           []domain.ItemRequirement{req(keyHammer, 1)},
		Ingredients:     []domain.ItemRequirement{req(keyIron, 3)},
	}
}

// fakeInventory is a map-backed Inventory that never goes negative
type fakeInventory struct {
	mu    sync.Mutex
	items map[domain.ItemKey]int
}

func newFakeInventory(stock map[domain.ItemKey]int) *fakeInventory {
	items := make(map[domain.ItemKey]int, len(stock))
	for k, v := range stock {
		items[k] = v
	}
	return &fakeInventory{items: items}
}

func (f *fakeInventory) QuantityOf(key domain.ItemKey) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items[key]
}

func (f *fakeInventory) Remove(key domain.ItemKey, quantity int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[key] -= quantity
	if f.items[key] < 0 {
		f.items[key] = 0
	}
}

func (f *fakeInventory) Add(key domain.ItemKey, quantity int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[key] += quantity
}

type award struct {
	category string
	amount   int
}

// fakeProfessions knows the categories in levels; everything else is unknown
type fakeProfessions struct {
	levels map[string]int
	awards []award
}

func (f *fakeProfessions) LevelOf(category string) (int, bool) {
	level, ok := f.levels[category]
	return level, ok
}

func (f *fakeProfessions) AwardExperience(ctx context.Context, category string, amount int) {
	f.awards = append(f.awards, award{category: category, amount: amount})
}

type notification struct {
	recipe string
	cue    domain.AudioCue
}

type recordingNotifier struct {
	calls []notification
}

func (n *recordingNotifier) Notify(ctx context.Context, recipeName string, cue domain.AudioCue) {
	n.calls = append(n.calls, notification{recipe: recipeName, cue: cue})
}

// mapCatalog resolves only the items it holds
type mapCatalog map[domain.ItemKey]*domain.Item

func (c mapCatalog) Lookup(key domain.ItemKey) (*domain.Item, bool) {
	item, ok := c[key]
	return item, ok
}

// sequenceRandom replays values in order and then repeats the last one
type sequenceRandom struct {
	values []float64
	calls  int
}

func (s *sequenceRandom) Float64() float64 {
	i := s.calls
	if i >= len(s.values) {
		i = len(s.values) - 1
	}
	s.calls++
	return s.values[i]
}

func fixedRandom(v float64) *sequenceRandom {
	return &sequenceRandom{values: []float64{v}}
}

// eventRecorder subscribes to every crafting event on a MemoryBus
type eventRecorder struct {
	mu     sync.Mutex
	events []event.Event
}

func newEventRecorder(bus *event.MemoryBus) *eventRecorder {
	rec := &eventRecorder{}
	for _, t := range []event.Type{event.CraftStarted, event.CraftCompleted, event.RecipeLearned} {
		bus.Subscribe(t, rec.handle)
	}
	return rec
}

func (r *eventRecorder) handle(ctx context.Context, evt event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return nil
}

func (r *eventRecorder) ofType(t event.Type) []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []event.Event
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// testFixture wires a registry over fakes with the potion and sword recipes discovered
type testFixture struct {
	inv         *fakeInventory
	professions *fakeProfessions
	notifier    *recordingNotifier
	random      *sequenceRandom
	bus         *event.MemoryBus
	events      *eventRecorder
	registry    *Registry
}

func newTestFixture(defs ...domain.RecipeDefinition) *testFixture {
	if len(defs) == 0 {
		potion := potionDef()
		potion.InitiallyDiscovered = true
		sword := swordDef()
		sword.InitiallyDiscovered = true
		defs = []domain.RecipeDefinition{potion, sword}
	}

	f := &testFixture{
		inv: newFakeInventory(map[domain.ItemKey]int{
			keyHerb: 10, keyWater: 5, keyKettle: 1,
		}),
		professions: &fakeProfessions{levels: map[string]int{"Alchemy": 1, "Smithing": 1}},
		notifier:    &recordingNotifier{},
		random:      fixedRandom(0.5),
		bus:         event.NewMemoryBus(),
	}
	f.events = newEventRecorder(f.bus)

	registry, err := NewRegistry(defs, Environment{
		Inventory:   f.inv,
		Professions: f.professions,
		Notifier:    f.notifier,
		Random:      f.random,
		Bus:         f.bus,
	})
	if err != nil {
		panic(err)
	}
	registry.Initialize(context.Background(), false)
	f.registry = registry
	return f
}

func (f *testFixture) recipe(name string) *Recipe {
	r, ok := f.registry.FindByName(name)
	if !ok {
		panic("missing recipe " + name)
	}
	return r
}
