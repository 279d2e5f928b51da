package inventory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/osse101/RecipeCraft_Go/internal/domain"
	"github.com/osse101/RecipeCraft_Go/internal/event"
	"github.com/osse101/RecipeCraft_Go/internal/logger"
)

// Catalog resolves item definitions for Use
type Catalog interface {
	Lookup(key domain.ItemKey) (*domain.Item, bool)
}

// Slot is a held quantity of one item
type Slot struct {
	Item     domain.ItemKey `json:"item"`
	Name     string         `json:"name,omitempty"`
	Quantity int            `json:"quantity"`
}

// Party is the shared in-memory inventory of the player's party. It is safe for concurrent use.
type Party struct {
	mu      sync.RWMutex
	items   map[domain.ItemKey]int
	catalog Catalog
	bus     event.Bus
}

// NewParty creates an empty party inventory. catalog and bus may be nil.
func NewParty(catalog Catalog, bus event.Bus) *Party {
	return &Party{
		items:   make(map[domain.ItemKey]int),
		catalog: catalog,
		bus:     bus,
	}
}

// QuantityOf returns how many of key the party holds
func (p *Party) QuantityOf(key domain.ItemKey) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.items[key]
}

// Remove takes up to quantity of key, never going below zero
func (p *Party) Remove(key domain.ItemKey, quantity int) {
	if quantity <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	left := p.items[key] - quantity
	if left <= 0 {
		delete(p.items, key)
		return
	}
	p.items[key] = left
}

// Add gives quantity of key to the party
func (p *Party) Add(key domain.ItemKey, quantity int) {
	if quantity <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items[key] += quantity
}

// Give validates and adds items, for callers outside the crafting core
func (p *Party) Give(ctx context.Context, key domain.ItemKey, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf(ErrMsgQuantityNotPositive+" | %w", quantity, domain.ErrInvalidInput)
	}
	if p.catalog != nil {
		if _, ok := p.catalog.Lookup(key); !ok {
			return fmt.Errorf("%s | %w", key, domain.ErrItemNotFound)
		}
	}

	p.Add(key, quantity)
	logger.FromContext(ctx).Info(LogMsgItemsAdded, "item", key.String(), "quantity", quantity)
	return nil
}

// Use uses one of key from the inventory. Consumable items are removed.
// An item.used event is published so that item effects such as teaching a
// recipe can react.
func (p *Party) Use(ctx context.Context, key domain.ItemKey) (*domain.Item, error) {
	log := logger.FromContext(ctx)

	it := &domain.Item{Key: key, Consumable: true}
	if p.catalog != nil {
		found, ok := p.catalog.Lookup(key)
		if !ok {
			return nil, fmt.Errorf("%s | %w", key, domain.ErrItemNotFound)
		}
		it = found
	}

	p.mu.Lock()
	if p.items[key] < 1 {
		p.mu.Unlock()
		return nil, fmt.Errorf(ErrMsgNotHeld+" | %w", key, domain.ErrInsufficientQuantity)
	}
	if it.Consumable {
		p.items[key]--
		if p.items[key] == 0 {
			delete(p.items, key)
		}
	}
	p.mu.Unlock()

	log.Info(LogMsgItemUsed, "item", key.String(), "consumed", it.Consumable)

	if p.bus != nil {
		if err := p.bus.Publish(ctx, event.NewItemUsedEvent(key, it.Consumable)); err != nil {
			log.Error(LogMsgPublishFailed, "item", key.String(), "error", err)
		}
	}

	return it, nil
}

// Slots returns every held item sorted by type then id
func (p *Party) Slots() []Slot {
	p.mu.RLock()
	slots := make([]Slot, 0, len(p.items))
	for key, qty := range p.items {
		slots = append(slots, Slot{Item: key, Quantity: qty})
	}
	p.mu.RUnlock()

	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Item.Type != slots[j].Item.Type {
			return slots[i].Item.Type < slots[j].Item.Type
		}
		return slots[i].Item.ID < slots[j].Item.ID
	})

	if p.catalog != nil {
		for i := range slots {
			if it, ok := p.catalog.Lookup(slots[i].Item); ok {
				slots[i].Name = it.Name
			}
		}
	}
	return slots
}
