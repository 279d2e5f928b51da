package item

import (
	"strings"

	"github.com/osse101/RecipeCraft_Go/internal/domain"
)

// Catalog is a read-only index of item definitions. It is safe for concurrent use once built.
type Catalog struct {
	items  map[domain.ItemKey]*domain.Item
	order  []domain.ItemKey
	byName map[string]domain.ItemKey
}

// NewCatalog indexes validated definitions. Later duplicates of a key are ignored.
func NewCatalog(defs []Def) *Catalog {
	c := &Catalog{
		items:  make(map[domain.ItemKey]*domain.Item, len(defs)),
		order:  make([]domain.ItemKey, 0, len(defs)),
		byName: make(map[string]domain.ItemKey, len(defs)),
	}
	for _, def := range defs {
		it := def.toItem()
		if _, exists := c.items[it.Key]; exists {
			continue
		}
		c.items[it.Key] = it
		c.order = append(c.order, it.Key)
		if _, taken := c.byName[strings.ToLower(it.Name)]; !taken {
			c.byName[strings.ToLower(it.Name)] = it.Key
		}
	}
	return c
}

// Lookup returns the item for key
func (c *Catalog) Lookup(key domain.ItemKey) (*domain.Item, bool) {
	it, ok := c.items[key]
	return it, ok
}

// FindByName looks an item up by its display name, case-insensitively
func (c *Catalog) FindByName(name string) (*domain.Item, bool) {
	key, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}
	return c.items[key], true
}

// All returns every item in file order
func (c *Catalog) All() []*domain.Item {
	out := make([]*domain.Item, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.items[key])
	}
	return out
}

// Len returns the number of items
func (c *Catalog) Len() int {
	return len(c.order)
}
