package domain

import (
	"fmt"
	"strings"
)

// ItemType distinguishes the three item databases an item id refers to
type ItemType string

const (
	ItemTypeGood   ItemType = "item"
	ItemTypeWeapon ItemType = "weapon"
	ItemTypeArmor  ItemType = "armor"
)

// Valid reports whether t is one of the known item types
func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeGood, ItemTypeWeapon, ItemTypeArmor:
		return true
	}
	return false
}

// ParseItemType converts user input ("Item", "weapon", "ARMOR") into an ItemType
func ParseItemType(s string) (ItemType, error) {
	t := ItemType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown item type %q | %w", s, ErrInvalidInput)
	}
	return t, nil
}

// ItemKey identifies a single item across all item databases
type ItemKey struct {
	Type ItemType `json:"type" yaml:"type"`
	ID   int      `json:"id" yaml:"id"`
}

// String renders the key as "type:id"
func (k ItemKey) String() string {
	return fmt.Sprintf("%s:%d", k.Type, k.ID)
}

// ItemRequirement is a quantity of a specific item used by a recipe
// as a product, fail product, tool or ingredient.
type ItemRequirement struct {
	Type     ItemType `json:"type" yaml:"type" validate:"required,oneof=item weapon armor"`
	ID       int      `json:"id" yaml:"id" validate:"min=1"`
	Quantity int      `json:"quantity" yaml:"quantity" validate:"min=1"`
}

// Key returns the item identity of the requirement
func (r ItemRequirement) Key() ItemKey {
	return ItemKey{Type: r.Type, ID: r.ID}
}

// Item is an entry in the item catalog
type Item struct {
	Key           ItemKey `json:"key"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Consumable    bool    `json:"consumable"`
	TeachesRecipe string  `json:"teaches_recipe,omitempty"` // recipe learned when the item is used
}
