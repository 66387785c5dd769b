// internal/domain/menu/entity.go
package menu

import (
	"errors"
	"strings"

	cartdom "tableside/internal/domain/cart"
)

var (
	ErrItemNotFound   = errors.New("menu: item not found")
	ErrOptionNotFound = errors.New("menu: customization option not found")
)

// CustomizationOption is one selectable option on a menu item.
type CustomizationOption struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Price cartdom.Cents `json:"price"`
}

// Item is a menu entry the reference service resolves add requests against.
// Carts cache Name/BasePrice at add time; later menu edits do not touch
// existing lines.
type Item struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	BasePrice cartdom.Cents         `json:"basePrice"`
	Options   []CustomizationOption `json:"options"`
}

// Catalog is an in-memory menu lookup.
type Catalog struct {
	items map[string]Item
}

// NewCatalog builds a catalog from items. Later duplicates win.
func NewCatalog(items []Item) *Catalog {
	m := make(map[string]Item, len(items))
	for _, it := range items {
		id := strings.TrimSpace(it.ID)
		if id == "" {
			continue
		}
		it.ID = id
		m[id] = it
	}
	return &Catalog{items: m}
}

// Item returns the menu item with id.
func (c *Catalog) Item(id string) (Item, error) {
	if c == nil {
		return Item{}, ErrItemNotFound
	}
	it, ok := c.items[strings.TrimSpace(id)]
	if !ok {
		return Item{}, ErrItemNotFound
	}
	return it, nil
}

// Option returns the customization option optionID on menu item itemID.
func (c *Catalog) Option(itemID, optionID string) (CustomizationOption, error) {
	it, err := c.Item(itemID)
	if err != nil {
		return CustomizationOption{}, err
	}
	oid := strings.TrimSpace(optionID)
	for _, op := range it.Options {
		if op.ID == oid {
			return op, nil
		}
	}
	return CustomizationOption{}, ErrOptionNotFound
}
