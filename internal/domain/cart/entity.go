// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidCart = errors.New("cart: invalid")
)

// TempIDPrefix marks a client-synthesized item identifier whose creation
// request has not been confirmed by the server yet. Temporary identifiers are
// supplanted by the next authoritative snapshot and must never be persisted.
const TempIDPrefix = "temp-"

// Cents is a money amount in the smallest currency unit.
type Cents int64

// String renders the amount as a decimal, e.g. 1150 -> "11.50".
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Customization is one selected option on a line item.
// Name and Price are snapshotted at add time so later catalog edits do not
// retroactively alter an existing line.
type Customization struct {
	OptionID string `json:"customizationOptionId"`
	Name     string `json:"name"`
	Price    Cents  `json:"price"`
}

// CartItem represents one line item in a cart.
type CartItem struct {
	// ID is the server-assigned identifier, or a TempIDPrefix-ed placeholder
	// while the creating request is in flight.
	ID string `json:"id"`

	MenuItemID string `json:"menuItemId"`

	// Name and UnitPrice are cached from the menu at add time.
	Name      string `json:"name"`
	UnitPrice Cents  `json:"unitPrice"`

	// Quantity is always >= 1; a decrement to zero removes the line instead.
	Quantity int `json:"quantity"`

	Notes *string `json:"notes,omitempty"`

	Customizations []Customization `json:"customizations"`

	AddedAt   time.Time `json:"addedAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsTemporary reports whether the item still carries a client-synthesized
// identifier.
func (it CartItem) IsTemporary() bool {
	return strings.HasPrefix(it.ID, TempIDPrefix)
}

// UnitTotal is the base price plus all selected customizations, per unit.
func (it CartItem) UnitTotal() Cents {
	total := it.UnitPrice
	for _, c := range it.Customizations {
		total += c.Price
	}
	return total
}

// LineTotal is UnitTotal multiplied by quantity.
func (it CartItem) LineTotal() Cents {
	return it.UnitTotal() * Cents(it.Quantity)
}

// Cart represents the shared table-session cart.
//   - belongs to exactly one session
//   - Items keeps insertion order
//   - Subtotal comes from the authoritative snapshot; ItemsSubtotal is the
//     client-side fallback recompute
type Cart struct {
	SessionID string     `json:"sessionId"`
	Items     []CartItem `json:"items"`
	Subtotal  Cents      `json:"subtotal"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// NewCart creates an empty cart for sessionID.
func NewCart(sessionID string, now time.Time) (*Cart, error) {
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return nil, ErrInvalidCart
	}
	return &Cart{
		SessionID: sid,
		Items:     []CartItem{},
		Subtotal:  0,
		UpdatedAt: now,
	}, nil
}

// ItemsSubtotal recomputes the subtotal from the line items.
func (c *Cart) ItemsSubtotal() Cents {
	if c == nil {
		return 0
	}
	var total Cents
	for _, it := range c.Items {
		total += it.LineTotal()
	}
	return total
}

// FindItem returns the index of the item with id, or -1.
func (c *Cart) FindItem(id string) int {
	if c == nil {
		return -1
	}
	for i := range c.Items {
		if c.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// IsEmpty reports whether the cart holds no line items.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// AppendItem adds a line item and refreshes the subtotal.
func (c *Cart) AppendItem(it CartItem, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}
	if strings.TrimSpace(it.ID) == "" || it.Quantity < 1 {
		return ErrInvalidCart
	}
	c.Items = append(c.Items, it)
	c.touch(now)
	return nil
}

// SetQuantity sets the quantity for the item with id.
// A quantity below 1 removes the line (quantity floor).
// Returns false when no item matched.
func (c *Cart) SetQuantity(id string, qty int, now time.Time) bool {
	idx := c.FindItem(id)
	if idx < 0 {
		return false
	}
	if qty < 1 {
		c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	} else {
		c.Items[idx].Quantity = qty
		c.Items[idx].UpdatedAt = now
	}
	c.touch(now)
	return true
}

// SetNotes replaces the free-text notes for the item with id.
// Returns false when no item matched.
func (c *Cart) SetNotes(id string, notes *string, now time.Time) bool {
	idx := c.FindItem(id)
	if idx < 0 {
		return false
	}
	c.Items[idx].Notes = cloneNotes(notes)
	c.Items[idx].UpdatedAt = now
	c.touch(now)
	return true
}

// RemoveItem removes the item with id.
// Returns false when no item matched.
func (c *Cart) RemoveItem(id string, now time.Time) bool {
	idx := c.FindItem(id)
	if idx < 0 {
		return false
	}
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	c.touch(now)
	return true
}

// ClearItems empties the cart.
func (c *Cart) ClearItems(now time.Time) {
	if c == nil {
		return
	}
	c.Items = []CartItem{}
	c.touch(now)
}

// Clone returns a deep copy. Clone of nil is nil.
func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	return &Cart{
		SessionID: c.SessionID,
		Items:     cloneItems(c.Items),
		Subtotal:  c.Subtotal,
		UpdatedAt: c.UpdatedAt,
	}
}

func (c *Cart) touch(now time.Time) {
	c.UpdatedAt = now
	c.Subtotal = c.ItemsSubtotal()
}

// Validate checks structural invariants. Items may be empty; present entries
// must carry an identifier and a quantity >= 1.
func (c *Cart) Validate() error {
	if c == nil {
		return ErrInvalidCart
	}
	if strings.TrimSpace(c.SessionID) == "" {
		return ErrInvalidCart
	}
	for _, it := range c.Items {
		if strings.TrimSpace(it.ID) == "" || it.Quantity < 1 {
			return ErrInvalidCart
		}
	}
	return nil
}

// ----------------------------
// Helpers
// ----------------------------

func cloneItems(src []CartItem) []CartItem {
	out := make([]CartItem, 0, len(src))
	for _, it := range src {
		cp := it
		cp.Notes = cloneNotes(it.Notes)
		if len(it.Customizations) > 0 {
			cp.Customizations = make([]Customization, len(it.Customizations))
			copy(cp.Customizations, it.Customizations)
		} else {
			cp.Customizations = nil
		}
		out = append(out, cp)
	}
	return out
}

func cloneNotes(n *string) *string {
	if n == nil {
		return nil
	}
	v := *n
	return &v
}
