package selforder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "tableside/internal/domain/cart"
)

var t0 = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func stableCart(t *testing.T, qty int) *cartdom.Cart {
	t.Helper()
	c, err := cartdom.NewCart("session-1", t0)
	require.NoError(t, err)
	require.NoError(t, c.AppendItem(cartdom.CartItem{
		ID:         "item-a",
		MenuItemID: "menu-burger",
		Name:       "Classic Burger",
		UnitPrice:  1000,
		Quantity:   qty,
		Customizations: []cartdom.Customization{
			{OptionID: "opt-cheese", Name: "Extra Cheese", Price: 150},
		},
		AddedAt:   t0,
		UpdatedAt: t0,
	}, t0))
	return c
}

func TestStoreSetCart_ClearsError(t *testing.T) {
	s := NewStore()
	s.SetError("kitchen on fire")
	require.Equal(t, "kitchen on fire", s.Err())

	s.SetCart(stableCart(t, 2))
	assert.Empty(t, s.Err())
	require.NotNil(t, s.Cart())
}

func TestStoreSetError_LeavesCart(t *testing.T) {
	s := NewStore()
	s.SetCart(stableCart(t, 2))

	s.SetError("push failed")
	assert.Equal(t, "push failed", s.Err())

	c := s.Cart()
	require.NotNil(t, c)
	assert.Len(t, c.Items, 1)
}

func TestStoreCart_DeepCopies(t *testing.T) {
	s := NewStore()
	orig := stableCart(t, 2)
	s.SetCart(orig)

	// mutating the original after SetCart must not reach the store
	orig.Items[0].Quantity = 99
	got := s.Cart()
	assert.Equal(t, 2, got.Items[0].Quantity)

	// mutating a read copy must not reach the store either
	got.Items[0].Quantity = 42
	assert.Equal(t, 2, s.Cart().Items[0].Quantity)
}

func TestStoreNilCart(t *testing.T) {
	s := NewStore()
	assert.Nil(t, s.Cart())

	s.SetCart(stableCart(t, 1))
	s.SetCart(nil)
	assert.Nil(t, s.Cart())
}

func TestStoreClear(t *testing.T) {
	s := NewStore()
	s.SetCart(stableCart(t, 2))
	s.SetError("notice")

	s.Clear()
	assert.Nil(t, s.Cart())
	assert.Empty(t, s.Err())
}
