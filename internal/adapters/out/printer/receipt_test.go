package printer

import (
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "tableside/internal/domain/cart"
)

func receiptCart(t *testing.T) *cartdom.Cart {
	t.Helper()
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	c, err := cartdom.NewCart("session-1", at)
	require.NoError(t, err)

	notes := "no onions"
	c.Items = []cartdom.CartItem{
		{
			ID:         "item-a",
			MenuItemID: "menu-burger",
			Name:       "Classic Burger",
			UnitPrice:  1000,
			Quantity:   2,
			Notes:      &notes,
			Customizations: []cartdom.Customization{
				{OptionID: "opt-cheese", Name: "Extra Cheese", Price: 150},
			},
			AddedAt:   at,
			UpdatedAt: at,
		},
		{
			ID:         "item-b",
			MenuItemID: "menu-fries",
			Name:       "Fries",
			UnitPrice:  450,
			Quantity:   1,
			AddedAt:    at,
			UpdatedAt:  at,
		},
	}
	c.Subtotal = c.ItemsSubtotal()
	return c
}

func TestRenderReceiptGolden(t *testing.T) {
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	got := RenderReceipt(receiptCart(t), "TABLESIDE", at, DefaultReceiptWidth)

	g := goldie.New(t)
	g.Assert(t, "receipt_full", []byte(got))
}

func TestRenderReceiptEmptyCart(t *testing.T) {
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	c, err := cartdom.NewCart("session-1", at)
	require.NoError(t, err)

	got := RenderReceipt(c, "TABLESIDE", at, DefaultReceiptWidth)
	assert.Contains(t, got, "(empty cart)")
	assert.True(t, strings.HasSuffix(got, "0.00\n"))
}

func TestRenderReceiptWidthFallback(t *testing.T) {
	got := RenderReceipt(receiptCart(t), "", time.Time{}, 5)
	for _, line := range strings.Split(strings.TrimRight(got, "\n"), "\n") {
		assert.LessOrEqual(t, len(line), DefaultReceiptWidth+1)
	}
	assert.Contains(t, got, strings.Repeat("-", DefaultReceiptWidth))
}

func TestPriceLineTruncation(t *testing.T) {
	line := priceLine("2x An Extremely Long Menu Item Name", 1250, 20)
	require.True(t, strings.HasSuffix(line, "12.50\n"))
	assert.Equal(t, 21, len(line), "label + pad + price must fill the width")
}

func TestCenter(t *testing.T) {
	assert.Equal(t, "   ab", center("ab", 8))
	assert.Equal(t, "abcdefgh", center("abcdefgh", 4))
}
