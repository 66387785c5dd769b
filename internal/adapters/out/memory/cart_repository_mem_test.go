package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "tableside/internal/domain/cart"
)

func seedCart(t *testing.T) *cartdom.Cart {
	t.Helper()
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	c, err := cartdom.NewCart("session-1", at)
	require.NoError(t, err)
	c.Items = []cartdom.CartItem{{
		ID:         "item-a",
		MenuItemID: "menu-burger",
		Name:       "Classic Burger",
		UnitPrice:  1000,
		Quantity:   2,
		AddedAt:    at,
		UpdatedAt:  at,
	}}
	c.Subtotal = c.ItemsSubtotal()
	return c
}

func TestMemRepoRoundTrip(t *testing.T) {
	repo := NewCartRepositoryMem()
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, seedCart(t)))

	got, err := repo.GetBySessionID(ctx, "session-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, cartdom.Cents(2000), got.Subtotal)
}

func TestMemRepoNotFound(t *testing.T) {
	repo := NewCartRepositoryMem()

	got, err := repo.GetBySessionID(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemRepoNoAliasing(t *testing.T) {
	repo := NewCartRepositoryMem()
	ctx := context.Background()

	src := seedCart(t)
	require.NoError(t, repo.Upsert(ctx, src))

	// mutating the caller's cart after Upsert must not leak into the repo
	src.Items[0].Quantity = 99
	got, err := repo.GetBySessionID(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Items[0].Quantity)

	// mutating a read result must not leak either
	got.Items[0].Quantity = 50
	again, err := repo.GetBySessionID(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, 2, again.Items[0].Quantity)
}

func TestMemRepoDelete(t *testing.T) {
	repo := NewCartRepositoryMem()
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, seedCart(t)))
	require.NoError(t, repo.DeleteBySessionID(ctx, "session-1"))

	got, err := repo.GetBySessionID(ctx, "session-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemRepoValidation(t *testing.T) {
	repo := NewCartRepositoryMem()
	ctx := context.Background()

	assert.Error(t, repo.Upsert(ctx, nil))

	bad := seedCart(t)
	bad.Items[0].Quantity = 0
	assert.Error(t, repo.Upsert(ctx, bad))

	_, err := repo.GetBySessionID(ctx, " ")
	assert.Error(t, err)
}
