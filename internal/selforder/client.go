// internal/selforder/client.go
package selforder

import (
	"context"
	"fmt"
	"strings"

	cartdom "tableside/internal/domain/cart"
)

// Client bundles store, executor and reconciler behind one handle. It is a
// convenience for callers that want the whole subsystem; the three parts stay
// independently constructible.
type Client struct {
	store *Store
	exec  *Executor
	rec   *Reconciler

	svc     CartService
	session SessionContext
}

// NewClient wires a fresh store, executor and reconciler.
func NewClient(svc CartService, ch Channel, session SessionContext) *Client {
	store := NewStore()
	return &Client{
		store:   store,
		exec:    NewExecutor(store, svc, session),
		rec:     NewReconciler(store, ch, session),
		svc:     svc,
		session: session,
	}
}

// Open fetches the initial authoritative snapshot and starts reconciliation.
func (c *Client) Open(ctx context.Context) error {
	sid := strings.TrimSpace(c.session.SessionID())
	if sid == "" {
		return ErrNoSession
	}

	snap, err := c.svc.GetCart(ctx, sid)
	if err != nil {
		return fmt.Errorf("fetch cart: %w", err)
	}
	c.store.SetCart(snap)

	return c.rec.Start()
}

// Close stops reconciliation and drops local state.
func (c *Client) Close() {
	c.rec.Stop()
	c.store.Clear()
}

// Refresh re-scopes the push subscription after a session change.
func (c *Client) Refresh() error { return c.rec.Refresh() }

// Cart returns a deep copy of the current local cart, or nil.
func (c *Client) Cart() *cartdom.Cart { return c.store.Cart() }

// LastError returns the most recent push-channel notice, or "".
func (c *Client) LastError() string { return c.store.Err() }

// AddItem applies an optimistic add.
func (c *Client) AddItem(ctx context.Context, in AddItemInput) error {
	return c.exec.AddItem(ctx, in)
}

// UpdateItem applies an optimistic partial update.
func (c *Client) UpdateItem(ctx context.Context, in UpdateItemInput) error {
	return c.exec.UpdateItem(ctx, in)
}

// RemoveItem applies an optimistic removal.
func (c *Client) RemoveItem(ctx context.Context, cartItemID string) error {
	return c.exec.RemoveItem(ctx, cartItemID)
}

// ClearCart applies an optimistic clear.
func (c *Client) ClearCart(ctx context.Context) error {
	return c.exec.ClearCart(ctx)
}
