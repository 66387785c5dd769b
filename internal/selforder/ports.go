// internal/selforder/ports.go
package selforder

import (
	"context"
	"errors"

	cartdom "tableside/internal/domain/cart"
)

var (
	// ErrNoSession is returned by the session guard: no mutation and no
	// network call happen without an active session identifier.
	ErrNoSession = errors.New("selforder: no active session")

	// ErrNoCart is returned when a mutation other than clear is attempted
	// before a cart has been acquired from the server.
	ErrNoCart = errors.New("selforder: cart not initialized")

	ErrInvalidQuantity = errors.New("selforder: quantity must be >= 1")
)

// SessionContext supplies the active table-session identifier.
// An empty string means no active session. This subsystem only ever reads it;
// creating and destroying sessions is someone else's job.
type SessionContext interface {
	SessionID() string
}

// AddItemInput describes an add-item mutation.
// Name, UnitPrice and the customization names/prices are the menu snapshot
// cached at add time; they shape the speculative line locally while the
// remote call carries only the identifiers.
type AddItemInput struct {
	MenuItemID     string
	Name           string
	UnitPrice      cartdom.Cents
	Quantity       int
	Notes          *string
	Customizations []cartdom.Customization
}

// UpdateItemInput describes a partial update; nil fields are left untouched.
type UpdateItemInput struct {
	CartItemID string
	Quantity   *int
	Notes      *string
}

// CartService is the remote cart mutation API, scoped per session.
// Every call either succeeds or returns an error; the executor ignores any
// response value beyond that.
type CartService interface {
	GetCart(ctx context.Context, sessionID string) (*cartdom.Cart, error)
	AddItem(ctx context.Context, sessionID string, in AddItemInput) error
	UpdateItem(ctx context.Context, sessionID string, in UpdateItemInput) error
	RemoveItem(ctx context.Context, sessionID, cartItemID string) error
	ClearCart(ctx context.Context, sessionID string) error
}

// Handlers receives session-scoped push events.
type Handlers struct {
	// OnCartUpdated carries a full authoritative snapshot, possibly nil.
	OnCartUpdated func(c *cartdom.Cart)

	// OnCartError carries a non-fatal notice tied to no specific local
	// mutation.
	OnCartError func(pe cartdom.PushError)
}

// Unsubscribe detaches a subscription. Safe to call more than once.
type Unsubscribe func()

// Channel is the realtime push channel the reconciler consumes.
type Channel interface {
	Subscribe(sessionID string, h Handlers) (Unsubscribe, error)
}
