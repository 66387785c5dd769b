// internal/domain/cart/repository_port.go
package cart

import "context"

// Repository is the persistence port used by the reference cart service.
//
// Storage shape:
// - one document per session, keyed by sessionId
// - the document is the full Cart (items, subtotal, updatedAt)
//
// Not-found handling policy: return (nil, nil) and let the application layer
// treat nil as "no cart yet".
type Repository interface {
	// GetBySessionID returns the cart for the session, or (nil, nil).
	GetBySessionID(ctx context.Context, sessionID string) (*Cart, error)

	// Upsert saves the cart (create or update).
	Upsert(ctx context.Context, c *Cart) error

	// DeleteBySessionID deletes the cart for the session (e.g. on session end).
	// Deleting an absent cart is not an error.
	DeleteBySessionID(ctx context.Context, sessionID string) error
}
