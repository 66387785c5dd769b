// internal/selforder/executor.go
package selforder

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	cartdom "tableside/internal/domain/cart"
)

// Clock provides current time (for testability).
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Executor performs the four cart mutation verbs optimistically.
//
// Every verb follows the same protocol:
//  1. session guard (no session -> ErrNoSession, nothing touched)
//  2. fresh deep snapshot of the current store cart (the undo point)
//  3. speculative local edit applied to the store
//  4. remote call, scoped to the session
//  5. success: leave the speculative state alone; the next authoritative
//     push supplants temporary identifiers
//  6. failure: restore the snapshot, return the wrapped error
//
// Calls are not serialized against each other. The snapshot in step 2 is read
// at call time, so a later call's rollback never discards an earlier call's
// still-valid speculative edit.
type Executor struct {
	store   *Store
	svc     CartService
	session SessionContext
	clock   Clock

	// tempID generates placeholder identifiers for speculative lines.
	tempID func() string
}

// NewExecutor wires an executor over store, svc and session.
func NewExecutor(store *Store, svc CartService, session SessionContext) *Executor {
	return &Executor{
		store:   store,
		svc:     svc,
		session: session,
		clock:   systemClock{},
		tempID:  newTempID,
	}
}

// NewExecutorWithClock is useful for tests.
func NewExecutorWithClock(store *Store, svc CartService, session SessionContext, clock Clock) *Executor {
	e := NewExecutor(store, svc, session)
	if clock != nil {
		e.clock = clock
	}
	return e
}

func newTempID() string {
	return cartdom.TempIDPrefix + uuid.NewString()
}

// AddItem appends a speculative line with a temporary identifier, then issues
// the remote add. The server assigns the permanent identifier; the executor
// never patches it in locally.
func (e *Executor) AddItem(ctx context.Context, in AddItemInput) error {
	sid, err := e.activeSession()
	if err != nil {
		return err
	}
	if in.Quantity < 1 {
		return ErrInvalidQuantity
	}

	snap := e.store.Cart()
	if snap == nil {
		return ErrNoCart
	}

	now := e.clock.Now()
	item := cartdom.CartItem{
		ID:             e.tempID(),
		MenuItemID:     strings.TrimSpace(in.MenuItemID),
		Name:           in.Name,
		UnitPrice:      in.UnitPrice,
		Quantity:       in.Quantity,
		Notes:          in.Notes,
		Customizations: in.Customizations,
		AddedAt:        now,
		UpdatedAt:      now,
	}

	next := snap.Clone()
	if err := next.AppendItem(item, now); err != nil {
		return fmt.Errorf("add item: %w", err)
	}
	e.store.SetCart(next)

	if err := e.svc.AddItem(ctx, sid, in); err != nil {
		e.store.SetCart(snap)
		return fmt.Errorf("add item: %w", err)
	}
	return nil
}

// UpdateItem overwrites only the supplied fields of an existing line.
// An unmatched identifier is a logged no-op: no local change, no remote call.
// A quantity below 1 is the quantity floor case and turns into a removal.
func (e *Executor) UpdateItem(ctx context.Context, in UpdateItemInput) error {
	sid, err := e.activeSession()
	if err != nil {
		return err
	}

	if in.Quantity != nil && *in.Quantity < 1 {
		return e.RemoveItem(ctx, in.CartItemID)
	}
	if in.Quantity == nil && in.Notes == nil {
		return nil
	}

	snap := e.store.Cart()
	if snap == nil {
		return ErrNoCart
	}
	if snap.FindItem(in.CartItemID) < 0 {
		log.Printf("[selforder.executor] update skipped: item not in cart id=%q session=%s", in.CartItemID, sid)
		return nil
	}

	now := e.clock.Now()
	next := snap.Clone()
	if in.Quantity != nil {
		next.SetQuantity(in.CartItemID, *in.Quantity, now)
	}
	if in.Notes != nil {
		next.SetNotes(in.CartItemID, in.Notes, now)
	}
	e.store.SetCart(next)

	if err := e.svc.UpdateItem(ctx, sid, in); err != nil {
		e.store.SetCart(snap)
		return fmt.Errorf("update item %s: %w", in.CartItemID, err)
	}
	return nil
}

// RemoveItem filters the line out. An unmatched identifier is a logged no-op.
func (e *Executor) RemoveItem(ctx context.Context, cartItemID string) error {
	sid, err := e.activeSession()
	if err != nil {
		return err
	}

	snap := e.store.Cart()
	if snap == nil {
		return ErrNoCart
	}

	now := e.clock.Now()
	next := snap.Clone()
	if !next.RemoveItem(cartItemID, now) {
		log.Printf("[selforder.executor] remove skipped: item not in cart id=%q session=%s", cartItemID, sid)
		return nil
	}
	e.store.SetCart(next)

	if err := e.svc.RemoveItem(ctx, sid, cartItemID); err != nil {
		e.store.SetCart(snap)
		return fmt.Errorf("remove item %s: %w", cartItemID, err)
	}
	return nil
}

// ClearCart empties the line list. Clearing a nil or already-empty cart is a
// no-op and issues no remote call.
func (e *Executor) ClearCart(ctx context.Context) error {
	sid, err := e.activeSession()
	if err != nil {
		return err
	}

	snap := e.store.Cart()
	if snap.IsEmpty() {
		return nil
	}

	next := snap.Clone()
	next.ClearItems(e.clock.Now())
	e.store.SetCart(next)

	if err := e.svc.ClearCart(ctx, sid); err != nil {
		e.store.SetCart(snap)
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (e *Executor) activeSession() (string, error) {
	if e.session == nil {
		return "", ErrNoSession
	}
	sid := strings.TrimSpace(e.session.SessionID())
	if sid == "" {
		return "", ErrNoSession
	}
	return sid, nil
}
