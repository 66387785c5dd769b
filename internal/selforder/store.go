// internal/selforder/store.go
package selforder

import (
	"sync"

	cartdom "tableside/internal/domain/cart"
)

// Store holds the single client-visible cart value for the active session,
// plus a transient error message. It is a passive container: no validation,
// no business logic. Construct one per cart; there is no package-level
// singleton.
//
// Store clones on every write and read, so neither producers (executor,
// reconciler) nor readers can alias state held inside it.
type Store struct {
	mu     sync.RWMutex
	cart   *cartdom.Cart
	errMsg string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// SetCart replaces the cart wholesale and clears any recorded error.
// A nil cart is a valid value (no cart acquired yet).
func (s *Store) SetCart(c *cartdom.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = c.Clone()
	s.errMsg = ""
}

// Cart returns a deep copy of the current cart, or nil.
func (s *Store) Cart() *cartdom.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Clone()
}

// SetError records a non-fatal notice without touching cart contents.
// An empty message clears it.
func (s *Store) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = msg
}

// Err returns the recorded error message, or "".
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// Clear resets both fields. Used on session teardown.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
	s.errMsg = ""
}
