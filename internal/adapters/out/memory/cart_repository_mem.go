// internal/adapters/out/memory/cart_repository_mem.go
package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	cartdom "tableside/internal/domain/cart"
)

// CartRepositoryMem implements cart.Repository in memory. Default backend for
// the reference service and for tests. Carts are deep-copied on both reads
// and writes so callers never alias repository-held state.
type CartRepositoryMem struct {
	mu    sync.RWMutex
	carts map[string]*cartdom.Cart
}

func NewCartRepositoryMem() *CartRepositoryMem {
	return &CartRepositoryMem{carts: make(map[string]*cartdom.Cart)}
}

// GetBySessionID returns (nil, nil) if not found (nil policy).
func (r *CartRepositoryMem) GetBySessionID(_ context.Context, sessionID string) (*cartdom.Cart, error) {
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return nil, errors.New("cart_repository_mem: sessionID is empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.carts[sid].Clone(), nil
}

func (r *CartRepositoryMem) Upsert(_ context.Context, c *cartdom.Cart) error {
	if c == nil {
		return errors.New("cart_repository_mem: cart is nil")
	}
	if err := c.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[c.SessionID] = c.Clone()
	return nil
}

func (r *CartRepositoryMem) DeleteBySessionID(_ context.Context, sessionID string) error {
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return errors.New("cart_repository_mem: sessionID is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, sid)
	return nil
}
