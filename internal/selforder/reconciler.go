// internal/selforder/reconciler.go
package selforder

import (
	"fmt"
	"strings"
	"sync"

	cartdom "tableside/internal/domain/cart"
)

// Reconciler keeps the store eventually consistent with the server.
//
// It subscribes to the session-scoped push channel; every cart.updated
// payload overwrites the store unconditionally (last message wins), and every
// cart.error is recorded without touching cart contents. When the session
// identifier changes it unsubscribes, clears the store and resubscribes under
// the new scope, so handlers never leak across sessions.
type Reconciler struct {
	store   *Store
	ch      Channel
	session SessionContext

	mu      sync.Mutex
	started bool
	sid     string
	unsub   Unsubscribe
}

// NewReconciler wires a reconciler over store, ch and session.
func NewReconciler(store *Store, ch Channel, session SessionContext) *Reconciler {
	return &Reconciler{
		store:   store,
		ch:      ch,
		session: session,
	}
}

// Start subscribes under the current session scope. Starting with no active
// session is not an error; Refresh picks the subscription up once a session
// exists.
func (r *Reconciler) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = true
	return r.resubscribeLocked(false)
}

// Refresh re-reads the session identifier and, when it changed, swaps the
// subscription. Switching sessions clears the store: the old cart must not
// survive into the new scope.
func (r *Reconciler) Refresh() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.started {
		return nil
	}
	if r.currentSession() == r.sid {
		return nil
	}
	return r.resubscribeLocked(true)
}

// Stop unsubscribes. In-flight executor calls are not cancelled; only the
// push subscription ends here.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = false
	if r.unsub != nil {
		r.unsub()
		r.unsub = nil
	}
	r.sid = ""
}

func (r *Reconciler) currentSession() string {
	if r.session == nil {
		return ""
	}
	return strings.TrimSpace(r.session.SessionID())
}

// resubscribeLocked tears down any existing subscription and, when a session
// is active, installs a new one. clearStore is set on session switches.
func (r *Reconciler) resubscribeLocked(clearStore bool) error {
	if r.unsub != nil {
		r.unsub()
		r.unsub = nil
	}
	if clearStore {
		r.store.Clear()
	}

	sid := r.currentSession()
	r.sid = sid
	if sid == "" {
		return nil
	}

	unsub, err := r.ch.Subscribe(sid, Handlers{
		OnCartUpdated: func(c *cartdom.Cart) {
			r.store.SetCart(c)
		},
		OnCartError: func(pe cartdom.PushError) {
			r.store.SetError(pe.Message)
		},
	})
	if err != nil {
		return fmt.Errorf("subscribe session %s: %w", sid, err)
	}
	r.unsub = unsub
	return nil
}
