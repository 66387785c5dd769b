// internal/platform/bus/bus.go
package bus

import (
	"errors"
	"strings"
	"sync"

	cartdom "tableside/internal/domain/cart"
)

var (
	ErrClosed         = errors.New("bus: closed")
	ErrInvalidSession = errors.New("bus: invalid session")
)

// Event is one session-scoped cart notification.
// Name is cartdom.EventCartUpdated or cartdom.EventCartError; exactly one of
// Cart/Err is meaningful for it.
type Event struct {
	Session string
	Name    string
	Cart    *cartdom.Cart
	Err     *cartdom.PushError
}

// Handler receives events for one subscription. Delivery is synchronous in
// the publisher's goroutine; handlers must not block.
type Handler func(Event)

// Bus is an in-process publish/subscribe hub with session-scoped topics.
// The reference service publishes on it after every successful mutation; the
// SSE handler and in-process clients subscribe.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]Handler
	closed bool
}

// New returns an empty bus.
func New() *Bus {
	return &Bus{subs: make(map[string]map[int]Handler)}
}

// Subscribe registers h for sessionID and returns an unsubscribe handle.
// The handle is idempotent.
func (b *Bus) Subscribe(sessionID string, h Handler) (func(), error) {
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return nil, ErrInvalidSession
	}
	if h == nil {
		return func() {}, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrClosed
	}

	b.nextID++
	id := b.nextID
	if b.subs[sid] == nil {
		b.subs[sid] = make(map[int]Handler)
	}
	b.subs[sid][id] = h

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if m, ok := b.subs[sid]; ok {
				delete(m, id)
				if len(m) == 0 {
					delete(b.subs, sid)
				}
			}
		})
	}, nil
}

// SubscriberCount reports how many handlers are attached to sessionID.
func (b *Bus) SubscriberCount(sessionID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[strings.TrimSpace(sessionID)])
}

// PublishCartUpdated delivers an authoritative snapshot to every subscriber
// of the session. Each handler receives its own deep copy.
func (b *Bus) PublishCartUpdated(sessionID string, c *cartdom.Cart) {
	b.publish(sessionID, func() Event {
		return Event{
			Session: sessionID,
			Name:    cartdom.EventCartUpdated,
			Cart:    c.Clone(),
		}
	})
}

// PublishCartError delivers a non-fatal notice to every subscriber of the
// session.
func (b *Bus) PublishCartError(sessionID string, pe cartdom.PushError) {
	b.publish(sessionID, func() Event {
		e := pe
		return Event{
			Session: sessionID,
			Name:    cartdom.EventCartError,
			Err:     &e,
		}
	})
}

func (b *Bus) publish(sessionID string, mk func() Event) {
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return
	}

	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs[sid]))
	for _, h := range b.subs[sid] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(mk())
	}
}

// Close drops all subscriptions; further Subscribe calls fail.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.subs = make(map[string]map[int]Handler)
}
