package push

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderapiHandler "tableside/internal/adapters/in/http/orderapi/handler"
	cartdom "tableside/internal/domain/cart"
	"tableside/internal/platform/bus"
	"tableside/internal/selforder"
)

func newEventsServer(t *testing.T, b *bus.Bus) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.Handle("/selforder/events", orderapiHandler.NewEventsHandlerWithHeartbeat(b, time.Hour))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func sampleCart(t *testing.T, qty int) *cartdom.Cart {
	t.Helper()
	c, err := cartdom.NewCart("session-1", time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	c.Items = []cartdom.CartItem{{
		ID:         "item-a",
		MenuItemID: "menu-burger",
		Name:       "Classic Burger",
		UnitPrice:  1000,
		Quantity:   qty,
		AddedAt:    c.UpdatedAt,
		UpdatedAt:  c.UpdatedAt,
	}}
	c.Subtotal = c.ItemsSubtotal()
	return c
}

// handlerRecorder collects dispatched events behind a mutex; the read loop
// runs on its own goroutine.
type handlerRecorder struct {
	mu    sync.Mutex
	carts []*cartdom.Cart
	errs  []cartdom.PushError
}

func (r *handlerRecorder) handlers() selforder.Handlers {
	return selforder.Handlers{
		OnCartUpdated: func(c *cartdom.Cart) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.carts = append(r.carts, c)
		},
		OnCartError: func(pe cartdom.PushError) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.errs = append(r.errs, pe)
		},
	}
}

func (r *handlerRecorder) cartCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.carts)
}

func (r *handlerRecorder) errCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errs)
}

func (r *handlerRecorder) lastCart() *cartdom.Cart {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.carts) == 0 {
		return nil
	}
	return r.carts[len(r.carts)-1]
}

func TestSSEChannelDeliversEvents(t *testing.T) {
	b := bus.New()
	srv := newEventsServer(t, b)

	ch := NewSSEChannel(srv.URL, srv.Client())
	rec := &handlerRecorder{}
	unsub, err := ch.Subscribe("session-1", rec.handlers())
	require.NoError(t, err)
	defer unsub()

	require.Eventually(t, func() bool {
		return b.SubscriberCount("session-1") == 1
	}, 5*time.Second, 10*time.Millisecond)

	b.PublishCartUpdated("session-1", sampleCart(t, 2))
	require.Eventually(t, func() bool {
		return rec.cartCount() == 1
	}, 5*time.Second, 10*time.Millisecond)

	got := rec.lastCart()
	require.NotNil(t, got)
	assert.Equal(t, "session-1", got.SessionID)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.Equal(t, cartdom.Cents(2000), got.Subtotal)

	b.PublishCartError("session-1", cartdom.PushError{Message: "out of stock", OriginatingEvent: "cart.add"})
	require.Eventually(t, func() bool {
		return rec.errCount() == 1
	}, 5*time.Second, 10*time.Millisecond)
}

func TestSSEChannelNullSnapshot(t *testing.T) {
	b := bus.New()
	srv := newEventsServer(t, b)

	ch := NewSSEChannel(srv.URL, srv.Client())
	rec := &handlerRecorder{}
	unsub, err := ch.Subscribe("session-1", rec.handlers())
	require.NoError(t, err)
	defer unsub()

	require.Eventually(t, func() bool {
		return b.SubscriberCount("session-1") == 1
	}, 5*time.Second, 10*time.Millisecond)

	b.PublishCartUpdated("session-1", nil)
	require.Eventually(t, func() bool {
		return rec.cartCount() == 1
	}, 5*time.Second, 10*time.Millisecond)
	assert.Nil(t, rec.lastCart())
}

func TestSSEChannelUnsubscribeEndsStream(t *testing.T) {
	b := bus.New()
	srv := newEventsServer(t, b)

	ch := NewSSEChannel(srv.URL, srv.Client())
	unsub, err := ch.Subscribe("session-1", selforder.Handlers{})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return b.SubscriberCount("session-1") == 1
	}, 5*time.Second, 10*time.Millisecond)

	unsub()
	require.Eventually(t, func() bool {
		return b.SubscriberCount("session-1") == 0
	}, 5*time.Second, 10*time.Millisecond)
}

func TestSSEChannelRejectsBadSubscription(t *testing.T) {
	b := bus.New()
	srv := newEventsServer(t, b)
	ch := NewSSEChannel(srv.URL, srv.Client())

	_, err := ch.Subscribe("  ", selforder.Handlers{})
	assert.Error(t, err)

	// wrong path: the server answers 404, not a stream
	bad := NewSSEChannel(srv.URL+"/nope", srv.Client())
	_, err = bad.Subscribe("session-1", selforder.Handlers{})
	assert.Error(t, err)
}
