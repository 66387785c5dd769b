// internal/adapters/in/http/orderapi/router.go
package orderapi

import (
	"log"
	"net/http"
)

// Deps is the self-ordering handler set.
type Deps struct {
	Cart   http.Handler
	Events http.Handler
}

// handleSafe registers pattern with h.
// If h is nil, it logs and registers NotFoundHandler instead.
func handleSafe(mux *http.ServeMux, pattern string, h http.Handler, name string) {
	if h == nil {
		log.Printf("[orderapi.router] WARN: nil handler: %s pattern=%s (registering NotFoundHandler)", name, pattern)
		h = http.NotFoundHandler()
	}
	mux.Handle(pattern, h)
}

// Register registers the self-ordering routes onto mux.
func Register(mux *http.ServeMux, deps Deps) {
	if mux == nil {
		return
	}

	// cart snapshot + clear
	handleSafe(mux, "/selforder/cart", deps.Cart, "Cart")
	handleSafe(mux, "/selforder/cart/", deps.Cart, "Cart")

	// item mutations
	handleSafe(mux, "/selforder/cart/items", deps.Cart, "Cart(items)")

	// session teardown
	handleSafe(mux, "/selforder/session", deps.Cart, "Cart(session)")

	// realtime push
	handleSafe(mux, "/selforder/events", deps.Events, "Events")
}
