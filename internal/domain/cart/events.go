// internal/domain/cart/events.go
package cart

// Push-channel event names, session-scoped.
const (
	EventCartUpdated = "cart.updated"
	EventCartError   = "cart.error"
)

// PushError is the payload of a cart.error push event.
// It is a non-fatal notice; it never rolls back cart contents.
type PushError struct {
	Message          string `json:"message"`
	Details          any    `json:"details,omitempty"`
	OriginatingEvent string `json:"originatingEvent,omitempty"`
}
