// internal/adapters/out/push/bus_channel.go
package push

import (
	cartdom "tableside/internal/domain/cart"
	"tableside/internal/platform/bus"
	"tableside/internal/selforder"
)

// BusChannel adapts the in-process bus into selforder.Channel. Used by tests
// and by deployments that embed client and service in one process.
type BusChannel struct {
	Bus *bus.Bus
}

// Subscribe implements selforder.Channel.
func (c BusChannel) Subscribe(sessionID string, h selforder.Handlers) (selforder.Unsubscribe, error) {
	unsub, err := c.Bus.Subscribe(sessionID, func(ev bus.Event) {
		switch ev.Name {
		case cartdom.EventCartUpdated:
			if h.OnCartUpdated != nil {
				h.OnCartUpdated(ev.Cart)
			}
		case cartdom.EventCartError:
			if h.OnCartError != nil && ev.Err != nil {
				h.OnCartError(*ev.Err)
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return selforder.Unsubscribe(unsub), nil
}
