// internal/adapters/in/http/orderapi/handler/events_handler.go
package orderapiHandler

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	cartdom "tableside/internal/domain/cart"
	"tableside/internal/platform/bus"
)

// DefaultHeartbeat is the idle keep-alive interval on the event stream.
const DefaultHeartbeat = 25 * time.Second

// EventsHandler streams session-scoped cart events over SSE.
//
// Frames:
//
//	event: cart.updated
//	data: <full Cart JSON, or null>
//
//	event: cart.error
//	data: {"message": ..., "details": ..., "originatingEvent": ...}
//
// One bus subscription per request; it ends with the request context. Events
// that outpace the per-request buffer are dropped (the next full snapshot
// supersedes anything missed).
type EventsHandler struct {
	bus       *bus.Bus
	heartbeat time.Duration
}

func NewEventsHandler(b *bus.Bus) http.Handler {
	return &EventsHandler{bus: b, heartbeat: DefaultHeartbeat}
}

// NewEventsHandlerWithHeartbeat is useful for tests.
func NewEventsHandlerWithHeartbeat(b *bus.Bus, heartbeat time.Duration) http.Handler {
	if heartbeat <= 0 {
		heartbeat = DefaultHeartbeat
	}
	return &EventsHandler{bus: b, heartbeat: heartbeat}
}

func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if h.bus == nil {
		writeErr(w, http.StatusInternalServerError, "events handler is not configured")
		return
	}

	sid := readSessionID(r, "")
	if sid == "" {
		writeErr(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeErr(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	events := make(chan bus.Event, 16)
	unsub, err := h.bus.Subscribe(sid, func(ev bus.Event) {
		select {
		case events <- ev:
		default:
			log.Printf("[orderapi.events_handler] drop event session=%q name=%s (slow consumer)", sid, ev.Name)
		}
	})
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer unsub()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	fmt.Fprintf(w, ": connected session=%s\n\n", sid)
	flusher.Flush()

	log.Printf("[orderapi.events_handler] stream open session=%q", sid)

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			log.Printf("[orderapi.events_handler] stream closed session=%q", sid)
			return
		case <-ticker.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case ev := <-events:
			if err := writeFrame(w, ev); err != nil {
				log.Printf("[orderapi.events_handler] write error session=%q err=%v", sid, err)
				return
			}
			flusher.Flush()
		}
	}
}

func writeFrame(w http.ResponseWriter, ev bus.Event) error {
	var payload []byte
	var err error

	switch ev.Name {
	case cartdom.EventCartUpdated:
		payload, err = json.Marshal(ev.Cart) // nil marshals to "null"
	case cartdom.EventCartError:
		payload, err = json.Marshal(ev.Err)
	default:
		return nil
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Name, payload)
	return err
}
