// internal/adapters/out/push/sse_channel.go
package push

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	cartdom "tableside/internal/domain/cart"
	"tableside/internal/selforder"
)

// SSEChannel implements selforder.Channel over the server's SSE endpoint.
//
// Each Subscribe opens one streaming GET and parses event/data frames until
// the unsubscribe handle cancels it. There is no reconnection policy here;
// transport recovery is the caller's concern.
type SSEChannel struct {
	baseURL string
	hc      *http.Client
}

// NewSSEChannel builds a channel for baseURL. A nil hc gets a client without
// a timeout (the stream is long-lived).
func NewSSEChannel(baseURL string, hc *http.Client) *SSEChannel {
	if hc == nil {
		hc = &http.Client{}
	}
	return &SSEChannel{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		hc:      hc,
	}
}

// Subscribe implements selforder.Channel.
func (c *SSEChannel) Subscribe(sessionID string, h selforder.Handlers) (selforder.Unsubscribe, error) {
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return nil, fmt.Errorf("sse_channel: sessionID is empty")
	}

	ctx, cancel := context.WithCancel(context.Background())

	u := c.baseURL + "/selforder/events?sessionId=" + sid
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("sse_channel: build request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.hc.Do(req)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("sse_channel: connect: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("sse_channel: unexpected status %d", resp.StatusCode)
	}

	go readLoop(ctx, sid, resp.Body, h)

	return func() { cancel() }, nil
}

// readLoop parses the stream until it ends or ctx is cancelled.
func readLoop(ctx context.Context, sid string, body io.ReadCloser, h selforder.Handlers) {
	defer body.Close()

	sc := bufio.NewScanner(body)
	sc.Buffer(make([]byte, 0, 64<<10), 1<<20)

	var event, data string
	for sc.Scan() {
		line := sc.Text()
		switch {
		case line == "":
			dispatch(sid, event, data, h)
			event, data = "", ""
		case strings.HasPrefix(line, ":"):
			// comment / heartbeat
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		}
	}

	if err := sc.Err(); err != nil && ctx.Err() == nil {
		log.Printf("[push.sse_channel] stream error session=%q err=%v", sid, err)
	}
}

func dispatch(sid, event, data string, h selforder.Handlers) {
	switch event {
	case cartdom.EventCartUpdated:
		if h.OnCartUpdated == nil {
			return
		}
		if data == "" || data == "null" {
			h.OnCartUpdated(nil)
			return
		}
		var c cartdom.Cart
		if err := json.Unmarshal([]byte(data), &c); err != nil {
			log.Printf("[push.sse_channel] bad cart payload session=%q err=%v", sid, err)
			return
		}
		h.OnCartUpdated(&c)

	case cartdom.EventCartError:
		if h.OnCartError == nil {
			return
		}
		var pe cartdom.PushError
		if err := json.Unmarshal([]byte(data), &pe); err != nil {
			log.Printf("[push.sse_channel] bad error payload session=%q err=%v", sid, err)
			return
		}
		h.OnCartError(pe)
	}
}
