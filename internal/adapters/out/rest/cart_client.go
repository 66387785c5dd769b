// internal/adapters/out/rest/cart_client.go
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	cartdom "tableside/internal/domain/cart"
	"tableside/internal/selforder"
)

// CartClient implements selforder.CartService over the cart REST API.
// It carries identifiers only on the wire; cached names and prices in
// AddItemInput are client-side concerns.
type CartClient struct {
	baseURL string
	hc      *http.Client
}

// NewCartClient builds a client for baseURL (e.g. "http://localhost:8080").
// A nil hc gets a default client with a request timeout.
func NewCartClient(baseURL string, hc *http.Client) *CartClient {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &CartClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		hc:      hc,
	}
}

// GetCart fetches the full snapshot for sessionID.
func (c *CartClient) GetCart(ctx context.Context, sessionID string) (*cartdom.Cart, error) {
	var out cartdom.Cart
	if err := c.do(ctx, http.MethodGet, "/selforder/cart", sessionID, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddItem issues the remote add.
func (c *CartClient) AddItem(ctx context.Context, sessionID string, in selforder.AddItemInput) error {
	refs := make([]customizationRef, 0, len(in.Customizations))
	for _, cu := range in.Customizations {
		refs = append(refs, customizationRef{CustomizationOptionID: cu.OptionID})
	}
	body := addItemReq{
		MenuItemID:     in.MenuItemID,
		Quantity:       in.Quantity,
		Notes:          in.Notes,
		Customizations: refs,
	}
	return c.do(ctx, http.MethodPost, "/selforder/cart/items", sessionID, nil, body, nil)
}

// UpdateItem issues the remote partial update.
func (c *CartClient) UpdateItem(ctx context.Context, sessionID string, in selforder.UpdateItemInput) error {
	body := updateItemReq{
		CartItemID: in.CartItemID,
		Quantity:   in.Quantity,
		Notes:      in.Notes,
	}
	return c.do(ctx, http.MethodPut, "/selforder/cart/items", sessionID, nil, body, nil)
}

// RemoveItem issues the remote removal.
func (c *CartClient) RemoveItem(ctx context.Context, sessionID, cartItemID string) error {
	q := url.Values{"cartItemId": []string{cartItemID}}
	return c.do(ctx, http.MethodDelete, "/selforder/cart/items", sessionID, q, nil, nil)
}

// ClearCart issues the remote clear.
func (c *CartClient) ClearCart(ctx context.Context, sessionID string) error {
	return c.do(ctx, http.MethodDelete, "/selforder/cart", sessionID, nil, nil, nil)
}

// do performs one JSON round trip. A non-2xx response is decoded into its
// error message.
func (c *CartClient) do(ctx context.Context, method, path, sessionID string, query url.Values, body, out any) error {
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return errors.New("cart_client: sessionID is empty")
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("sessionId", sid)
	u := c.baseURL + path + "?" + query.Encode()

	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("cart_client: encode request: %w", err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return fmt.Errorf("cart_client: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("cart_client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("cart_client: %s %s: %s", method, path, decodeErr(resp))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("cart_client: decode response: %w", err)
		}
	}
	return nil
}

func decodeErr(resp *http.Response) string {
	var e struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	if json.Unmarshal(raw, &e) == nil && strings.TrimSpace(e.Error) != "" {
		return fmt.Sprintf("%s (status %d)", e.Error, resp.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d", resp.StatusCode)
}

// -------------------------
// wire DTOs
// -------------------------

type customizationRef struct {
	CustomizationOptionID string `json:"customizationOptionId"`
}

type addItemReq struct {
	MenuItemID     string             `json:"menuItemId"`
	Quantity       int                `json:"quantity"`
	Notes          *string            `json:"notes,omitempty"`
	Customizations []customizationRef `json:"customizations"`
}

type updateItemReq struct {
	CartItemID string  `json:"cartItemId"`
	Quantity   *int    `json:"quantity,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}
