package orderapiHandler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableside/internal/adapters/out/memory"
	usecase "tableside/internal/application/usecase"
	cartdom "tableside/internal/domain/cart"
	"tableside/internal/domain/menu"
	"tableside/internal/platform/bus"
)

func newTestHandler() (http.Handler, *bus.Bus) {
	b := bus.New()
	catalog := menu.NewCatalog([]menu.Item{
		{
			ID:        "menu-burger",
			Name:      "Classic Burger",
			BasePrice: 1000,
			Options: []menu.CustomizationOption{
				{ID: "opt-cheese", Name: "Extra Cheese", Price: 150},
			},
		},
		{ID: "menu-cola", Name: "Cola", BasePrice: 350},
	})
	uc := usecase.NewCartUsecase(memory.NewCartRepositoryMem(), catalog, b)
	return NewCartHandler(uc), b
}

func doJSON(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) *cartdom.Cart {
	t.Helper()
	var c cartdom.Cart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	return &c
}

func TestCartHandlerGetCreatesEmptyCart(t *testing.T) {
	h, _ := newTestHandler()

	rec := doJSON(t, h, http.MethodGet, "/selforder/cart?sessionId=session-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	c := decodeCart(t, rec)
	assert.Equal(t, "session-1", c.SessionID)
	assert.Empty(t, c.Items)
}

func TestCartHandlerGetRequiresSession(t *testing.T) {
	h, _ := newTestHandler()

	rec := doJSON(t, h, http.MethodGet, "/selforder/cart", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartHandlerSessionIDFromHeader(t *testing.T) {
	h, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/selforder/cart", nil)
	req.Header.Set("X-Session-Id", "session-h")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "session-h", decodeCart(t, rec).SessionID)
}

func TestCartHandlerAddItem(t *testing.T) {
	h, _ := newTestHandler()

	rec := doJSON(t, h, http.MethodPost, "/selforder/cart/items", map[string]any{
		"sessionId":  "session-1",
		"menuItemId": "menu-burger",
		"quantity":   2,
		"customizations": []map[string]string{
			{"customizationOptionId": "opt-cheese"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	c := decodeCart(t, rec)
	require.Len(t, c.Items, 1)
	assert.Equal(t, "Classic Burger", c.Items[0].Name)
	assert.Equal(t, cartdom.Cents(2300), c.Subtotal)
}

func TestCartHandlerAddItem_Validation(t *testing.T) {
	h, _ := newTestHandler()

	rec := doJSON(t, h, http.MethodPost, "/selforder/cart/items", map[string]any{
		"sessionId":  "session-1",
		"menuItemId": "menu-burger",
		"quantity":   0,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/selforder/cart/items", map[string]any{
		"sessionId":  "session-1",
		"menuItemId": "menu-ghost",
		"quantity":   1,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// unknown fields are rejected
	rec = doJSON(t, h, http.MethodPost, "/selforder/cart/items", map[string]any{
		"sessionId":  "session-1",
		"menuItemId": "menu-burger",
		"quantity":   1,
		"bogus":      true,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartHandlerUpdateItem(t *testing.T) {
	h, _ := newTestHandler()

	rec := doJSON(t, h, http.MethodPost, "/selforder/cart/items", map[string]any{
		"sessionId":  "session-1",
		"menuItemId": "menu-cola",
		"quantity":   1,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	id := decodeCart(t, rec).Items[0].ID

	rec = doJSON(t, h, http.MethodPut, "/selforder/cart/items", map[string]any{
		"sessionId":  "session-1",
		"cartItemId": id,
		"quantity":   3,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	c := decodeCart(t, rec)
	assert.Equal(t, 3, c.Items[0].Quantity)
	assert.Equal(t, cartdom.Cents(1050), c.Subtotal)

	rec = doJSON(t, h, http.MethodPut, "/selforder/cart/items", map[string]any{
		"sessionId":  "session-1",
		"cartItemId": "ghost",
		"quantity":   1,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartHandlerRemoveItem(t *testing.T) {
	h, _ := newTestHandler()

	rec := doJSON(t, h, http.MethodPost, "/selforder/cart/items", map[string]any{
		"sessionId":  "session-1",
		"menuItemId": "menu-cola",
		"quantity":   1,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	id := decodeCart(t, rec).Items[0].ID

	// cartItemId via query string
	rec = doJSON(t, h, http.MethodDelete, "/selforder/cart/items?sessionId=session-1&cartItemId="+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeCart(t, rec).Items)

	rec = doJSON(t, h, http.MethodDelete, "/selforder/cart/items?sessionId=session-1&cartItemId=ghost", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartHandlerClearAndEndSession(t *testing.T) {
	h, _ := newTestHandler()

	rec := doJSON(t, h, http.MethodPost, "/selforder/cart/items", map[string]any{
		"sessionId":  "session-1",
		"menuItemId": "menu-burger",
		"quantity":   2,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, "/selforder/cart?sessionId=session-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeCart(t, rec).Items)

	rec = doJSON(t, h, http.MethodDelete, "/selforder/session?sessionId=session-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ended": true}`, rec.Body.String())
}

func TestCartHandlerUnknownRoute(t *testing.T) {
	h, _ := newTestHandler()
	rec := doJSON(t, h, http.MethodPatch, "/selforder/cart", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartHandlerPublishesSnapshots(t *testing.T) {
	h, b := newTestHandler()

	var got []*cartdom.Cart
	unsub, err := b.Subscribe("session-1", func(ev bus.Event) {
		if ev.Name == cartdom.EventCartUpdated {
			got = append(got, ev.Cart)
		}
	})
	require.NoError(t, err)
	defer unsub()

	rec := doJSON(t, h, http.MethodPost, "/selforder/cart/items", map[string]any{
		"sessionId":  "session-1",
		"menuItemId": "menu-burger",
		"quantity":   1,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, got, 1)
	assert.Equal(t, cartdom.Cents(1000), got[0].Subtotal)
}
