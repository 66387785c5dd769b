// internal/adapters/in/http/orderapi/handler/cart_handler.go
package orderapiHandler

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	usecase "tableside/internal/application/usecase"
	cartdom "tableside/internal/domain/cart"
	"tableside/internal/domain/menu"
)

// CartHandler serves the session-scoped cart endpoints the self-ordering
// client consumes:
//
//	GET    …/cart        full snapshot (creates an empty cart on first read)
//	DELETE …/cart        clear the cart
//	POST   …/cart/items  add item
//	PUT    …/cart/items  partial update (quantity and/or notes)
//	DELETE …/cart/items  remove item
//	DELETE …/session     end the session (cart document deleted)
type CartHandler struct {
	uc *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) http.Handler {
	return &CartHandler{uc: uc}
}

func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	path := strings.TrimRight(r.URL.Path, "/")
	if path == "" {
		path = "/"
	}

	if h.uc == nil {
		log.Printf("[orderapi.cart_handler] exit status=500 reason=usecase is nil elapsed=%s", time.Since(start))
		writeErr(w, http.StatusInternalServerError, "cart handler is not configured")
		return
	}

	isItems := strings.HasSuffix(path, "/cart/items") || path == "/items"
	isCart := !isItems && (strings.HasSuffix(path, "/cart") || path == "/")
	isSession := strings.HasSuffix(path, "/session")

	switch {
	case r.Method == http.MethodGet && isCart:
		h.handleGet(w, r, start)
	case r.Method == http.MethodDelete && isCart:
		h.handleClear(w, r, start)
	case r.Method == http.MethodPost && isItems:
		h.handleAddItem(w, r, start)
	case r.Method == http.MethodPut && isItems:
		h.handleUpdateItem(w, r, start)
	case r.Method == http.MethodDelete && isItems:
		h.handleRemoveItem(w, r, start)
	case r.Method == http.MethodDelete && isSession:
		h.handleEndSession(w, r, start)
	default:
		log.Printf("[orderapi.cart_handler] exit status=404 method=%s path=%q elapsed=%s", r.Method, path, time.Since(start))
		writeErr(w, http.StatusNotFound, "not found")
	}
}

func (h *CartHandler) handleGet(w http.ResponseWriter, r *http.Request, start time.Time) {
	sid := readSessionID(r, "")
	if sid == "" {
		writeErr(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	c, err := h.uc.GetOrCreate(r.Context(), sid)
	if err != nil {
		log.Printf("[orderapi.cart_handler] GET cart uc error session=%q err=%v", sid, err)
		h.writeUcErr(w, err)
		return
	}

	log.Printf("[orderapi.cart_handler] GET cart ok session=%q items=%d elapsed=%s", sid, len(c.Items), time.Since(start))
	writeJSON(w, http.StatusOK, c)
}

func (h *CartHandler) handleClear(w http.ResponseWriter, r *http.Request, start time.Time) {
	sid := readSessionID(r, "")
	if sid == "" {
		writeErr(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	c, err := h.uc.Clear(r.Context(), sid)
	if err != nil {
		log.Printf("[orderapi.cart_handler] DELETE cart uc error session=%q err=%v", sid, err)
		h.writeUcErr(w, err)
		return
	}

	log.Printf("[orderapi.cart_handler] DELETE cart ok session=%q elapsed=%s", sid, time.Since(start))
	writeJSON(w, http.StatusOK, c)
}

func (h *CartHandler) handleAddItem(w http.ResponseWriter, r *http.Request, start time.Time) {
	var req addItemReq
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	sid := readSessionID(r, req.SessionID)
	mid := strings.TrimSpace(req.MenuItemID)
	if sid == "" || mid == "" || req.Quantity < 1 {
		writeErr(w, http.StatusBadRequest, "sessionId, menuItemId, quantity(>=1) are required")
		return
	}

	optionIDs := make([]string, 0, len(req.Customizations))
	for _, c := range req.Customizations {
		optionIDs = append(optionIDs, c.CustomizationOptionID)
	}

	c, err := h.uc.AddItem(r.Context(), sid, usecase.AddItemRequest{
		MenuItemID:             mid,
		Quantity:               req.Quantity,
		Notes:                  req.Notes,
		CustomizationOptionIDs: optionIDs,
	})
	if err != nil {
		log.Printf("[orderapi.cart_handler] POST add-item uc error session=%q menuItem=%q err=%v", sid, mid, err)
		h.writeUcErr(w, err)
		return
	}

	log.Printf("[orderapi.cart_handler] POST add-item ok session=%q menuItem=%q qty=%d elapsed=%s", sid, mid, req.Quantity, time.Since(start))
	writeJSON(w, http.StatusOK, c)
}

func (h *CartHandler) handleUpdateItem(w http.ResponseWriter, r *http.Request, start time.Time) {
	var req updateItemReq
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	sid := readSessionID(r, req.SessionID)
	iid := strings.TrimSpace(req.CartItemID)
	if sid == "" || iid == "" {
		writeErr(w, http.StatusBadRequest, "sessionId and cartItemId are required")
		return
	}

	c, err := h.uc.UpdateItem(r.Context(), sid, usecase.UpdateItemRequest{
		CartItemID: iid,
		Quantity:   req.Quantity,
		Notes:      req.Notes,
	})
	if err != nil {
		log.Printf("[orderapi.cart_handler] PUT update-item uc error session=%q item=%q err=%v", sid, iid, err)
		h.writeUcErr(w, err)
		return
	}

	log.Printf("[orderapi.cart_handler] PUT update-item ok session=%q item=%q elapsed=%s", sid, iid, time.Since(start))
	writeJSON(w, http.StatusOK, c)
}

func (h *CartHandler) handleRemoveItem(w http.ResponseWriter, r *http.Request, start time.Time) {
	// cartItemId may arrive as query or body.
	var req removeItemReq
	if r.Body != nil && r.ContentLength != 0 {
		if err := readJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
	}

	sid := readSessionID(r, req.SessionID)
	iid := strings.TrimSpace(r.URL.Query().Get("cartItemId"))
	if iid == "" {
		iid = strings.TrimSpace(req.CartItemID)
	}
	if sid == "" || iid == "" {
		writeErr(w, http.StatusBadRequest, "sessionId and cartItemId are required")
		return
	}

	c, err := h.uc.RemoveItem(r.Context(), sid, iid)
	if err != nil {
		log.Printf("[orderapi.cart_handler] DELETE remove-item uc error session=%q item=%q err=%v", sid, iid, err)
		h.writeUcErr(w, err)
		return
	}

	log.Printf("[orderapi.cart_handler] DELETE remove-item ok session=%q item=%q elapsed=%s", sid, iid, time.Since(start))
	writeJSON(w, http.StatusOK, c)
}

func (h *CartHandler) handleEndSession(w http.ResponseWriter, r *http.Request, start time.Time) {
	sid := readSessionID(r, "")
	if sid == "" {
		writeErr(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	if err := h.uc.EndSession(r.Context(), sid); err != nil {
		log.Printf("[orderapi.cart_handler] DELETE session uc error session=%q err=%v", sid, err)
		h.writeUcErr(w, err)
		return
	}

	log.Printf("[orderapi.cart_handler] DELETE session ok session=%q elapsed=%s", sid, time.Since(start))
	writeJSON(w, http.StatusOK, map[string]any{"ended": true})
}

func (h *CartHandler) writeUcErr(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		writeErr(w, http.StatusInternalServerError, "unknown error")
	case errors.Is(err, usecase.ErrCartInvalidArgument), errors.Is(err, cartdom.ErrInvalidCart):
		writeErr(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, usecase.ErrCartItemNotFound),
		errors.Is(err, menu.ErrItemNotFound),
		errors.Is(err, menu.ErrOptionNotFound):
		writeErr(w, http.StatusNotFound, err.Error())
	default:
		writeErr(w, http.StatusInternalServerError, err.Error())
	}
}

// -------------------------
// request DTOs
// -------------------------

type customizationRef struct {
	CustomizationOptionID string `json:"customizationOptionId"`
}

type addItemReq struct {
	SessionID      string             `json:"sessionId"`
	MenuItemID     string             `json:"menuItemId"`
	Quantity       int                `json:"quantity"`
	Notes          *string            `json:"notes,omitempty"`
	Customizations []customizationRef `json:"customizations"`
}

type updateItemReq struct {
	SessionID  string  `json:"sessionId"`
	CartItemID string  `json:"cartItemId"`
	Quantity   *int    `json:"quantity,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

type removeItemReq struct {
	SessionID  string `json:"sessionId"`
	CartItemID string `json:"cartItemId"`
}
