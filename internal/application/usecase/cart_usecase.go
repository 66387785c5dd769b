// internal/application/usecase/cart_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	cartdom "tableside/internal/domain/cart"
	"tableside/internal/domain/menu"
)

var (
	ErrCartInvalidArgument = errors.New("cart_usecase: invalid argument")
	ErrCartItemNotFound    = errors.New("cart_usecase: item not found")
)

// Clock provides current time (for testability).
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// CartPublisher pushes authoritative snapshots and notices to subscribed
// clients after each mutation. The bus satisfies it.
type CartPublisher interface {
	PublishCartUpdated(sessionID string, c *cartdom.Cart)
	PublishCartError(sessionID string, pe cartdom.PushError)
}

// AddItemRequest carries an add mutation. The service resolves the cached
// name/price snapshot from the catalog; clients send identifiers only.
type AddItemRequest struct {
	MenuItemID             string
	Quantity               int
	Notes                  *string
	CustomizationOptionIDs []string
}

// UpdateItemRequest carries a partial update; nil fields are left untouched.
type UpdateItemRequest struct {
	CartItemID string
	Quantity   *int
	Notes      *string
}

// CartUsecase coordinates session-scoped cart operations for the reference
// service. Conflict handling is deliberately simple: mutations are applied in
// arrival order and every successful one produces a full-snapshot push.
type CartUsecase struct {
	repo    cartdom.Repository
	catalog *menu.Catalog
	pub     CartPublisher
	clock   Clock
}

func NewCartUsecase(repo cartdom.Repository, catalog *menu.Catalog, pub CartPublisher) *CartUsecase {
	return &CartUsecase{
		repo:    repo,
		catalog: catalog,
		pub:     pub,
		clock:   systemClock{},
	}
}

// NewCartUsecaseWithClock is useful for tests.
func NewCartUsecaseWithClock(repo cartdom.Repository, catalog *menu.Catalog, pub CartPublisher, clock Clock) *CartUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &CartUsecase{repo: repo, catalog: catalog, pub: pub, clock: clock}
}

// GetOrCreate returns the session's cart; if absent, creates an empty one and
// persists it.
func (uc *CartUsecase) GetOrCreate(ctx context.Context, sessionID string) (*cartdom.Cart, error) {
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return nil, ErrCartInvalidArgument
	}

	c, err := uc.repo.GetBySessionID(ctx, sid)
	if err != nil {
		return nil, err
	}
	if c != nil {
		return c, nil
	}

	newCart, err := cartdom.NewCart(sid, uc.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, newCart); err != nil {
		return nil, err
	}
	return newCart, nil
}

// AddItem appends a line item with a server-assigned identifier and the menu
// snapshot cached at add time. qty must be >= 1.
func (uc *CartUsecase) AddItem(ctx context.Context, sessionID string, req AddItemRequest) (*cartdom.Cart, error) {
	sid := strings.TrimSpace(sessionID)
	mid := strings.TrimSpace(req.MenuItemID)
	if sid == "" || mid == "" || req.Quantity < 1 {
		return nil, uc.fail(sid, "cart.add", ErrCartInvalidArgument)
	}

	menuItem, err := uc.catalog.Item(mid)
	if err != nil {
		return nil, uc.fail(sid, "cart.add", err)
	}

	customizations := make([]cartdom.Customization, 0, len(req.CustomizationOptionIDs))
	for _, oid := range req.CustomizationOptionIDs {
		op, err := uc.catalog.Option(mid, oid)
		if err != nil {
			return nil, uc.fail(sid, "cart.add", err)
		}
		customizations = append(customizations, cartdom.Customization{
			OptionID: op.ID,
			Name:     op.Name,
			Price:    op.Price,
		})
	}

	c, err := uc.GetOrCreate(ctx, sid)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	item := cartdom.CartItem{
		ID:             uuid.NewString(),
		MenuItemID:     mid,
		Name:           menuItem.Name,
		UnitPrice:      menuItem.BasePrice,
		Quantity:       req.Quantity,
		Notes:          req.Notes,
		Customizations: customizations,
		AddedAt:        now,
		UpdatedAt:      now,
	}
	if err := c.AppendItem(item, now); err != nil {
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, c); err != nil {
		return nil, err
	}

	uc.publish(sid, c)
	return c, nil
}

// UpdateItem overwrites quantity and/or notes of an existing line.
// A quantity below 1 removes the line.
func (uc *CartUsecase) UpdateItem(ctx context.Context, sessionID string, req UpdateItemRequest) (*cartdom.Cart, error) {
	sid := strings.TrimSpace(sessionID)
	iid := strings.TrimSpace(req.CartItemID)
	if sid == "" || iid == "" {
		return nil, uc.fail(sid, "cart.update", ErrCartInvalidArgument)
	}

	c, err := uc.GetOrCreate(ctx, sid)
	if err != nil {
		return nil, err
	}
	if c.FindItem(iid) < 0 {
		return nil, uc.fail(sid, "cart.update", fmt.Errorf("%w: %s", ErrCartItemNotFound, iid))
	}

	now := uc.clock.Now()
	if req.Quantity != nil {
		c.SetQuantity(iid, *req.Quantity, now)
	}
	if req.Notes != nil {
		c.SetNotes(iid, req.Notes, now)
	}
	if err := uc.repo.Upsert(ctx, c); err != nil {
		return nil, err
	}

	uc.publish(sid, c)
	return c, nil
}

// RemoveItem removes an existing line.
func (uc *CartUsecase) RemoveItem(ctx context.Context, sessionID, cartItemID string) (*cartdom.Cart, error) {
	sid := strings.TrimSpace(sessionID)
	iid := strings.TrimSpace(cartItemID)
	if sid == "" || iid == "" {
		return nil, uc.fail(sid, "cart.remove", ErrCartInvalidArgument)
	}

	c, err := uc.GetOrCreate(ctx, sid)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	if !c.RemoveItem(iid, now) {
		return nil, uc.fail(sid, "cart.remove", fmt.Errorf("%w: %s", ErrCartItemNotFound, iid))
	}
	if err := uc.repo.Upsert(ctx, c); err != nil {
		return nil, err
	}

	uc.publish(sid, c)
	return c, nil
}

// Clear empties the cart (the document itself stays).
func (uc *CartUsecase) Clear(ctx context.Context, sessionID string) (*cartdom.Cart, error) {
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return nil, ErrCartInvalidArgument
	}

	c, err := uc.GetOrCreate(ctx, sid)
	if err != nil {
		return nil, err
	}

	c.ClearItems(uc.clock.Now())
	if err := uc.repo.Upsert(ctx, c); err != nil {
		return nil, err
	}

	uc.publish(sid, c)
	return c, nil
}

// EndSession deletes the cart document and pushes a nil snapshot.
func (uc *CartUsecase) EndSession(ctx context.Context, sessionID string) error {
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return ErrCartInvalidArgument
	}
	if err := uc.repo.DeleteBySessionID(ctx, sid); err != nil {
		return err
	}
	if uc.pub != nil {
		uc.pub.PublishCartUpdated(sid, nil)
	}
	return nil
}

func (uc *CartUsecase) publish(sid string, c *cartdom.Cart) {
	if uc.pub == nil {
		return
	}
	uc.pub.PublishCartUpdated(sid, c)
}

// fail pushes a cart.error notice (when the session is identifiable) and
// returns err unchanged.
func (uc *CartUsecase) fail(sid, originating string, err error) error {
	if uc.pub != nil && sid != "" {
		uc.pub.PublishCartError(sid, cartdom.PushError{
			Message:          err.Error(),
			OriginatingEvent: originating,
		})
	}
	return err
}
