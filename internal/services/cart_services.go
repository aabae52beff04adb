package services

import (
	"context"

	"StorefrontAPI/internal/model"
	"StorefrontAPI/internal/repository"
)

// CartStore is the persistence contract for cart lines. The pgx
// implementation lives in internal/repository; tests supply an
// in-memory one.
type CartStore interface {
	Upsert(ctx context.Context, item *model.CartItem) error
	ItemByID(ctx context.Context, id int64) (*model.CartItem, error)
	ItemsBySession(ctx context.Context, sessionID string) ([]model.CartItemWithProduct, error)
	SetQuantity(ctx context.Context, id int64, qty int) error
	Delete(ctx context.Context, id int64) error
	ClearSession(ctx context.Context, sessionID string) error
}

// ProductStore is the read-only catalog contract the cart consults.
type ProductStore interface {
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context, limit int) ([]model.Product, error)
}

type CartService struct {
	Store    CartStore
	Products ProductStore
	Pricing  Pricing
}

func NewCartService(cs CartStore, ps ProductStore, pricing Pricing) *CartService {
	return &CartService{Store: cs, Products: ps, Pricing: pricing}
}

// Get returns the cart for the session. A missing or unknown session
// key is an empty cart, not an error. Never mutates state.
func (s *CartService) Get(ctx context.Context, sessionID string) (*model.CartResponse, error) {
	if sessionID == "" {
		return s.emptyResponse(), nil
	}
	items, err := s.Store.ItemsBySession(ctx, sessionID)
	if err != nil && repository.IsUnavailable(err) {
		// one retry at the boundary, no backoff
		items, err = s.Store.ItemsBySession(ctx, sessionID)
	}
	if err != nil {
		return nil, ErrStorageUnavailable
	}
	return s.respond(items), nil
}

// Add validates the product and quantity, then merges into an existing
// line for the same (session, product, color, size) or inserts a new
// one. The merge happens at the storage boundary via upsert.
func (s *CartService) Add(ctx context.Context, sessionID string, productID int64, qty int, color, size string) (*model.CartResponse, error) {
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}
	if _, err := s.Products.GetByID(ctx, productID); err != nil {
		return nil, ErrProductNotFound
	}

	item := &model.CartItem{
		SessionID: sessionID,
		ProductID: productID,
		Quantity:  qty,
		Color:     color,
		Size:      size,
	}
	if err := s.Store.Upsert(ctx, item); err != nil {
		return nil, err
	}
	return s.reload(ctx, sessionID)
}

// Update sets the exact quantity of a cart line. Zero is rejected;
// removal is its own operation. Idempotent for the same quantity.
func (s *CartService) Update(ctx context.Context, itemID int64, qty int) (*model.CartResponse, error) {
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}
	item, err := s.Store.ItemByID(ctx, itemID)
	if err != nil {
		return nil, itemError(err)
	}
	if err := s.Store.SetQuantity(ctx, itemID, qty); err != nil {
		return nil, itemError(err)
	}
	return s.reload(ctx, item.SessionID)
}

// Remove deletes a cart line. Removing an unknown line fails with
// ErrCartItemNotFound; this operation is not an idempotent no-op.
func (s *CartService) Remove(ctx context.Context, itemID int64) (*model.CartResponse, error) {
	item, err := s.Store.ItemByID(ctx, itemID)
	if err != nil {
		return nil, itemError(err)
	}
	if err := s.Store.Delete(ctx, itemID); err != nil {
		return nil, itemError(err)
	}
	return s.reload(ctx, item.SessionID)
}

// Clear empties the session's cart. Succeeds even when already empty
// and always returns the canonical empty summary.
func (s *CartService) Clear(ctx context.Context, sessionID string) (*model.CartResponse, error) {
	if err := s.Store.ClearSession(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.emptyResponse(), nil
}

// reload recomputes the summary from the authoritative item list. Every
// mutating call goes through here; totals are never patched in place.
func (s *CartService) reload(ctx context.Context, sessionID string) (*model.CartResponse, error) {
	items, err := s.Store.ItemsBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.respond(items), nil
}

func (s *CartService) respond(items []model.CartItemWithProduct) *model.CartResponse {
	if items == nil {
		items = []model.CartItemWithProduct{}
	}
	return &model.CartResponse{
		Items:   items,
		Summary: s.Pricing.Summarize(items),
	}
}

func (s *CartService) emptyResponse() *model.CartResponse {
	return s.respond(nil)
}

// itemError keeps a storage outage distinct from a missing row so the
// API can answer 503 instead of 404.
func itemError(err error) error {
	if repository.IsUnavailable(err) {
		return ErrStorageUnavailable
	}
	return ErrCartItemNotFound
}
