package services

import (
	"context"
	"errors"
	"fmt"

	"StorefrontAPI/internal/model"
)

// OrderStore is the read/update contract for persisted orders.
type OrderStore interface {
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	GetByNumber(ctx context.Context, number string) (*model.Order, error)
	ListByEmail(ctx context.Context, email string) ([]model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	ItemsByOrder(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	SetStatus(ctx context.Context, orderID int64, status string) error
	SetPaymentProof(ctx context.Context, orderID int64, proof string) error
}

// statusTransitions encodes the order lifecycle:
// pending -> processing -> shipped -> delivered, with cancelled
// reachable only from pending and processing.
var statusTransitions = map[string][]string{
	model.OrderStatusPending:    {model.OrderStatusProcessing, model.OrderStatusCancelled},
	model.OrderStatusProcessing: {model.OrderStatusShipped, model.OrderStatusCancelled},
	model.OrderStatusShipped:    {model.OrderStatusDelivered},
	model.OrderStatusDelivered:  {},
	model.OrderStatusCancelled:  {},
}

type OrderService struct {
	Store OrderStore
}

func NewOrderService(store OrderStore) *OrderService {
	return &OrderService{Store: store}
}

func (s *OrderService) GetWithItems(ctx context.Context, orderID int64) (*model.OrderWithItems, error) {
	order, err := s.Store.GetByID(ctx, orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	return s.attachItems(ctx, order)
}

func (s *OrderService) GetByNumber(ctx context.Context, number string) (*model.OrderWithItems, error) {
	order, err := s.Store.GetByNumber(ctx, number)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	return s.attachItems(ctx, order)
}

func (s *OrderService) ListByEmail(ctx context.Context, email string) ([]model.OrderWithItems, error) {
	if email == "" {
		return nil, errors.New("email is required")
	}
	orders, err := s.Store.ListByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.attachAll(ctx, orders)
}

func (s *OrderService) ListByUser(ctx context.Context, userID int64) ([]model.OrderWithItems, error) {
	orders, err := s.Store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.attachAll(ctx, orders)
}

// UpdateStatus applies a lifecycle transition. Anything outside the
// transition table is rejected.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int64, status string) error {
	order, err := s.Store.GetByID(ctx, orderID)
	if err != nil {
		return ErrOrderNotFound
	}
	allowed, ok := statusTransitions[order.Status]
	if !ok {
		return fmt.Errorf("unknown order status %q", order.Status)
	}
	for _, next := range allowed {
		if next == status {
			return s.Store.SetStatus(ctx, orderID, status)
		}
	}
	return fmt.Errorf("cannot transition order from %s to %s", order.Status, status)
}

// AttachPaymentProof stores a proof reference (e.g. a transfer receipt
// URL) on an existing order.
func (s *OrderService) AttachPaymentProof(ctx context.Context, orderID int64, proof string) error {
	if proof == "" {
		return errors.New("payment proof is required")
	}
	if _, err := s.Store.GetByID(ctx, orderID); err != nil {
		return ErrOrderNotFound
	}
	return s.Store.SetPaymentProof(ctx, orderID, proof)
}

func (s *OrderService) attachItems(ctx context.Context, order *model.Order) (*model.OrderWithItems, error) {
	items, err := s.Store.ItemsByOrder(ctx, order.OrderID)
	if err != nil {
		return nil, err
	}
	return &model.OrderWithItems{Order: *order, Items: items}, nil
}

func (s *OrderService) attachAll(ctx context.Context, orders []model.Order) ([]model.OrderWithItems, error) {
	out := make([]model.OrderWithItems, 0, len(orders))
	for i := range orders {
		owi, err := s.attachItems(ctx, &orders[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *owi)
	}
	return out, nil
}
