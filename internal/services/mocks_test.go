package services

import (
	"context"
	"errors"
	"sort"

	"StorefrontAPI/internal/model"
	"StorefrontAPI/internal/repository"

	"github.com/shopspring/decimal"
)

// In-memory stores satisfying the service contracts, in place of the
// pgx repositories.

type memProductStore struct {
	products map[int64]model.Product
}

func newMemProductStore(products ...model.Product) *memProductStore {
	m := &memProductStore{products: map[int64]model.Product{}}
	for _, p := range products {
		m.products[p.ProductID] = p
	}
	return m
}

func (m *memProductStore) GetByID(_ context.Context, id int64) (*model.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, errors.New("product not found")
	}
	return &p, nil
}

func (m *memProductStore) List(_ context.Context, _ int) ([]model.Product, error) {
	ids := make([]int64, 0, len(m.products))
	for id := range m.products {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]model.Product, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.products[id])
	}
	return out, nil
}

type memCartStore struct {
	products *memProductStore
	items    map[int64]model.CartItem
	nextID   int64
}

func newMemCartStore(products *memProductStore) *memCartStore {
	return &memCartStore{products: products, items: map[int64]model.CartItem{}}
}

func (m *memCartStore) Upsert(_ context.Context, item *model.CartItem) error {
	for id, existing := range m.items {
		if existing.SessionID == item.SessionID &&
			existing.ProductID == item.ProductID &&
			existing.Color == item.Color &&
			existing.Size == item.Size {
			existing.Quantity += item.Quantity
			m.items[id] = existing
			item.CartItemID = id
			return nil
		}
	}
	m.nextID++
	item.CartItemID = m.nextID
	m.items[item.CartItemID] = *item
	return nil
}

func (m *memCartStore) ItemByID(_ context.Context, id int64) (*model.CartItem, error) {
	it, ok := m.items[id]
	if !ok {
		return nil, errors.New("cart item not found")
	}
	return &it, nil
}

func (m *memCartStore) ItemsBySession(_ context.Context, sessionID string) ([]model.CartItemWithProduct, error) {
	ids := make([]int64, 0, len(m.items))
	for id, it := range m.items {
		if it.SessionID == sessionID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]model.CartItemWithProduct, 0, len(ids))
	for _, id := range ids {
		it := m.items[id]
		out = append(out, model.CartItemWithProduct{
			CartItem: it,
			Product:  m.products.products[it.ProductID],
		})
	}
	return out, nil
}

func (m *memCartStore) SetQuantity(_ context.Context, id int64, qty int) error {
	it, ok := m.items[id]
	if !ok {
		return errors.New("cart item not found")
	}
	it.Quantity = qty
	m.items[id] = it
	return nil
}

func (m *memCartStore) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return errors.New("cart item not found")
	}
	delete(m.items, id)
	return nil
}

func (m *memCartStore) ClearSession(_ context.Context, sessionID string) error {
	for id, it := range m.items {
		if it.SessionID == sessionID {
			delete(m.items, id)
		}
	}
	return nil
}

type memOrderStore struct {
	orders     map[int64]model.Order
	orderItems map[int64][]model.OrderItem
	numbers    map[string]bool
	nextID     int64

	// collideNext forces the next N CreateWithItems calls to report an
	// order number collision.
	collideNext int
}

func newMemOrderStore() *memOrderStore {
	return &memOrderStore{
		orders:     map[int64]model.Order{},
		orderItems: map[int64][]model.OrderItem{},
		numbers:    map[string]bool{},
	}
}

func (m *memOrderStore) CreateWithItems(_ context.Context, o *model.Order, items []model.OrderItem) error {
	if m.collideNext > 0 {
		m.collideNext--
		return repository.ErrOrderNumberTaken
	}
	if m.numbers[o.OrderNumber] {
		return repository.ErrOrderNumberTaken
	}
	m.nextID++
	o.OrderID = m.nextID
	m.numbers[o.OrderNumber] = true
	m.orders[o.OrderID] = *o

	stored := make([]model.OrderItem, len(items))
	copy(stored, items)
	for i := range stored {
		stored[i].OrderID = o.OrderID
		stored[i].OrderItemID = int64(i + 1)
	}
	m.orderItems[o.OrderID] = stored
	return nil
}

func (m *memOrderStore) GetByID(_ context.Context, id int64) (*model.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, errors.New("order not found")
	}
	return &o, nil
}

func (m *memOrderStore) GetByNumber(_ context.Context, number string) (*model.Order, error) {
	for _, o := range m.orders {
		if o.OrderNumber == number {
			return &o, nil
		}
	}
	return nil, errors.New("order not found")
}

func (m *memOrderStore) ListByEmail(_ context.Context, email string) ([]model.Order, error) {
	var out []model.Order
	for _, o := range m.orders {
		if o.CustomerEmail == email {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memOrderStore) ListByUser(_ context.Context, userID int64) ([]model.Order, error) {
	var out []model.Order
	for _, o := range m.orders {
		if o.UserID != nil && *o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memOrderStore) ItemsByOrder(_ context.Context, orderID int64) ([]model.OrderItem, error) {
	return m.orderItems[orderID], nil
}

func (m *memOrderStore) SetStatus(_ context.Context, orderID int64, status string) error {
	o, ok := m.orders[orderID]
	if !ok {
		return errors.New("order not found")
	}
	o.Status = status
	m.orders[orderID] = o
	return nil
}

func (m *memOrderStore) SetPaymentProof(_ context.Context, orderID int64, proof string) error {
	o, ok := m.orders[orderID]
	if !ok {
		return errors.New("order not found")
	}
	o.PaymentProof = &proof
	m.orders[orderID] = o
	return nil
}

func price(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testPricing() Pricing {
	return Pricing{ShippingFee: price("9.99"), TaxRate: price("0.08")}
}
