package services

import (
	"context"
	"strings"
	"testing"

	"StorefrontAPI/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDetails() model.CustomerDetails {
	return model.CustomerDetails{
		CustomerName:       "Ana García",
		CustomerEmail:      "ana@example.com",
		CustomerPhone:      "+34 600 000 000",
		ShippingAddress:    "Calle Mayor 1",
		ShippingCity:       "Madrid",
		ShippingPostalCode: "28001",
		ShippingProvince:   "Madrid",
		ShippingCountry:    "España",
		PaymentMethod:      model.PaymentCashOnDelivery,
	}
}

type checkoutFixture struct {
	svc    *CheckoutService
	cart   *memCartStore
	orders *memOrderStore
	prods  *memProductStore
}

func newCheckoutFixture(products ...model.Product) *checkoutFixture {
	ps := newMemProductStore(products...)
	cs := newMemCartStore(ps)
	os := newMemOrderStore()
	return &checkoutFixture{
		svc:    NewCheckoutService(cs, os, NewLocalValidator(), nil, testPricing()),
		cart:   cs,
		orders: os,
		prods:  ps,
	}
}

func TestCheckout_EmptyCartFails(t *testing.T) {
	f := newCheckoutFixture()
	_, err := f.svc.Checkout(context.Background(), "sess-1", validDetails())
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, f.orders.orders, "no order row may be created")
}

func TestCheckout_CollectsAllValidationErrors(t *testing.T) {
	f := newCheckoutFixture(
		model.Product{ProductID: 1, Name: "Laptop Pro", Price: price("1299.99")},
	)
	ctx := context.Background()
	require.NoError(t, f.cart.Upsert(ctx, &model.CartItem{SessionID: "sess-1", ProductID: 1, Quantity: 1}))

	details := model.CustomerDetails{
		CustomerEmail: "not-an-email",
		PaymentMethod: "barter",
	}
	_, cerr := f.svc.Checkout(ctx, "sess-1", details)

	var verr *ValidationError
	require.ErrorAs(t, cerr, &verr)
	// one message per invalid field, collected in a single pass
	for _, field := range []string{
		"customerName", "customerEmail", "customerPhone",
		"shippingAddress", "shippingCity", "shippingPostalCode",
		"shippingProvince", "shippingCountry", "paymentMethod",
	} {
		assert.Contains(t, verr.Fields, field)
	}
	assert.Equal(t, "invalid email format", verr.Fields["customerEmail"])
	assert.Equal(t, "unsupported payment method", verr.Fields["paymentMethod"])

	// the cart must be untouched after a failed checkout
	items, err := f.cart.ItemsBySession(ctx, "sess-1")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCheckout_CreatesOrderAndClearsCart(t *testing.T) {
	f := newCheckoutFixture(
		model.Product{ProductID: 1, Name: "Product A", Price: price("10.00"), ImageURL: "a.jpg"},
		model.Product{ProductID: 2, Name: "Product B", Price: price("25.50"), ImageURL: "b.jpg"},
	)
	ctx := context.Background()

	require.NoError(t, f.cart.Upsert(ctx, &model.CartItem{SessionID: "sess-1", ProductID: 1, Quantity: 2}))
	require.NoError(t, f.cart.Upsert(ctx, &model.CartItem{SessionID: "sess-1", ProductID: 2, Quantity: 1}))

	order, err := f.svc.Checkout(ctx, "sess-1", validDetails())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
	assert.Len(t, order.OrderNumber, len("ORD-")+5)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, "45.50", order.Subtotal.StringFixed(2))
	assert.Equal(t, "9.99", order.Shipping.StringFixed(2))
	assert.Equal(t, "3.64", order.Taxes.StringFixed(2))
	assert.Equal(t, "59.13", order.Total.StringFixed(2))

	// exactly one order, one item per distinct cart line
	assert.Len(t, f.orders.orders, 1)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Product A", order.Items[0].ProductName)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, "20.00", order.Items[0].Subtotal.StringFixed(2))

	// originating cart is gone
	items, err := f.cart.ItemsBySession(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCheckout_RetriesOrderNumberCollisions(t *testing.T) {
	f := newCheckoutFixture(
		model.Product{ProductID: 1, Name: "Product A", Price: price("10.00")},
	)
	ctx := context.Background()
	require.NoError(t, f.cart.Upsert(ctx, &model.CartItem{SessionID: "sess-1", ProductID: 1, Quantity: 1}))

	f.orders.collideNext = 2
	order, err := f.svc.Checkout(ctx, "sess-1", validDetails())
	require.NoError(t, err, "two collisions are within the retry budget")
	assert.NotZero(t, order.OrderID)
}

func TestCheckout_GivesUpAfterBoundedRetries(t *testing.T) {
	f := newCheckoutFixture(
		model.Product{ProductID: 1, Name: "Product A", Price: price("10.00")},
	)
	ctx := context.Background()
	require.NoError(t, f.cart.Upsert(ctx, &model.CartItem{SessionID: "sess-1", ProductID: 1, Quantity: 1}))

	f.orders.collideNext = orderNumberTries
	_, err := f.svc.Checkout(ctx, "sess-1", validDetails())
	assert.ErrorIs(t, err, ErrOrderNumbersExhausted)

	// failure before commit leaves the cart untouched
	items, err2 := f.cart.ItemsBySession(ctx, "sess-1")
	require.NoError(t, err2)
	assert.Len(t, items, 1)
}

// Order items keep the product snapshot even when the catalog entry
// changes afterwards.
func TestCheckout_SnapshotIsolation(t *testing.T) {
	f := newCheckoutFixture(
		model.Product{ProductID: 1, Name: "Product A", Price: price("10.00"), ImageURL: "a.jpg"},
	)
	ctx := context.Background()
	require.NoError(t, f.cart.Upsert(ctx, &model.CartItem{SessionID: "sess-1", ProductID: 1, Quantity: 1}))

	order, err := f.svc.Checkout(ctx, "sess-1", validDetails())
	require.NoError(t, err)

	// rewrite the catalog entry
	f.prods.products[1] = model.Product{
		ProductID: 1, Name: "Renamed", Price: price("99.99"), ImageURL: "new.jpg",
	}

	stored, err := f.orders.ItemsByOrder(ctx, order.OrderID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Product A", stored[0].ProductName)
	assert.Equal(t, "10.00", stored[0].Price.StringFixed(2))
	assert.Equal(t, "a.jpg", stored[0].ProductImageURL)
}
