package services

import (
	"context"
	"testing"

	"StorefrontAPI/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOrder(t *testing.T, store *memOrderStore, status string) int64 {
	t.Helper()
	store.nextID++
	id := store.nextID
	store.orders[id] = model.Order{
		OrderID:       id,
		OrderNumber:   "ORD-TEST1",
		Status:        status,
		CustomerEmail: "ana@example.com",
	}
	store.orderItems[id] = []model.OrderItem{
		{OrderItemID: 1, OrderID: id, ProductID: 1, ProductName: "Product A", Quantity: 1, Price: price("10.00"), Subtotal: price("10.00")},
	}
	return id
}

func TestOrderStatus_AllowedTransitions(t *testing.T) {
	cases := []struct {
		from, to string
	}{
		{model.OrderStatusPending, model.OrderStatusProcessing},
		{model.OrderStatusPending, model.OrderStatusCancelled},
		{model.OrderStatusProcessing, model.OrderStatusShipped},
		{model.OrderStatusProcessing, model.OrderStatusCancelled},
		{model.OrderStatusShipped, model.OrderStatusDelivered},
	}
	for _, tc := range cases {
		t.Run(tc.from+"_to_"+tc.to, func(t *testing.T) {
			store := newMemOrderStore()
			id := seedOrder(t, store, tc.from)
			svc := NewOrderService(store)

			require.NoError(t, svc.UpdateStatus(context.Background(), id, tc.to))
			assert.Equal(t, tc.to, store.orders[id].Status)
		})
	}
}

func TestOrderStatus_RejectedTransitions(t *testing.T) {
	cases := []struct {
		from, to string
	}{
		{model.OrderStatusPending, model.OrderStatusShipped},
		{model.OrderStatusPending, model.OrderStatusDelivered},
		{model.OrderStatusShipped, model.OrderStatusCancelled},
		{model.OrderStatusDelivered, model.OrderStatusProcessing},
		{model.OrderStatusCancelled, model.OrderStatusPending},
	}
	for _, tc := range cases {
		t.Run(tc.from+"_to_"+tc.to, func(t *testing.T) {
			store := newMemOrderStore()
			id := seedOrder(t, store, tc.from)
			svc := NewOrderService(store)

			err := svc.UpdateStatus(context.Background(), id, tc.to)
			require.Error(t, err)
			assert.Equal(t, tc.from, store.orders[id].Status, "status must not change")
		})
	}
}

func TestOrderStatus_UnknownOrder(t *testing.T) {
	svc := NewOrderService(newMemOrderStore())
	err := svc.UpdateStatus(context.Background(), 404, model.OrderStatusProcessing)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderGet_WithItems(t *testing.T) {
	store := newMemOrderStore()
	id := seedOrder(t, store, model.OrderStatusPending)
	svc := NewOrderService(store)

	byID, err := svc.GetWithItems(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "ORD-TEST1", byID.OrderNumber)
	require.Len(t, byID.Items, 1)
	assert.Equal(t, "Product A", byID.Items[0].ProductName)

	byNumber, err := svc.GetByNumber(context.Background(), "ORD-TEST1")
	require.NoError(t, err)
	assert.Equal(t, byID.OrderID, byNumber.OrderID)

	_, err = svc.GetWithItems(context.Background(), 404)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	_, err = svc.GetByNumber(context.Background(), "ORD-NOPE1")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderList_ByEmail(t *testing.T) {
	store := newMemOrderStore()
	seedOrder(t, store, model.OrderStatusPending)
	svc := NewOrderService(store)

	orders, err := svc.ListByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	orders, err = svc.ListByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, orders)

	_, err = svc.ListByEmail(context.Background(), "")
	assert.Error(t, err)
}

func TestOrder_AttachPaymentProof(t *testing.T) {
	store := newMemOrderStore()
	id := seedOrder(t, store, model.OrderStatusPending)
	svc := NewOrderService(store)

	require.NoError(t, svc.AttachPaymentProof(context.Background(), id, "https://bucket/receipt.jpg"))
	require.NotNil(t, store.orders[id].PaymentProof)
	assert.Equal(t, "https://bucket/receipt.jpg", *store.orders[id].PaymentProof)

	assert.Error(t, svc.AttachPaymentProof(context.Background(), id, ""))
	assert.ErrorIs(t, svc.AttachPaymentProof(context.Background(), 404, "x"), ErrOrderNotFound)
}
