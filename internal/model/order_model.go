package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order lifecycle. Cancelled is terminal and only reachable from
// Pending or Processing.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Payment methods accepted at checkout
const (
	PaymentCreditCard     = "credit-card"
	PaymentCashOnDelivery = "cash-on-delivery"
)

// Order represents an entry in the orders table. Immutable once created
// except for status transitions and the payment proof attachment.
type Order struct {
	OrderID     int64           `json:"orderid"`
	OrderNumber string          `json:"ordernumber"`
	UserID      *int64          `json:"userid,omitempty"` // nil for guest checkout
	Status      string          `json:"status"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Shipping    decimal.Decimal `json:"shipping"`
	Taxes       decimal.Decimal `json:"taxes"`
	Total       decimal.Decimal `json:"total"`

	PaymentMethod string  `json:"paymentmethod"`
	PaymentProof  *string `json:"paymentproof,omitempty"`

	ShippingAddress    string `json:"shippingaddress"`
	ShippingCity       string `json:"shippingcity"`
	ShippingPostalCode string `json:"shippingpostalcode"`
	ShippingProvince   string `json:"shippingprovince"`
	ShippingCountry    string `json:"shippingcountry"`

	CustomerName  string `json:"customername"`
	CustomerEmail string `json:"customeremail"`
	CustomerPhone string `json:"customerphone"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// OrderItem is a row in the orderitems table. Product name, image and
// unit price are snapshots taken at purchase time so later catalog edits
// never alter historical orders. Written once, never mutated.
type OrderItem struct {
	OrderItemID     int64           `json:"orderitemid"`
	OrderID         int64           `json:"orderid"`
	ProductID       int64           `json:"productid"`
	ProductName     string          `json:"productname"`
	ProductImageURL string          `json:"productimageurl"`
	Price           decimal.Decimal `json:"price"`
	Quantity        int             `json:"quantity"`
	Color           string          `json:"color,omitempty"`
	Size            string          `json:"size,omitempty"`
	Subtotal        decimal.Decimal `json:"subtotal"`
}

// OrderWithItems is returned by checkout and the order lookups
type OrderWithItems struct {
	Order
	Items []OrderItem `json:"items"`
}

// CustomerDetails is the checkout form payload
type CustomerDetails struct {
	CustomerName       string `json:"customerName"`
	CustomerEmail      string `json:"customerEmail"`
	CustomerPhone      string `json:"customerPhone"`
	ShippingAddress    string `json:"shippingAddress"`
	ShippingCity       string `json:"shippingCity"`
	ShippingPostalCode string `json:"shippingPostalCode"`
	ShippingProvince   string `json:"shippingProvince"`
	ShippingCountry    string `json:"shippingCountry"`
	PaymentMethod      string `json:"paymentMethod"`
}
