package model

import "time"

// CartItem is a single line in a session's cart. A given
// (session, product, color, size) tuple maps to at most one row;
// adding the same combination again merges into the quantity.
// Empty color/size means "no variant".
type CartItem struct {
	CartItemID int64      `json:"cartitemid"`
	SessionID  string     `json:"sessionid"`
	ProductID  int64      `json:"productid"`
	Quantity   int        `json:"quantity"`
	Color      string     `json:"color,omitempty"`
	Size       string     `json:"size,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// CartItemWithProduct is what the API exposes (joined with products)
type CartItemWithProduct struct {
	CartItem
	Product Product `json:"product"`
}

// CartSummary is derived fresh from the item list on every call, never
// persisted. Monetary fields are decimal strings with exactly 2 fraction
// digits, rounded half away from zero at formatting only.
type CartSummary struct {
	Subtotal  string `json:"subtotal"`
	Shipping  string `json:"shipping"`
	Taxes     string `json:"taxes"`
	Total     string `json:"total"`
	ItemCount int    `json:"itemCount"`
}

// CartResponse is returned by every cart operation
type CartResponse struct {
	Items   []CartItemWithProduct `json:"items"`
	Summary CartSummary           `json:"summary"`
}
