package services

import (
	"StorefrontAPI/internal/model"

	"github.com/shopspring/decimal"
)

// Pricing holds the flat shipping fee and tax rate applied to every
// cart and order. Values come from config; defaults are 9.99 / 0.08.
type Pricing struct {
	ShippingFee decimal.Decimal
	TaxRate     decimal.Decimal
}

// Summarize rolls the line items up into a CartSummary. Arithmetic is
// exact decimal; rounding happens once, at the formatting step, half
// away from zero. Intermediate values are never pre-rounded per line.
func (p Pricing) Summarize(items []model.CartItemWithProduct) model.CartSummary {
	subtotal := decimal.Zero
	itemCount := 0
	for _, it := range items {
		subtotal = subtotal.Add(it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		itemCount += it.Quantity
	}

	shipping := decimal.Zero
	if itemCount > 0 {
		shipping = p.ShippingFee
	}
	taxes := subtotal.Mul(p.TaxRate)
	total := subtotal.Add(shipping).Add(taxes)

	return model.CartSummary{
		Subtotal:  subtotal.StringFixed(2),
		Shipping:  shipping.StringFixed(2),
		Taxes:     taxes.StringFixed(2),
		Total:     total.StringFixed(2),
		ItemCount: itemCount,
	}
}

// totals returns the unrounded decimals for order persistence.
func (p Pricing) totals(items []model.CartItemWithProduct) (subtotal, shipping, taxes, total decimal.Decimal) {
	itemCount := 0
	for _, it := range items {
		subtotal = subtotal.Add(it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		itemCount += it.Quantity
	}
	if itemCount > 0 {
		shipping = p.ShippingFee
	}
	taxes = subtotal.Mul(p.TaxRate)
	total = subtotal.Add(shipping).Add(taxes)
	return
}
