package services

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"regexp"
	"strings"

	"StorefrontAPI/internal/model"
	"StorefrontAPI/internal/repository"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const (
	orderNumberPrefix = "ORD-"
	orderNumberLen    = 5
	orderNumberTries  = 5
)

var (
	emailRegex      = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	orderNumberRunes = []byte("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ")
)

// OrderWriter is the transactional persistence contract for checkout.
// CreateWithItems must write the order header and all items atomically
// and return repository.ErrOrderNumberTaken on a number collision.
type OrderWriter interface {
	CreateWithItems(ctx context.Context, o *model.Order, items []model.OrderItem) error
}

// Mailer sends the order confirmation after a successful checkout.
type Mailer interface {
	SendOrderConfirmation(ctx context.Context, toEmail, orderNumber, total string) error
}

// CheckoutService converts a session's cart into an immutable order.
type CheckoutService struct {
	Cart      CartStore
	Orders    OrderWriter
	Validator EmailValidator
	Mailer    Mailer // optional
	Pricing   Pricing
}

func NewCheckoutService(cs CartStore, ow OrderWriter, ev EmailValidator, mailer Mailer, pricing Pricing) *CheckoutService {
	return &CheckoutService{
		Cart:      cs,
		Orders:    ow,
		Validator: ev,
		Mailer:    mailer,
		Pricing:   pricing,
	}
}

// Checkout runs the conversion as an all-or-nothing unit:
//
//  1. snapshot the cart; empty cart fails before anything is written
//  2. validate customer details, collecting every invalid field
//  3. compute totals from the snapshot (not re-read mid-flight)
//  4. generate an order number, retrying on collision up to 5 times
//  5. persist order + items in one transaction
//  6. clear the cart only after the commit
//
// Any failure before the commit leaves the cart untouched and no order
// partially written.
func (s *CheckoutService) Checkout(ctx context.Context, sessionID string, details model.CustomerDetails) (*model.OrderWithItems, error) {
	items, err := s.Cart.ItemsBySession(ctx, sessionID)
	if err != nil {
		return nil, ErrStorageUnavailable
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	if err := s.validate(ctx, details); err != nil {
		return nil, err
	}

	subtotal, shipping, taxes, total := s.Pricing.totals(items)

	order := &model.Order{
		Status:             model.OrderStatusPending,
		Subtotal:           subtotal.Round(2),
		Shipping:           shipping.Round(2),
		Taxes:              taxes.Round(2),
		Total:              total.Round(2),
		PaymentMethod:      details.PaymentMethod,
		ShippingAddress:    details.ShippingAddress,
		ShippingCity:       details.ShippingCity,
		ShippingPostalCode: details.ShippingPostalCode,
		ShippingProvince:   details.ShippingProvince,
		ShippingCountry:    details.ShippingCountry,
		CustomerName:       details.CustomerName,
		CustomerEmail:      details.CustomerEmail,
		CustomerPhone:      details.CustomerPhone,
	}

	orderItems := make([]model.OrderItem, 0, len(items))
	for _, it := range items {
		orderItems = append(orderItems, model.OrderItem{
			ProductID:       it.ProductID,
			ProductName:     it.Product.Name,
			ProductImageURL: it.Product.ImageURL,
			Price:           it.Product.Price,
			Quantity:        it.Quantity,
			Color:           it.Color,
			Size:            it.Size,
			Subtotal:        it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))),
		})
	}

	created := false
	for attempt := 0; attempt < orderNumberTries; attempt++ {
		number, err := generateOrderNumber()
		if err != nil {
			return nil, err
		}
		order.OrderNumber = number

		err = s.Orders.CreateWithItems(ctx, order, orderItems)
		if err == nil {
			created = true
			break
		}
		if errors.Is(err, repository.ErrOrderNumberTaken) {
			continue
		}
		return nil, err
	}
	if !created {
		return nil, ErrOrderNumbersExhausted
	}

	// the order is committed; a failed cart clear must not undo it
	if err := s.Cart.ClearSession(ctx, sessionID); err != nil {
		log.WithError(err).WithField("ordernumber", order.OrderNumber).
			Warn("cart clear after checkout failed")
	}

	if s.Mailer != nil {
		if err := s.Mailer.SendOrderConfirmation(ctx, order.CustomerEmail, order.OrderNumber, order.Total.StringFixed(2)); err != nil {
			log.WithError(err).WithField("ordernumber", order.OrderNumber).
				Warn("order confirmation email failed")
		}
	}

	return &model.OrderWithItems{Order: *order, Items: orderItems}, nil
}

// validate checks the fixed required-field set in one pass and returns
// a ValidationError keyed by field name.
func (s *CheckoutService) validate(ctx context.Context, d model.CustomerDetails) error {
	fields := map[string]string{}

	require := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			fields[field] = "is required"
		}
	}
	require("customerName", d.CustomerName)
	require("customerPhone", d.CustomerPhone)
	require("shippingAddress", d.ShippingAddress)
	require("shippingCity", d.ShippingCity)
	require("shippingPostalCode", d.ShippingPostalCode)
	require("shippingProvince", d.ShippingProvince)
	require("shippingCountry", d.ShippingCountry)

	if d.CustomerEmail == "" {
		fields["customerEmail"] = "is required"
	} else if !emailRegex.MatchString(d.CustomerEmail) {
		fields["customerEmail"] = "invalid email format"
	} else if s.Validator != nil {
		if err := s.Validator.Validate(ctx, d.CustomerEmail); err != nil {
			fields["customerEmail"] = err.Error()
		}
	}

	switch d.PaymentMethod {
	case model.PaymentCreditCard, model.PaymentCashOnDelivery:
	case "":
		fields["paymentMethod"] = "is required"
	default:
		fields["paymentMethod"] = "unsupported payment method"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// generateOrderNumber returns ORD- plus 5 random base36 characters.
// Collisions are unlikely but not impossible; the caller retries on
// the uniqueness constraint.
func generateOrderNumber() (string, error) {
	b := make([]byte, orderNumberLen)
	alphabet := big.NewInt(int64(len(orderNumberRunes)))
	for i := range b {
		n, err := rand.Int(rand.Reader, alphabet)
		if err != nil {
			return "", err
		}
		b[i] = orderNumberRunes[n.Int64()]
	}
	return orderNumberPrefix + string(b), nil
}
