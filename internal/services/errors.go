package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error taxonomy surfaced to the API layer. None of these are retried
// automatically except the single storage retry on the cart read path.
var (
	ErrInvalidQuantity       = errors.New("quantity must be an integer >= 1")
	ErrProductNotFound       = errors.New("product not found")
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCartItemNotFound      = errors.New("cart item not found")
	ErrOrderNotFound         = errors.New("order not found")
	ErrEmptyCart             = errors.New("cart is empty")
	ErrStorageUnavailable    = errors.New("storage unavailable")
	ErrOrderNumbersExhausted = errors.New("could not generate a unique order number")

	errInvalidEmail = errors.New("invalid email format")
)

// ValidationError carries one message per invalid checkout field,
// collected in a single pass rather than failing on the first.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid order data: " + strings.Join(parts, "; ")
}
