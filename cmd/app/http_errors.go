package main

import (
	"errors"
	"net/http"

	"StorefrontAPI/internal/services"

	"github.com/labstack/echo/v4"
)

// jsonError maps service errors onto HTTP responses. Validation errors
// carry the full field->message map so the form can show everything at
// once.
func jsonError(c echo.Context, err error) error {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":  "invalid order data",
			"fields": verr.Fields,
		})
	}

	switch {
	case errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrCartItemNotFound),
		errors.Is(err, services.ErrOrderNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrEmptyCart):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error(), "code": "empty_cart"})
	case errors.Is(err, services.ErrInvalidQuantity):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrStorageUnavailable):
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrOrderNumbersExhausted):
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	default:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
}

// sessionID reads the opaque client-held session key.
func sessionID(c echo.Context) string {
	return c.Request().Header.Get("X-Session-ID")
}
