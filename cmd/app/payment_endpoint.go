package main

import (
	"net/http"
	"strconv"

	"StorefrontAPI/internal/services"

	"github.com/labstack/echo/v4"
)

func registerPaymentRoutes(g *echo.Group, ps *services.PaymentService) {
	p := g.Group("/payments")

	// CREATE a midtrans Snap transaction for a credit-card order
	p.POST("/snap/:orderid", func(c echo.Context) error {
		orderID, err := strconv.ParseInt(c.Param("orderid"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid order id"})
		}
		redirectURL, err := ps.CreateSnapPayment(c.Request().Context(), orderID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"redirect_url": redirectURL})
	})

	// midtrans webhook
	p.POST("/midtrans/notification", func(c echo.Context) error {
		payload := map[string]interface{}{}
		if err := c.Bind(&payload); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		}
		if err := ps.HandleNotification(c.Request().Context(), payload); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "ok"})
	})
}
