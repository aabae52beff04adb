package main

import (
	"net/http"
	"strconv"

	"StorefrontAPI/internal/middleware"
	"StorefrontAPI/internal/model"
	"StorefrontAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type updateStatusRequest struct {
	Status string `json:"status"`
}

type paymentProofRequest struct {
	PaymentProof string `json:"paymentproof"`
}

func registerOrderRoutes(g *echo.Group, os *services.OrderService, checkout *services.CheckoutService) {
	p := g.Group("/orders")

	// CHECKOUT: convert the session cart into an order
	p.POST("", func(c echo.Context) error {
		sid := sessionID(c)
		if sid == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "session id is required"})
		}
		details := new(model.CustomerDetails)
		if err := c.Bind(details); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		order, err := checkout.Checkout(c.Request().Context(), sid, *details)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusCreated, order)
	})

	// LIST orders by customer email (guest order history)
	p.GET("", func(c echo.Context) error {
		email := c.QueryParam("email")
		if email == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "email is required"})
		}
		orders, err := os.ListByEmail(c.Request().Context(), email)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, orders)
	})

	// LIST the authenticated user's orders
	p.GET("/mine", func(c echo.Context) error {
		claims := middleware.TryGetClaimsFromAuthHeader(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		}
		orders, err := os.ListByUser(c.Request().Context(), claims.AuthID)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, orders)
	})

	// GET order by human-readable number
	p.GET("/number/:ordernumber", func(c echo.Context) error {
		order, err := os.GetByNumber(c.Request().Context(), c.Param("ordernumber"))
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, order)
	})

	// GET order by id
	p.GET("/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid order id"})
		}
		order, err := os.GetWithItems(c.Request().Context(), id)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, order)
	})

	// ATTACH payment proof
	p.POST("/:id/payment-proof", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid order id"})
		}
		req := new(paymentProofRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		if err := os.AttachPaymentProof(c.Request().Context(), id, req.PaymentProof); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "payment proof attached"})
	})

	// UPDATE status (admin)
	p.PUT("/:id/status", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid order id"})
		}
		req := new(updateStatusRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		if err := os.UpdateStatus(c.Request().Context(), id, req.Status); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "status updated"})
	}, middleware.JWTMiddleware(), middleware.AdminOnly)
}
