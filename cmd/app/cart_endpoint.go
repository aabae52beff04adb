package main

import (
	"net/http"
	"strconv"

	"StorefrontAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type addCartRequest struct {
	ProductID int64  `json:"productid"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

type updateCartRequest struct {
	Quantity int `json:"quantity"`
}

func registerCartRoutes(g *echo.Group, cs *services.CartService) {
	p := g.Group("/cart")

	// GET cart
	p.GET("", func(c echo.Context) error {
		cart, err := cs.Get(c.Request().Context(), sessionID(c))
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, cart)
	})

	// ADD item (merges into an existing line for the same variant)
	p.POST("", func(c echo.Context) error {
		sid := sessionID(c)
		if sid == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "session id is required"})
		}
		req := new(addCartRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}
		cart, err := cs.Add(c.Request().Context(), sid, req.ProductID, req.Quantity, req.Color, req.Size)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusCreated, cart)
	})

	// UPDATE quantity
	p.PUT("/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid cart item id"})
		}
		req := new(updateCartRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		cart, err := cs.Update(c.Request().Context(), id, req.Quantity)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, cart)
	})

	// REMOVE item
	p.DELETE("/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid cart item id"})
		}
		cart, err := cs.Remove(c.Request().Context(), id)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, cart)
	})

	// CLEAR cart
	p.DELETE("", func(c echo.Context) error {
		sid := sessionID(c)
		if sid == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "session id is required"})
		}
		cart, err := cs.Clear(c.Request().Context(), sid)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, cart)
	})
}
