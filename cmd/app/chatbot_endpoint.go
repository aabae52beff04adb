package main

import (
	"net/http"

	"StorefrontAPI/internal/chatbot"
	"StorefrontAPI/internal/model"

	"github.com/labstack/echo/v4"
)

type chatMessageRequest struct {
	Text string `json:"text"`
}

// registerChatbotRoutes exposes the chat widget's dialogue engine.
// The chat cart is a separate in-memory container from the session
// cart, and the chat checkout is simulated; neither touches the real
// order flow.
func registerChatbotRoutes(g *echo.Group, registry *chatbot.Registry) {
	p := g.Group("/chatbot")

	withEngine := func(c echo.Context) (*chatbot.Engine, error) {
		sid := sessionID(c)
		if sid == "" {
			return nil, c.JSON(http.StatusBadRequest, map[string]string{"error": "session id is required"})
		}
		engine, err := registry.Engine(c.Request().Context(), sid)
		if err != nil {
			return nil, c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return engine, nil
	}

	// SUBMIT a user message; the reply shows up in the transcript
	p.POST("/messages", func(c echo.Context) error {
		engine, err := withEngine(c)
		if engine == nil {
			return err
		}
		req := new(chatMessageRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		engine.Submit(req.Text)
		return c.NoContent(http.StatusAccepted)
	})

	// GET transcript
	p.GET("/messages", func(c echo.Context) error {
		engine, err := withEngine(c)
		if engine == nil {
			return err
		}
		return c.JSON(http.StatusOK, engine.Messages())
	})

	// GET local chat cart
	p.GET("/cart", func(c echo.Context) error {
		engine, err := withEngine(c)
		if engine == nil {
			return err
		}
		return c.JSON(http.StatusOK, engine.Cart())
	})

	// ADD a product to the local chat cart (duplicates allowed)
	p.POST("/cart", func(c echo.Context) error {
		engine, err := withEngine(c)
		if engine == nil {
			return err
		}
		product := new(model.Product)
		if err := c.Bind(product); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		engine.AddToCart(*product)
		return c.NoContent(http.StatusCreated)
	})

	// SIMULATED checkout: canned confirmation, empties the chat cart
	p.POST("/checkout", func(c echo.Context) error {
		engine, err := withEngine(c)
		if engine == nil {
			return err
		}
		engine.Checkout()
		return c.NoContent(http.StatusOK)
	})

	// OPEN/CLOSE for session-duration tracking
	p.POST("/open", func(c echo.Context) error {
		engine, err := withEngine(c)
		if engine == nil {
			return err
		}
		engine.Open()
		return c.NoContent(http.StatusOK)
	})

	p.POST("/close", func(c echo.Context) error {
		engine, err := withEngine(c)
		if engine == nil {
			return err
		}
		engine.Close()
		return c.NoContent(http.StatusOK)
	})

	// GET analytics counters
	p.GET("/analytics", func(c echo.Context) error {
		engine, err := withEngine(c)
		if engine == nil {
			return err
		}
		return c.JSON(http.StatusOK, engine.Analytics())
	})
}
