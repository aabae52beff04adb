package main

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// registerSessionRoutes mints opaque session keys for first-time
// clients. The server never stores them; the client holds the key and
// sends it back in X-Session-ID.
func registerSessionRoutes(g *echo.Group) {
	g.GET("/session", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"sessionid": uuid.NewString()})
	})
}
