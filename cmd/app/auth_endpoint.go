package main

import (
	"net/http"

	"StorefrontAPI/internal/middleware"
	"StorefrontAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func registerAuthRoutes(g *echo.Group, as *services.AuthService) {
	p := g.Group("/auth")

	p.POST("/register", func(c echo.Context) error {
		req := new(credentialsRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		authID, err := as.Register(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, map[string]interface{}{"authid": authID})
	})

	p.POST("/login", func(c echo.Context) error {
		req := new(credentialsRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		user, err := as.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
		}
		token, err := middleware.GenerateToken(user.AuthID, user.Email, user.Role, 24)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not issue token"})
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"token": token,
			"user":  user,
		})
	})
}
