package main

import (
	"net/http"
	"strconv"

	"StorefrontAPI/internal/services"

	"github.com/labstack/echo/v4"
)

func registerProductRoutes(g *echo.Group, ps *services.ProductService) {
	p := g.Group("/products")

	// LIST products
	p.GET("", func(c echo.Context) error {
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		products, err := ps.List(c.Request().Context(), limit)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, products)
	})

	// GET products in a category (by slug)
	p.GET("/category/:slug", func(c echo.Context) error {
		products, err := ps.ListByCategorySlug(c.Request().Context(), c.Param("slug"))
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, products)
	})

	// GET one product
	p.GET("/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		}
		product, err := ps.Get(c.Request().Context(), id)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, product)
	})
}

func registerCategoryRoutes(g *echo.Group, ps *services.ProductService) {
	g.GET("/categories", func(c echo.Context) error {
		categories, err := ps.Categories(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, categories)
	})
}
