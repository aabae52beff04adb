package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock status values for Product.Status
const (
	StockInStock    = "in_stock"
	StockLowStock   = "low_stock"
	StockOutOfStock = "out_of_stock"
)

type Product struct {
	ProductID    int64            `json:"productid"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Price        decimal.Decimal  `json:"price"`
	ComparePrice *decimal.Decimal `json:"compareprice,omitempty"`
	ImageURL     string           `json:"imageurl"`
	ImageURLs    []string         `json:"imageurls,omitempty"`
	Category     string           `json:"category"`
	Status       string           `json:"status"`
	Rating       float64          `json:"rating"`      // 0-5, half steps
	ReviewCount  int              `json:"reviewcount"`
	CreatedAt    *time.Time       `json:"created_at,omitempty"`
	UpdatedAt    *time.Time       `json:"updated_at,omitempty"`
}

type Category struct {
	CategoryID  int64  `json:"categoryid"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ImageURL    string `json:"imageurl"`
}
