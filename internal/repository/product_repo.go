package repository

import (
	"context"
	"errors"

	"StorefrontAPI/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	DB *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{DB: db}
}

const productColumns = `productid, name, description, price, compareprice, imageurl, imageurls, category, status, rating, reviewcount, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*model.Product, error) {
	var p model.Product
	if err := row.Scan(
		&p.ProductID, &p.Name, &p.Description, &p.Price, &p.ComparePrice,
		&p.ImageURL, &p.ImageURLs, &p.Category, &p.Status,
		&p.Rating, &p.ReviewCount, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE productid=$1`
	p, err := scanProduct(r.DB.QueryRow(ctx, query, id))
	if err != nil {
		if IsUnavailable(err) {
			return nil, err
		}
		return nil, errors.New("product not found")
	}
	return p, nil
}

// List returns the catalog ordered by id. limit <= 0 means the whole
// catalog; the chatbot snapshot and keyword matching need every
// product, not the first page.
func (r *ProductRepository) List(ctx context.Context, limit int) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY productid`
	args := []any{}
	if limit > 0 {
		if limit > 200 {
			limit = 200
		}
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *p)
	}
	return list, rows.Err()
}

func (r *ProductRepository) ListByCategory(ctx context.Context, category string) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE LOWER(category)=LOWER($1) ORDER BY productid`
	rows, err := r.DB.Query(ctx, query, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *p)
	}
	return list, rows.Err()
}
