package repository

import (
	"context"
	"errors"

	"StorefrontAPI/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CategoryRepository struct {
	DB *pgxpool.Pool
}

func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	query := `SELECT categoryid, name, slug, description, imageurl FROM categories ORDER BY categoryid`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.CategoryID, &c.Name, &c.Slug, &c.Description, &c.ImageURL); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var c model.Category
	query := `SELECT categoryid, name, slug, description, imageurl FROM categories WHERE slug=$1`
	if err := r.DB.QueryRow(ctx, query, slug).Scan(&c.CategoryID, &c.Name, &c.Slug, &c.Description, &c.ImageURL); err != nil {
		return nil, errors.New("category not found")
	}
	return &c, nil
}
