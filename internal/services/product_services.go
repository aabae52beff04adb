package services

import (
	"context"

	"StorefrontAPI/internal/model"
	"StorefrontAPI/internal/repository"
)

// CatalogStore is the full read surface of the product catalog.
type CatalogStore interface {
	ProductStore
	ListByCategory(ctx context.Context, category string) ([]model.Product, error)
}

// CategoryStore is the read surface for catalog categories.
type CategoryStore interface {
	List(ctx context.Context) ([]model.Category, error)
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)
}

// ProductService is the catalog read path. The catalog is an external
// collaborator from the cart/order core's perspective: read-only here.
type ProductService struct {
	Catalog    CatalogStore
	CategoryDB CategoryStore
}

func NewProductService(catalog CatalogStore, categories CategoryStore) *ProductService {
	return &ProductService{Catalog: catalog, CategoryDB: categories}
}

func (s *ProductService) Get(ctx context.Context, id int64) (*model.Product, error) {
	p, err := s.Catalog.GetByID(ctx, id)
	if err != nil {
		if repository.IsUnavailable(err) {
			return nil, ErrStorageUnavailable
		}
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *ProductService) List(ctx context.Context, limit int) ([]model.Product, error) {
	return s.Catalog.List(ctx, limit)
}

func (s *ProductService) Categories(ctx context.Context) ([]model.Category, error) {
	return s.CategoryDB.List(ctx)
}

func (s *ProductService) ListByCategorySlug(ctx context.Context, slug string) ([]model.Product, error) {
	cat, err := s.CategoryDB.GetBySlug(ctx, slug)
	if err != nil {
		return nil, ErrCategoryNotFound
	}
	return s.Catalog.ListByCategory(ctx, cat.Name)
}
