package repository

import (
	"context"
	"errors"
	"time"

	"StorefrontAPI/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CartRepository struct {
	DB *pgxpool.Pool
}

func NewCartRepository(db *pgxpool.Pool) *CartRepository {
	return &CartRepository{DB: db}
}

// Upsert inserts a cart row or, when the (session, product, color, size)
// tuple already exists, merges by adding the requested quantity. The
// uniqueness constraint lives in the database so two near-simultaneous
// adds from separate processes cannot create duplicate rows.
func (r *CartRepository) Upsert(ctx context.Context, item *model.CartItem) error {
	query := `
		INSERT INTO cartitems (sessionid, productid, quantity, color, size, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (sessionid, productid, color, size)
		DO UPDATE SET quantity = cartitems.quantity + EXCLUDED.quantity, updated_at = EXCLUDED.updated_at
		RETURNING cartitemid
	`
	return r.DB.QueryRow(ctx, query,
		item.SessionID, item.ProductID, item.Quantity, item.Color, item.Size, time.Now(),
	).Scan(&item.CartItemID)
}

func (r *CartRepository) ItemByID(ctx context.Context, id int64) (*model.CartItem, error) {
	var it model.CartItem
	query := `SELECT cartitemid, sessionid, productid, quantity, color, size, created_at, updated_at
		FROM cartitems WHERE cartitemid=$1`
	if err := r.DB.QueryRow(ctx, query, id).Scan(
		&it.CartItemID, &it.SessionID, &it.ProductID, &it.Quantity,
		&it.Color, &it.Size, &it.CreatedAt, &it.UpdatedAt,
	); err != nil {
		if IsUnavailable(err) {
			return nil, err
		}
		return nil, errors.New("cart item not found")
	}
	return &it, nil
}

// ItemsBySession returns the cart lines joined with their products,
// scoped to the given session key. The session filter is part of the
// query, never applied afterwards in application code.
func (r *CartRepository) ItemsBySession(ctx context.Context, sessionID string) ([]model.CartItemWithProduct, error) {
	query := `
		SELECT ci.cartitemid, ci.sessionid, ci.productid, ci.quantity, ci.color, ci.size,
		       ci.created_at, ci.updated_at,
		       p.productid, p.name, p.description, p.price, p.compareprice, p.imageurl,
		       p.imageurls, p.category, p.status, p.rating, p.reviewcount, p.created_at, p.updated_at
		FROM cartitems ci
		JOIN products p ON p.productid = ci.productid
		WHERE ci.sessionid=$1
		ORDER BY ci.cartitemid
	`
	rows, err := r.DB.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.CartItemWithProduct{}
	for rows.Next() {
		var it model.CartItemWithProduct
		if err := rows.Scan(
			&it.CartItemID, &it.SessionID, &it.ProductID, &it.Quantity, &it.Color, &it.Size,
			&it.CreatedAt, &it.UpdatedAt,
			&it.Product.ProductID, &it.Product.Name, &it.Product.Description, &it.Product.Price,
			&it.Product.ComparePrice, &it.Product.ImageURL, &it.Product.ImageURLs,
			&it.Product.Category, &it.Product.Status, &it.Product.Rating, &it.Product.ReviewCount,
			&it.Product.CreatedAt, &it.Product.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *CartRepository) SetQuantity(ctx context.Context, id int64, qty int) error {
	query := `UPDATE cartitems SET quantity=$1, updated_at=$2 WHERE cartitemid=$3`
	tag, err := r.DB.Exec(ctx, query, qty, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("cart item not found")
	}
	return nil
}

func (r *CartRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM cartitems WHERE cartitemid=$1`
	tag, err := r.DB.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("cart item not found")
	}
	return nil
}

// ClearSession deletes every row for the session key. Succeeds even
// when the cart is already empty.
func (r *CartRepository) ClearSession(ctx context.Context, sessionID string) error {
	query := `DELETE FROM cartitems WHERE sessionid=$1`
	_, err := r.DB.Exec(ctx, query, sessionID)
	return err
}
