package repository

import (
	"context"
	"errors"
	"time"

	"StorefrontAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository struct {
	DB *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{DB: db}
}

// CreateWithItems persists the order header and all its items in a
// single transaction. No reader can ever observe an order without its
// items or items without their order. Returns ErrOrderNumberTaken when
// the generated order number collides so the caller can retry with a
// fresh one.
func (r *OrderRepository) CreateWithItems(ctx context.Context, o *model.Order, items []model.OrderItem) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	query := `
		INSERT INTO orders
			(ordernumber, userid, status, subtotal, shipping, taxes, total,
			 paymentmethod, shippingaddress, shippingcity, shippingpostalcode,
			 shippingprovince, shippingcountry, customername, customeremail,
			 customerphone, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$17)
		RETURNING orderid
	`
	if err := tx.QueryRow(ctx, query,
		o.OrderNumber, o.UserID, o.Status, o.Subtotal, o.Shipping, o.Taxes, o.Total,
		o.PaymentMethod, o.ShippingAddress, o.ShippingCity, o.ShippingPostalCode,
		o.ShippingProvince, o.ShippingCountry, o.CustomerName, o.CustomerEmail,
		o.CustomerPhone, now,
	).Scan(&o.OrderID); err != nil {
		if isUniqueViolation(err, "orders_ordernumber_key") {
			return ErrOrderNumberTaken
		}
		return err
	}
	o.CreatedAt = &now
	o.UpdatedAt = &now

	itemQuery := `
		INSERT INTO orderitems
			(orderid, productid, productname, productimageurl, price, quantity, color, size, subtotal)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING orderitemid
	`
	for i := range items {
		items[i].OrderID = o.OrderID
		if err := tx.QueryRow(ctx, itemQuery,
			items[i].OrderID, items[i].ProductID, items[i].ProductName,
			items[i].ProductImageURL, items[i].Price, items[i].Quantity,
			items[i].Color, items[i].Size, items[i].Subtotal,
		).Scan(&items[i].OrderItemID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

const orderColumns = `orderid, ordernumber, userid, status, subtotal, shipping, taxes, total,
	paymentmethod, paymentproof, shippingaddress, shippingcity, shippingpostalcode,
	shippingprovince, shippingcountry, customername, customeremail, customerphone,
	created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	if err := row.Scan(
		&o.OrderID, &o.OrderNumber, &o.UserID, &o.Status,
		&o.Subtotal, &o.Shipping, &o.Taxes, &o.Total,
		&o.PaymentMethod, &o.PaymentProof,
		&o.ShippingAddress, &o.ShippingCity, &o.ShippingPostalCode,
		&o.ShippingProvince, &o.ShippingCountry,
		&o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
		&o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE orderid=$1`
	o, err := scanOrder(r.DB.QueryRow(ctx, query, id))
	if err != nil {
		if IsUnavailable(err) {
			return nil, err
		}
		return nil, errors.New("order not found")
	}
	return o, nil
}

func (r *OrderRepository) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE ordernumber=$1`
	o, err := scanOrder(r.DB.QueryRow(ctx, query, number))
	if err != nil {
		if IsUnavailable(err) {
			return nil, err
		}
		return nil, errors.New("order not found")
	}
	return o, nil
}

func (r *OrderRepository) ListByEmail(ctx context.Context, email string) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE customeremail=$1 ORDER BY orderid DESC`
	return r.listOrders(ctx, query, email)
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE userid=$1 ORDER BY orderid DESC`
	return r.listOrders(ctx, query, userID)
}

func (r *OrderRepository) listOrders(ctx context.Context, query string, arg any) ([]model.Order, error) {
	rows, err := r.DB.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *OrderRepository) ItemsByOrder(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	query := `
		SELECT orderitemid, orderid, productid, productname, productimageurl,
		       price, quantity, color, size, subtotal
		FROM orderitems WHERE orderid=$1 ORDER BY orderitemid
	`
	rows, err := r.DB.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(
			&it.OrderItemID, &it.OrderID, &it.ProductID, &it.ProductName,
			&it.ProductImageURL, &it.Price, &it.Quantity, &it.Color, &it.Size, &it.Subtotal,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *OrderRepository) SetStatus(ctx context.Context, orderID int64, status string) error {
	query := `UPDATE orders SET status=$1, updated_at=$2 WHERE orderid=$3`
	tag, err := r.DB.Exec(ctx, query, status, time.Now(), orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("order not found")
	}
	return nil
}

// SetStatusTx updates the status inside the caller's transaction.
func (r *OrderRepository) SetStatusTx(ctx context.Context, tx pgx.Tx, orderID int64, status string) error {
	query := `UPDATE orders SET status=$1, updated_at=$2 WHERE orderid=$3`
	_, err := tx.Exec(ctx, query, status, time.Now(), orderID)
	return err
}

func (r *OrderRepository) SetPaymentProof(ctx context.Context, orderID int64, proof string) error {
	query := `UPDATE orders SET paymentproof=$1, updated_at=$2 WHERE orderid=$3`
	tag, err := r.DB.Exec(ctx, query, proof, time.Now(), orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("order not found")
	}
	return nil
}
