package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound       = errors.New("order not found")
	ErrNotCancellable = errors.New("order cannot be cancelled")
	ErrCouponSpent    = errors.New("coupon has reached maximum uses")
)

// InsufficientStockError names the product that could not be reserved.
type InsufficientStockError struct {
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.ProductName)
}

type Repository interface {
	// Create persists the order and its items, decrements stock and redeems
	// the coupon (couponID may be empty) in a single transaction.
	Create(ctx context.Context, o *Order, items []Item, couponID string) error
	GetByID(ctx context.Context, id, userID string) (*Order, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Order, int, error)
	Cancel(ctx context.Context, id, userID string) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

// Create runs the whole checkout write set atomically. Stock decrements are
// compare-and-swap updates: a concurrent checkout that raced us past the
// read-side check fails here with zero rows affected, and the transaction
// rolls back. Same for the coupon uses counter.
func (r *PGRepo) Create(ctx context.Context, o *Order, items []Item, couponID string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, it := range items {
		tag, err := tx.Exec(ctx, `
			UPDATE products
			SET quantity = quantity - $2, sold_count = sold_count + $2, updated_at = NOW()
			WHERE id = $1 AND quantity >= $2
		`, it.ProductID, it.Quantity)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return &InsufficientStockError{ProductName: it.Name}
		}
	}

	if couponID != "" {
		tag, err := tx.Exec(ctx, `
			UPDATE coupons
			SET uses = uses + 1
			WHERE id = $1 AND (max_uses IS NULL OR uses < max_uses)
		`, couponID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrCouponSpent
		}
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO orders (id, order_number, user_id, status, payment_status, shipping_status,
		                    subtotal, tax, shipping, discount, total,
		                    shipping_address, billing_address, coupon_code, notes, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,
		        $7::numeric,$8::numeric,$9::numeric,$10::numeric,$11::numeric,
		        $12,$13,NULLIF($14,''),NULLIF($15,''),NOW(),NOW())
	`, o.ID, o.OrderNumber, o.UserID, o.Status, o.PaymentStatus, o.ShippingStatus,
		o.Subtotal, o.Tax, o.Shipping, o.Discount, o.Total,
		o.ShippingAddress, o.BillingAddress, o.CouponCode, o.Notes); err != nil {
		return err
	}

	for _, it := range items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, name, price, quantity)
			VALUES ($1,$2,$3,$4,$5::numeric,$6)
		`, it.ID, o.ID, it.ProductID, it.Name, it.Price, it.Quantity); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

const orderColumns = `
	SELECT o.id, o.order_number, o.user_id, o.status, o.payment_status, o.shipping_status,
	       o.subtotal::text, o.tax::text, o.shipping::text, o.discount::text, o.total::text,
	       o.shipping_address, o.billing_address, COALESCE(o.coupon_code,''),
	       COALESCE(o.tracking_number,''), COALESCE(o.notes,''), o.created_at, o.updated_at
	FROM orders o`

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.Status, &o.PaymentStatus, &o.ShippingStatus,
		&o.Subtotal, &o.Tax, &o.Shipping, &o.Discount, &o.Total,
		&o.ShippingAddress, &o.BillingAddress, &o.CouponCode,
		&o.TrackingNumber, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PGRepo) loadItems(ctx context.Context, o *Order) error {
	rows, err := r.db.Query(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.name, COALESCE(p.slug,''),
		       oi.price::text, oi.quantity, COALESCE(p.featured_image,'')
		FROM order_items oi
		LEFT JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id = $1
	`, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Name, &it.Slug,
			&it.Price, &it.Quantity, &it.Image); err != nil {
			return err
		}
		o.Items = append(o.Items, it)
	}
	return rows.Err()
}

func (r *PGRepo) GetByID(ctx context.Context, id, userID string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	o, err := scanOrder(r.db.QueryRow(ctx, orderColumns+`
		WHERE o.id = $1 AND o.user_id = $2
	`, id, userID))
	if err != nil {
		return nil, ErrNotFound
	}
	if err := r.loadItems(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Order, int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 100 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE user_id=$1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, orderColumns+`
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range out {
		if err := r.loadItems(ctx, &out[i]); err != nil {
			return nil, 0, err
		}
	}
	return out, total, nil
}

// Cancel flips a pending order to cancelled and restores the reserved stock,
// atomically. The status check and the update happen in one statement so two
// concurrent cancels cannot both restore stock.
func (r *PGRepo) Cancel(ctx context.Context, id, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	if err := tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM orders WHERE id=$1 AND user_id=$2)
	`, id, userID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}

	tag, err := tx.Exec(ctx, `
		UPDATE orders SET status=$3, updated_at=NOW()
		WHERE id=$1 AND user_id=$2 AND status=$4
	`, id, userID, StatusCancelled, StatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotCancellable
	}

	if _, err := tx.Exec(ctx, `
		UPDATE products p
		SET quantity = p.quantity + oi.quantity,
		    sold_count = GREATEST(p.sold_count - oi.quantity, 0),
		    updated_at = NOW()
		FROM order_items oi
		WHERE oi.order_id = $1 AND oi.product_id = p.id
	`, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
