package cart

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("cart not found")

type Repository interface {
	Get(ctx context.Context, userID string) (*Cart, error)
	Upsert(ctx context.Context, c *Cart) error
	Clear(ctx context.Context, userID string) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Get(ctx context.Context, userID string) (*Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var c Cart
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, items, COALESCE(coupon_code,''), discount::text
		FROM carts WHERE user_id=$1
	`, userID).Scan(&c.ID, &c.UserID, &c.Items, &c.CouponCode, &c.Discount)
	if err != nil {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r *PGRepo) Upsert(ctx context.Context, c *Cart) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO carts (id, user_id, items, coupon_code, discount, created_at, updated_at)
		VALUES ($1,$2,$3,NULLIF($4,''),$5::numeric,NOW(),NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET items = EXCLUDED.items,
		    coupon_code = EXCLUDED.coupon_code,
		    discount = EXCLUDED.discount,
		    updated_at = NOW()
	`, c.ID, c.UserID, c.Items, c.CouponCode, c.Discount)
	return err
}

func (r *PGRepo) Clear(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `DELETE FROM carts WHERE user_id=$1`, userID)
	return err
}
