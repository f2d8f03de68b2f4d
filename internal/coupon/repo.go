package coupon

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	GetByCode(ctx context.Context, code string) (*Coupon, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) GetByCode(ctx context.Context, code string) (*Coupon, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var c Coupon
	var maxUses *int
	err := r.db.QueryRow(ctx, `
		SELECT id, code, type, value, COALESCE(min_order_amount, 0),
		       max_uses, uses, start_date, end_date, is_active
		FROM coupons WHERE code = $1
	`, code).Scan(&c.ID, &c.Code, &c.Type, &c.Value, &c.MinOrderAmount,
		&maxUses, &c.Uses, &c.StartDate, &c.EndDate, &c.IsActive)
	if err != nil {
		return nil, ErrNotFound
	}
	if maxUses != nil {
		c.MaxUses = *maxUses
	}
	return &c, nil
}
