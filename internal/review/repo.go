package review

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("review not found")

type Repository interface {
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]Review, int, error)
	ListByUser(ctx context.Context, userID string) ([]MyReview, error)
	// Create inserts the review and refreshes the product's rating rollup.
	// verified marks a reviewer with a delivered order containing the product.
	Create(ctx context.Context, rv *Review) error
	HasDeliveredOrder(ctx context.Context, userID, productID string) (bool, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]Review, int, error) {
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
		`SELECT COUNT(*) FROM reviews WHERE product_id=$1`, productID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT r.id, r.product_id, r.user_id, u.first_name || ' ' || u.last_name,
		       COALESCE(u.avatar,''), r.rating, r.title, r.comment, r.images,
		       r.is_verified, r.created_at
		FROM reviews r
		JOIN users u ON r.user_id = u.id
		WHERE r.product_id = $1
		ORDER BY r.created_at DESC
		LIMIT $2 OFFSET $3
	`, productID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Review
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.UserName,
			&rv.UserAvatar, &rv.Rating, &rv.Title, &rv.Comment, &rv.Images,
			&rv.IsVerified, &rv.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, rv)
	}
	return out, total, rows.Err()
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]MyReview, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT r.id, r.product_id, p.name, p.slug, COALESCE(p.featured_image,''),
		       r.rating, r.title, r.comment, r.created_at
		FROM reviews r
		JOIN products p ON r.product_id = p.id
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MyReview
	for rows.Next() {
		var rv MyReview
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.ProductName, &rv.ProductSlug,
			&rv.ProductImage, &rv.Rating, &rv.Title, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *PGRepo) HasDeliveredOrder(ctx context.Context, userID, productID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var ok bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM orders o
			JOIN order_items oi ON o.id = oi.order_id
			WHERE o.user_id = $1 AND oi.product_id = $2 AND o.status = 'delivered'
		)
	`, userID, productID).Scan(&ok)
	return ok, err
}

func (r *PGRepo) Create(ctx context.Context, rv *Review) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		INSERT INTO reviews (id, product_id, user_id, rating, title, comment, images, is_verified, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW())
	`, rv.ID, rv.ProductID, rv.UserID, rv.Rating, rv.Title, rv.Comment, rv.Images, rv.IsVerified); err != nil {
		return err
	}

	// keep the denormalized rating in step with the review rows
	if _, err := tx.Exec(ctx, `
		UPDATE products p
		SET rating = sub.avg_rating, review_count = sub.cnt
		FROM (
			SELECT AVG(rating) AS avg_rating, COUNT(*) AS cnt
			FROM reviews WHERE product_id = $1
		) sub
		WHERE p.id = $1
	`, rv.ProductID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
