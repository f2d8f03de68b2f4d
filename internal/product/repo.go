// Package product provides the repository interface and PostgreSQL implementation for the catalog.
package product

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("product not found")

type Repository interface {
	List(ctx context.Context, q Query) ([]Product, int, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	Featured(ctx context.Context, limit int) ([]Product, error)
	NewArrivals(ctx context.Context, limit int) ([]Product, error)
	Related(ctx context.Context, id string, limit int) ([]Product, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.ShortDescription,
		&p.Price, &p.ComparePrice, &p.SKU, &p.Quantity,
		&p.Images, &p.FeaturedImage, &p.Category.ID,
		&p.Category.Name, &p.Category.Slug, &p.Rating, &p.ReviewCount,
		&p.IsActive, &p.IsFeatured, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PGRepo) collect(ctx context.Context, sql string, args ...interface{}) ([]Product, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *PGRepo) List(ctx context.Context, q Query) ([]Product, int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	listSQL, countSQL, args := buildListQuery(q)

	var total int
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	items, err := r.collect(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRow(ctx, selectColumns+`
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.id = $1
	`, id))
	if err != nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (r *PGRepo) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRow(ctx, selectColumns+`
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.slug = $1 AND p.is_active = TRUE
	`, slug))
	if err != nil {
		return nil, ErrNotFound
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, name, COALESCE(sku,''), price::text, quantity, options
		FROM product_variants WHERE product_id = $1
	`, p.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var v Variant
		if err := rows.Scan(&v.ID, &v.Name, &v.SKU, &v.Price, &v.Quantity, &v.Options); err != nil {
			return nil, err
		}
		p.Variants = append(p.Variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	attrs, err := r.db.Query(ctx, `
		SELECT name, value FROM product_attributes WHERE product_id = $1
	`, p.ID)
	if err != nil {
		return nil, err
	}
	defer attrs.Close()
	for attrs.Next() {
		var a Attribute
		if err := attrs.Scan(&a.Name, &a.Value); err != nil {
			return nil, err
		}
		p.Attributes = append(p.Attributes, a)
	}
	return p, attrs.Err()
}

func (r *PGRepo) Featured(ctx context.Context, limit int) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 {
		limit = 8
	}
	return r.collect(ctx, selectColumns+`
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.is_active = TRUE AND p.is_featured = TRUE
		ORDER BY p.created_at DESC
		LIMIT $1
	`, limit)
}

func (r *PGRepo) NewArrivals(ctx context.Context, limit int) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 {
		limit = 4
	}
	return r.collect(ctx, selectColumns+`
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.is_active = TRUE
		ORDER BY p.created_at DESC
		LIMIT $1
	`, limit)
}

// Related returns active products sharing the category, the product itself
// excluded.
func (r *PGRepo) Related(ctx context.Context, id string, limit int) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var categoryID *string
	if err := r.db.QueryRow(ctx,
		`SELECT category_id FROM products WHERE id=$1`, id).Scan(&categoryID); err != nil {
		return nil, ErrNotFound
	}
	if categoryID == nil {
		return []Product{}, nil
	}
	if limit <= 0 {
		limit = 4
	}
	return r.collect(ctx, selectColumns+`
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.category_id = $1 AND p.id != $2 AND p.is_active = TRUE
		ORDER BY p.created_at DESC
		LIMIT $3
	`, *categoryID, id, limit)
}
