package category

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("category not found")

type Repository interface {
	List(ctx context.Context) ([]Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	Tree(ctx context.Context) ([]*Node, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) List(ctx context.Context) ([]Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.name, c.slug, COALESCE(c.description,''), COALESCE(c.image,''),
		       COALESCE(c.parent_id::text,''), COUNT(p.id)
		FROM categories c
		LEFT JOIN products p ON c.id = p.category_id AND p.is_active = TRUE
		GROUP BY c.id
		ORDER BY c.name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Image,
			&c.ParentID, &c.ProductCount); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var c Category
	err := r.db.QueryRow(ctx, `
		SELECT c.id, c.name, c.slug, COALESCE(c.description,''), COALESCE(c.image,''),
		       COALESCE(c.parent_id::text,''), COUNT(p.id)
		FROM categories c
		LEFT JOIN products p ON c.id = p.category_id AND p.is_active = TRUE
		WHERE c.slug = $1
		GROUP BY c.id
	`, slug).Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Image,
		&c.ParentID, &c.ProductCount)
	if err != nil {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r *PGRepo) Tree(ctx context.Context) ([]*Node, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, name, slug, COALESCE(description,''), COALESCE(image,''),
		       COALESCE(parent_id::text,'')
		FROM categories
		ORDER BY parent_id NULLS FIRST, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flat []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Image, &c.ParentID); err != nil {
			return nil, err
		}
		flat = append(flat, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return BuildTree(flat), nil
}
