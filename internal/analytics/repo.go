// Package analytics serves the admin dashboard aggregates.
package analytics

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ChartPoint struct {
	Date    string `json:"date"`
	Orders  int    `json:"orders"`
	Revenue string `json:"revenue"`
}

type Dashboard struct {
	Revenue   string       `json:"revenue"`
	Orders    int          `json:"orders"`
	Customers int          `json:"customers"`
	Products  int          `json:"products"`
	ChartData []ChartPoint `json:"chartData"`
}

type TopProduct struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Image        string `json:"image,omitempty"`
	Price        string `json:"price"`
	TotalSold    int    `json:"totalSold"`
	TotalRevenue string `json:"totalRevenue"`
}

type TopCustomer struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	TotalOrders int    `json:"totalOrders"`
	TotalSpent  string `json:"totalSpent"`
}

type Repository interface {
	Dashboard(ctx context.Context, since time.Time) (*Dashboard, error)
	TopProducts(ctx context.Context, limit int) ([]TopProduct, error)
	TopCustomers(ctx context.Context, limit int) ([]TopCustomer, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

// PeriodStart maps a dashboard period name to its window start. Unknown
// periods fall back to a month.
func PeriodStart(period string, now time.Time) time.Time {
	switch period {
	case "day":
		return now.AddDate(0, 0, -1)
	case "week":
		return now.AddDate(0, 0, -7)
	case "year":
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, -1, 0)
	}
}

func (r *PGRepo) Dashboard(ctx context.Context, since time.Time) (*Dashboard, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var d Dashboard
	if err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(total), 0)::text, COUNT(*)
		FROM orders WHERE created_at >= $1 AND status != 'cancelled'
	`, since).Scan(&d.Revenue, &d.Orders); err != nil {
		return nil, err
	}
	if err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM users WHERE role='customer' AND created_at >= $1
	`, since).Scan(&d.Customers); err != nil {
		return nil, err
	}
	if err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM products WHERE is_active = TRUE
	`).Scan(&d.Products); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT created_at::date::text, COUNT(*), COALESCE(SUM(total),0)::text
		FROM orders
		WHERE created_at >= $1 AND status != 'cancelled'
		GROUP BY created_at::date
		ORDER BY created_at::date
	`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var p ChartPoint
		if err := rows.Scan(&p.Date, &p.Orders, &p.Revenue); err != nil {
			return nil, err
		}
		d.ChartData = append(d.ChartData, p)
	}
	return &d, rows.Err()
}

func (r *PGRepo) TopProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if limit <= 0 || limit > 100 {
		limit = 10
	}
	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.name, p.slug, COALESCE(p.featured_image,''), p.price::text,
		       SUM(oi.quantity), SUM(oi.price * oi.quantity)::text
		FROM products p
		JOIN order_items oi ON p.id = oi.product_id
		JOIN orders o ON oi.order_id = o.id
		WHERE o.status != 'cancelled'
		GROUP BY p.id
		ORDER BY SUM(oi.quantity) DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TopProduct
	for rows.Next() {
		var tp TopProduct
		if err := rows.Scan(&tp.ID, &tp.Name, &tp.Slug, &tp.Image, &tp.Price,
			&tp.TotalSold, &tp.TotalRevenue); err != nil {
			return nil, err
		}
		out = append(out, tp)
	}
	return out, rows.Err()
}

func (r *PGRepo) TopCustomers(ctx context.Context, limit int) ([]TopCustomer, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if limit <= 0 || limit > 100 {
		limit = 10
	}
	rows, err := r.db.Query(ctx, `
		SELECT u.id, u.first_name || ' ' || u.last_name, u.email,
		       COUNT(o.id), SUM(o.total)::text
		FROM users u
		JOIN orders o ON u.id = o.user_id
		WHERE o.status != 'cancelled'
		GROUP BY u.id
		ORDER BY SUM(o.total) DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TopCustomer
	for rows.Next() {
		var tc TopCustomer
		if err := rows.Scan(&tc.ID, &tc.Name, &tc.Email, &tc.TotalOrders, &tc.TotalSpent); err != nil {
			return nil, err
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}
