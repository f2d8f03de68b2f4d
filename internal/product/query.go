package product

import (
	"fmt"
	"strings"
)

// Query carries the supported listing filters. Zero values mean "not set".
type Query struct {
	CategorySlug string
	Search       string
	MinPrice     string
	MaxPrice     string
	Featured     bool
	Sort         string
	Limit        int
	Offset       int
}

// sortOptions is the allow-list of ORDER BY clauses. Client input selects a
// key; it is never interpolated into SQL.
var sortOptions = map[string]string{
	"featured":    "p.is_featured DESC, p.created_at DESC",
	"newest":      "p.created_at DESC",
	"price-low":   "p.price ASC",
	"price-high":  "p.price DESC",
	"rating":      "p.rating DESC",
	"bestselling": "p.sold_count DESC",
}

const selectColumns = `
	SELECT p.id, p.name, p.slug, COALESCE(p.description,''), COALESCE(p.short_description,''),
	       p.price::text, COALESCE(p.compare_price::text,''), COALESCE(p.sku,''), p.quantity,
	       p.images, COALESCE(p.featured_image,''), COALESCE(p.category_id::text,''),
	       COALESCE(c.name,''), COALESCE(c.slug,''), p.rating::text, p.review_count,
	       p.is_active, p.is_featured, p.created_at, p.updated_at`

// buildListQuery assembles the filtered, sorted, paginated listing statement
// and a matching COUNT(*) statement over the same predicates.
func buildListQuery(q Query) (listSQL, countSQL string, args []interface{}) {
	var where strings.Builder
	where.WriteString(`
	FROM products p
	LEFT JOIN categories c ON p.category_id = c.id
	WHERE p.is_active = TRUE`)

	if q.CategorySlug != "" {
		args = append(args, q.CategorySlug)
		fmt.Fprintf(&where, " AND c.slug = $%d", len(args))
	}
	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		fmt.Fprintf(&where, " AND (p.name ILIKE $%d OR p.description ILIKE $%d)", len(args), len(args))
	}
	if q.MinPrice != "" {
		args = append(args, q.MinPrice)
		fmt.Fprintf(&where, " AND p.price >= $%d::numeric", len(args))
	}
	if q.MaxPrice != "" {
		args = append(args, q.MaxPrice)
		fmt.Fprintf(&where, " AND p.price <= $%d::numeric", len(args))
	}
	if q.Featured {
		where.WriteString(" AND p.is_featured = TRUE")
	}

	countSQL = "SELECT COUNT(*)" + where.String()

	order, ok := sortOptions[q.Sort]
	if !ok {
		order = sortOptions["featured"]
	}

	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 12
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	listSQL = selectColumns + where.String() +
		fmt.Sprintf(" ORDER BY %s LIMIT %d OFFSET %d", order, limit, offset)
	return listSQL, countSQL, args
}
