package product

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildListQuery_Defaults(t *testing.T) {
	listSQL, countSQL, args := buildListQuery(Query{})

	assert.Empty(t, args)
	assert.Contains(t, listSQL, "p.is_active = TRUE")
	assert.Contains(t, listSQL, "ORDER BY p.is_featured DESC, p.created_at DESC")
	assert.Contains(t, listSQL, "LIMIT 12 OFFSET 0")
	assert.True(t, strings.HasPrefix(countSQL, "SELECT COUNT(*)"))
}

func TestBuildListQuery_Filters(t *testing.T) {
	listSQL, countSQL, args := buildListQuery(Query{
		CategorySlug: "shoes",
		Search:       "run",
		MinPrice:     "10",
		MaxPrice:     "99.99",
		Featured:     true,
		Sort:         "price-low",
		Limit:        24,
		Offset:       24,
	})

	assert.Equal(t, []interface{}{"shoes", "%run%", "10", "99.99"}, args)
	assert.Contains(t, listSQL, "c.slug = $1")
	assert.Contains(t, listSQL, "ILIKE $2")
	assert.Contains(t, listSQL, "p.price >= $3::numeric")
	assert.Contains(t, listSQL, "p.price <= $4::numeric")
	assert.Contains(t, listSQL, "p.is_featured = TRUE")
	assert.Contains(t, listSQL, "ORDER BY p.price ASC")
	assert.Contains(t, listSQL, "LIMIT 24 OFFSET 24")
	// count shares the predicates but not the ordering
	assert.Contains(t, countSQL, "c.slug = $1")
	assert.NotContains(t, countSQL, "ORDER BY")
}

func TestBuildListQuery_SortAllowList(t *testing.T) {
	// anything outside the allow-list falls back to the featured ordering
	listSQL, _, _ := buildListQuery(Query{Sort: "price; DROP TABLE products"})
	assert.Contains(t, listSQL, "ORDER BY p.is_featured DESC, p.created_at DESC")
	assert.NotContains(t, listSQL, "DROP TABLE")

	for key, clause := range sortOptions {
		listSQL, _, _ := buildListQuery(Query{Sort: key})
		assert.Contains(t, listSQL, "ORDER BY "+clause)
	}
}

func TestBuildListQuery_LimitClamp(t *testing.T) {
	listSQL, _, _ := buildListQuery(Query{Limit: 5000, Offset: -3})
	assert.Contains(t, listSQL, "LIMIT 12 OFFSET 0")
}
