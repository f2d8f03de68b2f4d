package main

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Legend1hhh/storefront-api/internal/product"
	"github.com/Legend1hhh/storefront-api/internal/review"
)

func TestCreateReview(t *testing.T) {
	env := newTestEnv()
	userID, bearer := env.token("customer")
	env.products.add(product.Product{ID: "p-1", Name: "Lamp", Slug: "lamp", Price: "25.00", IsActive: true})

	body := map[string]interface{}{
		"productId": "p-1", "rating": 5, "title": "Great", "comment": "Bright and sturdy.",
	}

	t.Run("unverified buyer", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/reviews", bearer, body)
		require.Equal(t, 201, w.Code, w.Body.String())
		var rv review.Review
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &rv))
		assert.False(t, rv.IsVerified)
		assert.Equal(t, userID, rv.UserID)
	})

	t.Run("verified after delivery", func(t *testing.T) {
		env.reviews.mu.Lock()
		env.reviews.delivered[userID+"/p-1"] = true
		env.reviews.mu.Unlock()

		w := env.do(t, http.MethodPost, "/reviews", bearer, body)
		require.Equal(t, 201, w.Code)
		var rv review.Review
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &rv))
		assert.True(t, rv.IsVerified)
	})

	t.Run("rating out of range", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/reviews", bearer, map[string]interface{}{
			"productId": "p-1", "rating": 6, "title": "x", "comment": "y",
		})
		assert.Equal(t, 400, w.Code)
	})

	t.Run("unknown product", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/reviews", bearer, map[string]interface{}{
			"productId": "nope", "rating": 4, "title": "x", "comment": "y",
		})
		assert.Equal(t, 404, w.Code)
	})
}

func TestListProductReviews(t *testing.T) {
	env := newTestEnv()
	userID, bearer := env.token("customer")
	env.products.add(product.Product{ID: "p-1", Name: "Lamp", Slug: "lamp", Price: "25.00", IsActive: true})

	w := env.do(t, http.MethodPost, "/reviews", bearer, map[string]interface{}{
		"productId": "p-1", "rating": 4, "title": "Good", "comment": "Does the job.",
	})
	require.Equal(t, 201, w.Code)

	t.Run("by product, public", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/reviews/product/p-1", "", nil)
		require.Equal(t, 200, w.Code)
		var page struct {
			Data  []review.Review `json:"data"`
			Total int             `json:"total"`
		}
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &page))
		assert.Equal(t, 1, page.Total)
		require.Len(t, page.Data, 1)
		assert.Equal(t, userID, page.Data[0].UserID)
	})

	t.Run("my reviews", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/reviews/my", bearer, nil)
		require.Equal(t, 200, w.Code)
		var mine []review.MyReview
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &mine))
		require.Len(t, mine, 1)
		assert.Equal(t, "p-1", mine[0].ProductID)
	})
}
