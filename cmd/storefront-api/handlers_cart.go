package main

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/Legend1hhh/storefront-api/internal/cart"
	"github.com/Legend1hhh/storefront-api/internal/httpx"
	"github.com/Legend1hhh/storefront-api/internal/pricing"
)

// cartView is the cart plus its always-recomputed totals.
// swagger:model CartView
type cartView struct {
	Items      []cart.Item     `json:"items"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	Shipping   decimal.Decimal `json:"shipping"`
	Discount   decimal.Decimal `json:"discount"`
	Total      decimal.Decimal `json:"total"`
	CouponCode string          `json:"couponCode,omitempty"`
}

// cartTotals prices the stored items through the shared engine. Item prices
// arrive as strings; a malformed one fails the whole computation.
func cartTotals(items []cart.Item, discount string) (cartView, error) {
	lines := make([]pricing.Item, 0, len(items))
	for _, it := range items {
		price, err := decimal.NewFromString(it.Price)
		if err != nil {
			return cartView{}, err
		}
		lines = append(lines, pricing.Item{UnitPrice: price, Quantity: it.Quantity})
	}

	d := decimal.Zero
	if discount != "" {
		var err error
		if d, err = decimal.NewFromString(discount); err != nil {
			return cartView{}, err
		}
	}

	t := pricing.ComputeTotals(lines, d)
	if items == nil {
		items = []cart.Item{}
	}
	return cartView{
		Items:    items,
		Subtotal: t.Subtotal,
		Tax:      t.Tax,
		Shipping: t.Shipping,
		Discount: t.Discount,
		Total:    t.Total,
	}, nil
}

func getCartHandler(carts cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := httpx.User(c)

		stored, err := carts.Get(c.Request.Context(), claims.UserID)
		if err == cart.ErrNotFound {
			view, _ := cartTotals(nil, "")
			view.Shipping = decimal.Zero // no cart means nothing to ship
			view.Total = decimal.Zero
			httpx.OK(c, view, "")
			return
		}
		if err != nil {
			log.WithError(err).Error("cart fetch failed")
			httpx.Error(c, 500, "Failed to fetch cart")
			return
		}

		view, err := cartTotals(stored.Items, stored.Discount)
		if err != nil {
			log.WithError(err).Error("cart totals failed")
			httpx.Error(c, 500, "Failed to fetch cart")
			return
		}
		view.CouponCode = stored.CouponCode
		httpx.OK(c, view, "")
	}
}

func syncCartHandler(carts cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := httpx.User(c)
		var req struct {
			Items      []cart.Item `json:"items"`
			CouponCode string      `json:"couponCode"`
			Discount   string      `json:"discount"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Error(c, 400, "invalid JSON body")
			return
		}
		if req.Items == nil {
			req.Items = []cart.Item{}
		}
		if req.Discount == "" {
			req.Discount = "0"
		}
		// reject unparsable prices before they reach the store
		if _, err := cartTotals(req.Items, req.Discount); err != nil {
			httpx.Error(c, 400, "invalid item price")
			return
		}

		err := carts.Upsert(c.Request.Context(), &cart.Cart{
			UserID:     claims.UserID,
			Items:      req.Items,
			CouponCode: req.CouponCode,
			Discount:   req.Discount,
		})
		if err != nil {
			log.WithError(err).Error("cart sync failed")
			httpx.Error(c, 500, "Failed to sync cart")
			return
		}
		httpx.OK(c, nil, "Cart synced successfully")
	}
}

func clearCartHandler(carts cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := httpx.User(c)
		if err := carts.Clear(c.Request.Context(), claims.UserID); err != nil {
			log.WithError(err).Error("cart clear failed")
			httpx.Error(c, 500, "Failed to clear cart")
			return
		}
		httpx.OK(c, nil, "Cart cleared successfully")
	}
}
