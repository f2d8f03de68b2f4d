package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Legend1hhh/storefront-api/internal/coupon"
	"github.com/Legend1hhh/storefront-api/internal/httpx"
)

// validateCouponHandler checks a code against the current order amount and
// returns the coupon terms. It does not redeem; the uses counter only moves
// at checkout.
func validateCouponHandler(coupons coupon.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Code        string          `json:"code"`
			OrderAmount decimal.Decimal `json:"orderAmount"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" {
			httpx.Error(c, 400, "Coupon code is required")
			return
		}

		cp, err := coupons.GetByCode(c.Request.Context(), req.Code)
		if err != nil {
			httpx.Error(c, 400, "Invalid or expired coupon code")
			return
		}
		if err := cp.Eligible(req.OrderAmount, time.Now()); err != nil {
			httpx.Error(c, 400, err.Error())
			return
		}
		httpx.OK(c, cp, "")
	}
}
