// Package coupon holds discount codes and their eligibility rules. The same
// rules gate /coupons/validate and the checkout redemption.
package coupon

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypePercentage = "percentage"
	TypeFixed      = "fixed"
)

var (
	ErrNotFound  = errors.New("invalid or expired coupon code")
	ErrExhausted = errors.New("coupon has reached maximum uses")
)

// MinOrderError carries the threshold for a human-readable rejection.
type MinOrderError struct {
	Min decimal.Decimal
}

func (e *MinOrderError) Error() string {
	return fmt.Sprintf("minimum order amount of $%s required", e.Min.StringFixed(2))
}

type Coupon struct {
	ID             string          `json:"id"`
	Code           string          `json:"code"`
	Type           string          `json:"type"`
	Value          decimal.Decimal `json:"value"`
	MinOrderAmount decimal.Decimal `json:"minOrderAmount"`
	MaxUses        int             `json:"maxUses,omitempty"`
	Uses           int             `json:"uses"`
	StartDate      *time.Time      `json:"startDate,omitempty"`
	EndDate        *time.Time      `json:"endDate,omitempty"`
	IsActive       bool            `json:"-"`
}

// Eligible reports whether the coupon can be applied to an order of the
// given subtotal at the given time. MaxUses of zero means unlimited.
func (c *Coupon) Eligible(subtotal decimal.Decimal, now time.Time) error {
	if !c.IsActive {
		return ErrNotFound
	}
	if c.StartDate != nil && now.Before(*c.StartDate) {
		return ErrNotFound
	}
	if c.EndDate != nil && now.After(c.EndDate.Add(24*time.Hour)) {
		return ErrNotFound
	}
	if c.MaxUses > 0 && c.Uses >= c.MaxUses {
		return ErrExhausted
	}
	if c.MinOrderAmount.IsPositive() && subtotal.LessThan(c.MinOrderAmount) {
		return &MinOrderError{Min: c.MinOrderAmount}
	}
	return nil
}
