// Package pricing computes cart and order totals. Every call site (cart
// preview, cart sync, order creation) goes through ComputeTotals so the
// figures never disagree for the same input.
package pricing

import "github.com/shopspring/decimal"

var (
	taxRate           = decimal.NewFromFloat(0.08)
	freeShippingAbove = decimal.NewFromInt(100)
	flatShipping      = decimal.NewFromInt(15)
)

// Item is a priced order line. Quantity must already be validated against
// stock by the caller.
type Item struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Totals is the financial breakdown of a cart or order.
// swagger:model Totals
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals derives subtotal, tax, shipping and the clamped total from
// the items and an already-resolved discount. Pure: no I/O, no side effects.
//
// Rules: tax is 8% of the subtotal rounded to cents; shipping is free only
// strictly above 100, otherwise a flat 15; the total never goes below zero.
func ComputeTotals(items []Item, discount decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	tax := subtotal.Mul(taxRate).Round(2)

	shipping := flatShipping
	if subtotal.GreaterThan(freeShippingAbove) {
		shipping = decimal.Zero
	}

	total := subtotal.Add(tax).Add(shipping).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Totals{
		Subtotal: subtotal.Round(2),
		Tax:      tax,
		Shipping: shipping,
		Discount: discount.Round(2),
		Total:    total.Round(2),
	}
}

// Discount resolves a coupon's value against a subtotal. couponType is
// "percentage" or "fixed"; anything else yields zero.
func Discount(couponType string, value, subtotal decimal.Decimal) decimal.Decimal {
	switch couponType {
	case "percentage":
		return subtotal.Mul(value).Div(decimal.NewFromInt(100)).Round(2)
	case "fixed":
		return value.Round(2)
	}
	return decimal.Zero
}
