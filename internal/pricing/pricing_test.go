package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestComputeTotals(t *testing.T) {
	cases := []struct {
		name     string
		items    []Item
		discount decimal.Decimal

		subtotal, tax, shipping, total string
	}{
		{
			name:     "single item over free shipping threshold",
			items:    []Item{{UnitPrice: d("120"), Quantity: 1}},
			discount: decimal.Zero,
			subtotal: "120", tax: "9.6", shipping: "0", total: "129.6",
		},
		{
			name:     "subtotal exactly 100 still pays shipping",
			items:    []Item{{UnitPrice: d("50"), Quantity: 2}},
			discount: decimal.Zero,
			subtotal: "100", tax: "8", shipping: "15", total: "123",
		},
		{
			name:     "fixed 10 coupon on the 100 cart",
			items:    []Item{{UnitPrice: d("50"), Quantity: 2}},
			discount: d("10"),
			subtotal: "100", tax: "8", shipping: "15", total: "113",
		},
		{
			name:     "multiple lines sum in order",
			items:    []Item{{UnitPrice: d("19.99"), Quantity: 3}, {UnitPrice: d("5.50"), Quantity: 2}},
			discount: decimal.Zero,
			subtotal: "70.97", tax: "5.68", shipping: "15", total: "91.65",
		},
		{
			name:     "discount larger than order clamps total at zero",
			items:    []Item{{UnitPrice: d("10"), Quantity: 1}},
			discount: d("500"),
			subtotal: "10", tax: "0.8", shipping: "15", total: "0",
		},
		{
			name:     "empty cart",
			items:    nil,
			discount: decimal.Zero,
			subtotal: "0", tax: "0", shipping: "15", total: "15",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeTotals(tc.items, tc.discount)
			assert.True(t, got.Subtotal.Equal(d(tc.subtotal)), "subtotal=%s", got.Subtotal)
			assert.True(t, got.Tax.Equal(d(tc.tax)), "tax=%s", got.Tax)
			assert.True(t, got.Shipping.Equal(d(tc.shipping)), "shipping=%s", got.Shipping)
			assert.True(t, got.Total.Equal(d(tc.total)), "total=%s", got.Total)
		})
	}
}

func TestComputeTotals_ShippingBoundary(t *testing.T) {
	// strict inequality: 100.00 ships at 15, 100.01 ships free
	at := ComputeTotals([]Item{{UnitPrice: d("100.00"), Quantity: 1}}, decimal.Zero)
	assert.True(t, at.Shipping.Equal(d("15")))

	over := ComputeTotals([]Item{{UnitPrice: d("100.01"), Quantity: 1}}, decimal.Zero)
	assert.True(t, over.Shipping.Equal(d("0")))
}

func TestComputeTotals_Invariant(t *testing.T) {
	items := []Item{
		{UnitPrice: d("12.34"), Quantity: 2},
		{UnitPrice: d("0.99"), Quantity: 7},
		{UnitPrice: d("150.00"), Quantity: 1},
	}
	discount := d("20")
	got := ComputeTotals(items, discount)

	want := got.Subtotal.Add(got.Tax).Add(got.Shipping).Sub(got.Discount)
	if want.IsNegative() {
		want = decimal.Zero
	}
	assert.True(t, got.Total.Equal(want), "total=%s want=%s", got.Total, want)
	assert.True(t, got.Tax.Equal(got.Subtotal.Mul(d("0.08")).Round(2)))
}

func TestDiscount(t *testing.T) {
	assert.True(t, Discount("percentage", d("10"), d("250")).Equal(d("25")))
	assert.True(t, Discount("fixed", d("10"), d("250")).Equal(d("10")))
	assert.True(t, Discount("bogus", d("10"), d("250")).Equal(decimal.Zero))
}
