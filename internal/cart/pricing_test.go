package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPricing_Apply(t *testing.T) {
	p := DefaultPricing()

	tests := []struct {
		name     string
		items    []Item
		subtotal string
		tax      string
		shipping string
		total    string
	}{
		{
			name:     "Free shipping above threshold",
			items:    []Item{{ProductID: 1, Quantity: 2, Price: d("300")}},
			subtotal: "600", tax: "108", shipping: "0", total: "708",
		},
		{
			name:     "Flat fee at threshold",
			items:    []Item{{ProductID: 1, Quantity: 1, Price: d("500")}},
			subtotal: "500", tax: "90", shipping: "50", total: "640",
		},
		{
			name:     "Tax rounded to cents",
			items:    []Item{{ProductID: 1, Quantity: 3, Price: d("33.33")}},
			subtotal: "99.99", tax: "18", shipping: "50", total: "167.99",
		},
		{
			name:     "Empty cart pays flat fee",
			items:    nil,
			subtotal: "0", tax: "0", shipping: "50", total: "50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Cart{Items: tt.items}
			p.Apply(c)

			assert.True(t, c.Subtotal.Equal(d(tt.subtotal)), "subtotal %s", c.Subtotal)
			assert.True(t, c.Tax.Equal(d(tt.tax)), "tax %s", c.Tax)
			assert.True(t, c.ShippingCost.Equal(d(tt.shipping)), "shipping %s", c.ShippingCost)
			assert.True(t, c.TotalAmount.Equal(d(tt.total)), "total %s", c.TotalAmount)
			assert.True(t, c.TotalAmount.Equal(c.Subtotal.Add(c.Tax).Add(c.ShippingCost)))
		})
	}
}

func TestPricing_LineSubtotals(t *testing.T) {
	c := &Cart{Items: []Item{
		{ProductID: 1, Quantity: 2, Price: d("10.50")},
		{ProductID: 2, Quantity: 1, Price: d("4")},
	}}
	DefaultPricing().Apply(c)

	assert.True(t, c.Items[0].Subtotal.Equal(d("21")))
	assert.True(t, c.Items[1].Subtotal.Equal(d("4")))
	assert.True(t, c.Subtotal.Equal(d("25")))
}

func TestNewPricing(t *testing.T) {
	p := NewPricing(0.1, 20, 100)
	c := &Cart{Items: []Item{{ProductID: 1, Quantity: 1, Price: d("150")}}}
	p.Apply(c)

	assert.True(t, c.Tax.Equal(d("15")))
	assert.True(t, c.ShippingCost.IsZero())
	assert.True(t, c.TotalAmount.Equal(d("165")))
}
