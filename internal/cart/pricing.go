package cart

import "github.com/shopspring/decimal"

// Pricing derives cart totals. Tax is a flat rate on the subtotal, shipping
// is free strictly above the threshold and a flat fee otherwise.
type Pricing struct {
	TaxRate               decimal.Decimal
	ShippingFee           decimal.Decimal
	FreeShippingThreshold decimal.Decimal
}

func NewPricing(taxRate, shippingFee, freeShippingThreshold float64) Pricing {
	return Pricing{
		TaxRate:               decimal.NewFromFloat(taxRate),
		ShippingFee:           decimal.NewFromFloat(shippingFee),
		FreeShippingThreshold: decimal.NewFromFloat(freeShippingThreshold),
	}
}

func DefaultPricing() Pricing {
	return NewPricing(0.18, 50, 500)
}

// Apply recomputes every derived amount on c in place.
func (p Pricing) Apply(c *Cart) {
	subtotal := decimal.Zero
	for i := range c.Items {
		line := c.Items[i].Price.Mul(decimal.NewFromInt(int64(c.Items[i].Quantity)))
		c.Items[i].Subtotal = line
		subtotal = subtotal.Add(line)
	}

	shipping := p.ShippingFee
	if subtotal.GreaterThan(p.FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	c.Subtotal = subtotal
	c.Tax = subtotal.Mul(p.TaxRate).Round(2)
	c.ShippingCost = shipping
	c.TotalAmount = c.Subtotal.Add(c.Tax).Add(c.ShippingCost)
}
