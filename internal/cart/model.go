package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is one cart line. Price is the unit price captured when the line was
// last added to, not the live product price.
type Item struct {
	ProductID uint            `json:"productId"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type Cart struct {
	ID           uint            `json:"id"`
	UserID       uint            `json:"userId"`
	Items        []Item          `json:"items"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	ShippingCost decimal.Decimal `json:"shippingCost"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) indexOf(productID uint) int {
	for i, it := range c.Items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

type AddItemInput struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type UpdateItemInput struct {
	Quantity int `json:"quantity"`
}
