package product

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryHardware   Category = "hardware"
	CategoryElectrical Category = "electrical"
	CategoryAgriTech   Category = "agri-tech"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryHardware, CategoryElectrical, CategoryAgriTech}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

const DefaultLowStockAlert = 10

type Product struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Category      Category        `json:"category"`
	Stock         int             `json:"stock"`
	Image         string          `json:"image"`
	LowStockAlert int             `json:"lowStockAlert"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// IsLowStock reports whether stock has reached the alert threshold.
func (p Product) IsLowStock() bool {
	return p.Stock <= p.LowStockAlert
}

type NewProductInput struct {
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Category      Category        `json:"category" binding:"required"`
	Stock         int             `json:"stock"`
	Image         string          `json:"image"`
	LowStockAlert *int            `json:"lowStockAlert"`
}

type UpdateProductInput struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	Category      *Category        `json:"category"`
	Stock         *int             `json:"stock"`
	Image         *string          `json:"image"`
	LowStockAlert *int             `json:"lowStockAlert"`
}

func (in UpdateProductInput) Empty() bool {
	return in.Name == nil && in.Description == nil && in.Price == nil &&
		in.Category == nil && in.Stock == nil && in.Image == nil && in.LowStockAlert == nil
}

type ListQuery struct {
	Category string
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	InStock  *bool
	SortBy   string
	SortDir  string
	Page     int
	Limit    int
}

// CacheKey is stable for equal queries once normalized.
func (q ListQuery) CacheKey() string {
	key := fmt.Sprintf("c=%s|s=%s|sort=%s:%s|p=%d|l=%d", q.Category, q.Search, q.SortBy, q.SortDir, q.Page, q.Limit)
	if q.MinPrice != nil {
		key += "|min=" + q.MinPrice.String()
	}
	if q.MaxPrice != nil {
		key += "|max=" + q.MaxPrice.String()
	}
	if q.InStock != nil {
		key += fmt.Sprintf("|stock=%t", *q.InStock)
	}
	return key
}

type ListResult struct {
	Items []Product `json:"items"`
	Total int       `json:"total"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
}

type CategoryCount struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
}
