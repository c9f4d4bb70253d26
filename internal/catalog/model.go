// Package catalog manages the admin-maintained reference lists that service
// requests point at: service types and equipment types.
package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindServiceType   Kind = "service-type"
	KindEquipmentType Kind = "equipment-type"
)

type kindSpec struct {
	table    string
	hasPrice bool
	label    string
}

var kinds = map[Kind]kindSpec{
	KindServiceType:   {table: "service_types", hasPrice: true, label: "service type"},
	KindEquipmentType: {table: "equipment_types", hasPrice: false, label: "equipment type"},
}

// Entry is a service type or an equipment type. BasePrice is only set for
// service types.
type Entry struct {
	ID          uint             `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	BasePrice   *decimal.Decimal `json:"basePrice,omitempty"`
	IsActive    bool             `json:"isActive"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

type CreateInput struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	BasePrice   *decimal.Decimal `json:"basePrice"`
}

type UpdateInput struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	BasePrice   *decimal.Decimal `json:"basePrice"`
	IsActive    *bool            `json:"isActive"`
}

type ListQuery struct {
	IncludeInactive bool
	Search          string
	Page            int
	Limit           int
}
