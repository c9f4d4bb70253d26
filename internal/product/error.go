package product

import "hardwarehub-be/internal/apperr"

var (
	ErrProductNotFound = apperr.NotFound("product not found")

	ErrInvalidName          = apperr.Validation("product name is required")
	ErrInvalidPrice         = apperr.Validation("price must not be negative")
	ErrInvalidCategory      = apperr.Validation("category must be one of hardware, electrical, agri-tech")
	ErrInvalidStock         = apperr.Validation("stock must not be negative")
	ErrInvalidLowStockAlert = apperr.Validation("low stock alert must not be negative")
	ErrInvalidPriceRange    = apperr.Validation("minPrice must not exceed maxPrice")
	ErrEmptyUpdate          = apperr.Validation("no fields to update")
)
