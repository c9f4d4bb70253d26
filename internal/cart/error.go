package cart

import "hardwarehub-be/internal/apperr"

var (
	// -- Authentication/Authorization --
	ErrUserNotAuthenticated = apperr.Unauthorized("user not authenticated")

	// -- Validation & Input --
	ErrInvalidQuantity   = apperr.Validation("quantity must be at least 1")
	ErrInsufficientStock = apperr.Validation("insufficient stock")

	// -- Resource State --
	ErrProductNotFound  = apperr.NotFound("product not found")
	ErrCartItemNotFound = apperr.NotFound("cart item not found")
)
