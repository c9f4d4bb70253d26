package order

import "hardwarehub-be/internal/apperr"

var (
	// -- Validation & Input --
	ErrEmptyCart              = apperr.Validation("cart is empty")
	ErrInvalidPaymentMethod   = apperr.Validation("payment method must be one of cod, card, upi, netbanking")
	ErrInvalidShippingAddress = apperr.Validation("shipping address is incomplete")
	ErrInvalidStatus          = apperr.Validation("unknown order status")
	ErrInsufficientStock      = apperr.Validation("insufficient stock")

	// -- Resource State --
	ErrOrderNotFound          = apperr.NotFound("order not found")
	ErrInvalidTransition      = apperr.Validation("order status transition not allowed")
	ErrInvalidStatusForCancel = apperr.Validation("only pending orders can be cancelled")
	ErrStatusConflict         = apperr.Conflict("order status changed concurrently")
	ErrOrderNumberConflict    = apperr.Conflict("order number already in use, retry checkout")
	ErrCartChanged            = apperr.Conflict("cart changed during checkout, retry checkout")

	// -- Authentication/Authorization --
	ErrForbidden = apperr.Forbidden("not allowed to access this order")
)

const pgUniqueViolation = "23505"
