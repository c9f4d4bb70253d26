package catalog

import "hardwarehub-be/internal/apperr"

var (
	ErrUnknownKind       = apperr.New(apperr.KindInternal, "unknown catalog kind")
	ErrNotFound          = apperr.NotFound("catalog entry not found")
	ErrDuplicateName     = apperr.Conflict("an entry with this name already exists")
	ErrInvalidName       = apperr.Validation("name is required")
	ErrInvalidBasePrice  = apperr.Validation("base price must not be negative")
	ErrBasePriceNotValid = apperr.Validation("equipment types do not carry a base price")
	ErrEmptyUpdate       = apperr.Validation("no fields to update")
)

const pgUniqueViolation = "23505"
