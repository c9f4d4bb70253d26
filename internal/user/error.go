package user

import "hardwarehub-be/internal/apperr"

var (
	ErrEmailExists        = apperr.Conflict("email already registered")
	ErrInvalidCredentials = apperr.Unauthorized("invalid email or password")
	ErrUserNotFound       = apperr.NotFound("user not found")
	ErrWeakPassword       = apperr.Validation("password must be at least 6 characters")
	ErrInvalidEmail       = apperr.Validation("invalid email")
)

const pgUniqueViolation = "23505"
