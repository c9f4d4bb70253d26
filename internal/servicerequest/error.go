package servicerequest

import "hardwarehub-be/internal/apperr"

var (
	// -- Validation & Input --
	ErrServiceTypeUnavailable   = apperr.Validation("service type is not available")
	ErrEquipmentTypeUnavailable = apperr.Validation("equipment type is not available")
	ErrInvalidPreferredDate     = apperr.Validation("preferred date must be YYYY-MM-DD or RFC3339")
	ErrPreferredDateInPast      = apperr.Validation("preferred date must not be in the past")
	ErrMissingField             = apperr.Validation("description and contact number are required")
	ErrInvalidStatus            = apperr.Validation("unknown service request status")
	ErrEmptyUpdate              = apperr.Validation("no fields to update")

	// -- Resource State --
	ErrNotFound               = apperr.NotFound("service request not found")
	ErrInvalidTransition      = apperr.Validation("service request status transition not allowed")
	ErrInvalidStatusForCancel = apperr.Validation("only pending or assigned requests can be cancelled")
	ErrStatusConflict         = apperr.Conflict("service request status changed concurrently")

	// -- Authentication/Authorization --
	ErrForbidden = apperr.Forbidden("not allowed to access this service request")
)
