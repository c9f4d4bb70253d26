package report

import "hardwarehub-be/internal/apperr"

var (
	ErrInvalidGroupBy   = apperr.Validation("groupBy must be one of hour, day, week, month, year")
	ErrInvalidStartDate = apperr.Validation("startDate must be YYYY-MM-DD or RFC3339")
	ErrInvalidEndDate   = apperr.Validation("endDate must be YYYY-MM-DD or RFC3339")
	ErrInvalidRange     = apperr.Validation("startDate must not be after endDate")
)
