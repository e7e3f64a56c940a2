package apperrors

import "errors"

var (
	ErrTourNotFound    = errors.New("tour not found")
	ErrDraftNotFound   = errors.New("draft not found")
	ErrLineNotFound    = errors.New("line not found")
	ErrBookingNotFound = errors.New("booking not found")

	ErrNoTourSelected  = errors.New("no tour selected")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")

	ErrCatalogUnavailable   = errors.New("catalog unavailable")
	ErrCacheMiss            = errors.New("cache miss")
	ErrTotalMismatch        = errors.New("total does not match sum of line subtotals")
	ErrInvalidBookingStatus = errors.New("invalid booking status")

	ErrInvalidInput        = errors.New("invalid input")
	ErrInternalServerError = errors.New("internal server error")
)
