package domain

import "errors"

// Sentinel errors for domain-level error handling.
// The handler layer maps these to HTTP status codes.
var (
	ErrInvalidQuantity    = errors.New("invalid_quantity")
	ErrInvalidPrice       = errors.New("invalid_price")
	ErrInvalidSide        = errors.New("invalid_side")
	ErrOrderAlreadyFilled = errors.New("order_already_filled")
	ErrDuplicateOrderID   = errors.New("duplicate_order_id")
	ErrOrderNotFound      = errors.New("order_not_found")
	ErrFeedClosed         = errors.New("feed_closed")
)

// ValidationError represents a rejected order field. It wraps one of the
// sentinel errors above so callers can match with errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
