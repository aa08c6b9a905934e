package errs

import "errors"

// Sentinel errors shared across the booking usecase layers. Handlers map
// these onto HTTP statuses; nothing below this layer returns them directly.
var (
	// Validation
	ErrInvalidRange     = errors.New("invalid time range")
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// Checkout
	ErrSlotNoLongerAvailable = errors.New("slot no longer available")
	ErrEmptyCart             = errors.New("cart is empty")

	// Payment / order lifecycle
	ErrInvalidState     = errors.New("operation not valid for current status")
	ErrAlreadyProcessed = errors.New("already processed")
	ErrGateway          = errors.New("payment gateway error")

	// Access
	ErrUnauthorized = errors.New("unauthorized")

	// Lookup
	ErrNotFound = errors.New("not found")
)
