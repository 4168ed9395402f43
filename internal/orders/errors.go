package orders

import "errors"

var (
	ErrEmptyInput        = errors.New("no orders given")
	ErrNoEligibleRecords = errors.New("no non-cancelled orders")
	ErrMissingField      = errors.New("missing field")
	ErrInvalidField      = errors.New("invalid field")
)
