package services

import "errors"

var (
	// ErrValidation covers bad user input: non-positive quantities and
	// transitions out of a finalized order.
	ErrValidation = errors.New("validation failed")

	// ErrForbidden marks a staff-only action attempted by a customer.
	ErrForbidden = errors.New("forbidden")
)
