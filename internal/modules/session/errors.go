package session

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("session not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrHasBookings       = errors.New("session has active bookings")
)
