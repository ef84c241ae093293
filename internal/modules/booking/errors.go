package booking

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("session not found")
	ErrForbidden          = errors.New("only students can enroll")
	ErrNotBookable        = errors.New("session is not approved")
	ErrRegistrationClosed = errors.New("registration window is closed")
	ErrAlreadyBooked      = errors.New("already enrolled in this session")
)
