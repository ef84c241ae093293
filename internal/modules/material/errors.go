package material

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrSessionNotFound = errors.New("session not found")
	ErrNotFound        = errors.New("material not found")
	ErrForbidden       = errors.New("forbidden")
)
