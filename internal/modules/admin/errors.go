package admin

import "errors"

var (
	ErrInvalidRole  = errors.New("invalid role")
	ErrSelfDemotion = errors.New("admins cannot demote themselves")
	ErrUserNotFound = errors.New("user not found")
)
