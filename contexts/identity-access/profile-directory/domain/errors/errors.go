package errors

import "errors"

var (
	ErrNotOwner = errors.New("profile directory: only the principal may edit its own profile")

	ErrInvalidProfile = errors.New("profile directory: invalid profile input")

	ErrProfileNotFound = errors.New("profile directory: profile not found")
)
