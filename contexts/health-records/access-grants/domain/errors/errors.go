package errors

import "errors"

var (
	ErrNotOwner     = errors.New("caller is not the grant owner")
	ErrInvalidGrant = errors.New("invalid grant input")
)
