package errors

import "errors"

var (
	ErrNotOwner       = errors.New("caller is not the consent owner")
	ErrInvalidConsent = errors.New("invalid consent input")
)
