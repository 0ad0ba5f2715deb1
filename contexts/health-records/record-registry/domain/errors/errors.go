package errors

import "errors"

var (
	ErrNotOwner               = errors.New("caller is not the record owner")
	ErrInvalidRecord          = errors.New("invalid record input")
	ErrIdempotencyKeyRequired = errors.New("idempotency key is required")
	ErrIdempotencyConflict    = errors.New("idempotency key reused with different request")
)
