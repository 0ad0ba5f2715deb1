package errors

import "errors"

var (
	// ErrUnauthorized is returned when neither the allow-list nor a live
	// consent covers the read and the caller is not the owner.
	ErrUnauthorized = errors.New("access gateway: caller is not authorized for this record set")

	// ErrAuditUnavailable is returned when the mandatory emergency audit
	// append could not be confirmed committed. No records are released.
	ErrAuditUnavailable = errors.New("access gateway: audit log append failed")

	ErrInvalidRequest = errors.New("access gateway: invalid request")
)
