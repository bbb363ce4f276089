package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
)

// Verification-flow errors. The error string doubles as the wire-level error
// code in API responses, so these must stay stable.
var (
	ErrInvalidDomain  = errors.New("InvalidDomain")
	ErrNoPendingCode  = errors.New("NoPendingCode")
	ErrCodeExpired    = errors.New("CodeExpired")
	ErrCodeMismatch   = errors.New("CodeMismatch")
	ErrDeliveryFailed = errors.New("DeliveryFailed")
)
