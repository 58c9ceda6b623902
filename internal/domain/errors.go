package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound            = errors.New("not found")
	ErrBadRequest          = errors.New("bad request")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidOrExpiredOTP = errors.New("invalid or expired one-time code")
	ErrTokenInvalid        = errors.New("invalid or expired token")
	ErrDeliveryUnavailable = errors.New("code delivery unavailable")
)
