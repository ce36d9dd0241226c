package errors

import "errors"

// Common errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
)

// Auth errors
var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Summary errors
var (
	ErrMalformedResponse  = errors.New("model did not return valid JSON")
	ErrSummaryUnavailable = errors.New("summary generation unavailable")
)

// Webhook errors
var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
)
