package handlers

import "errors"

var (
	// common error code
	ErrInternalServer   = errors.New("INTERNAL_SERVER_ERROR")
	ErrInvalidRequest   = errors.New("VALIDATION_FAILED")
	ErrNotFound         = errors.New("NOT_FOUND")
	ErrMethodNotAllowed = errors.New("METHOD_NOT_ALLOWED")
	ErrRateLimited      = errors.New("RATE_LIMIT_EXCEEDED")

	// estimate error code
	ErrUpstreamFailed = errors.New("UPSTREAM_FAILED")
	ErrEstimateFailed = errors.New("INVALID_REQUEST")
)
