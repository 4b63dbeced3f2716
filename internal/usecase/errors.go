package usecase

import "errors"

// Sentinels wrapped by every service error. The HTTP layer maps them to
// status codes.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrRelayRejected         = errors.New("relay rejected message")
)
