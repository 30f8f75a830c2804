package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check for these with errors.Is(); the API layer maps them to HTTP
// status codes.
var (
	// ErrReadingNotFound indicates the reading does not exist or belongs to a
	// different user. The two cases are deliberately indistinguishable.
	// API layer should map this to HTTP 404 Not Found.
	ErrReadingNotFound = errors.New("reading not found")

	// ErrInvalidShareCode indicates a share code that does not decode to a
	// valid casting. API layer should map this to HTTP 404 Not Found.
	ErrInvalidShareCode = errors.New("share code is not valid")

	// ErrWrongPassword indicates a password check against the stored hash
	// failed. API layer should map this to HTTP 401 Unauthorized.
	ErrWrongPassword = errors.New("password does not match")
)
