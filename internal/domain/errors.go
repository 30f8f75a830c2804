package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidFormat is returned when data is not in the expected format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidPassword is returned when a password doesn't meet requirements.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrInvalidDrawValue is returned when a cast line value is outside 6..9.
	ErrInvalidDrawValue = errors.New("invalid draw value")

	// ErrInvalidCategory is returned when a question category is not recognized.
	ErrInvalidCategory = errors.New("invalid question category")

	// ErrUnknownHexagram is returned when a six-line key has no entry in the
	// hexagram table. With a well-formed table this indicates a corrupted key,
	// never a missing hexagram.
	ErrUnknownHexagram = errors.New("unknown hexagram key")

	// ErrMissingWorldLine is returned when no line carries the self (世) flag.
	ErrMissingWorldLine = errors.New("missing world line")

	// ErrMissingResponseLine is returned when no line carries the other (应) flag.
	ErrMissingResponseLine = errors.New("missing response line")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)
