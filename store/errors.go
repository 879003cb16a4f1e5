package store

import "errors"

var (
	// ErrValidation is returned when required issue fields are missing or
	// carry unknown values.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized is returned when the caller lacks the admin capability.
	ErrUnauthorized = errors.New("admin access required")
	// ErrNotFound is returned for lookups of unknown ids.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateUser is returned when registering an email that exists.
	ErrDuplicateUser = errors.New("user already exists")
	// ErrInvalidCredentials is returned by Authenticate on a bad email or password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
