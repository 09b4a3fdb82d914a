package domain

import "errors"

// Client-facing errors. The messages are rendered verbatim by the HTTP layer.
var (
	ErrValidation         = errors.New("Email and password are required")
	ErrPasswordTooLong    = errors.New("Password must be at most 72 bytes")
	ErrDuplicateAccount   = errors.New("User already exists")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrNoTokenProvided    = errors.New("No valid token provided")
	ErrTokenInvalid       = errors.New("Invalid token")
	ErrAccountNotFound    = errors.New("User not found")
)

// Internal errors. Their details never reach the client.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrStorage       = errors.New("storage error")
	ErrHashing       = errors.New("hashing error")
)
