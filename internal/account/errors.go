package account

import "errors"

var (
	// ErrUserNotFound signals that the user could not be located.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken is returned when the username is already registered.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidRecord represents a malformed account record.
	ErrInvalidRecord = errors.New("invalid account record")
	// ErrWeakPassword rejects empty or oversized passwords.
	ErrWeakPassword = errors.New("password must be between 1 and 72 bytes")
)
