package storage

import "errors"

// Failures surfaced to callers as values. Raw driver errors never cross
// the repository boundary unwrapped.
var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
