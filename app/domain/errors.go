package domain

import "errors"

// Sentinel errors shared across layers
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("authentication required")
	ErrForbidden          = errors.New("access denied")
	ErrOutOfStock         = errors.New("insufficient stock")
)
