// Package common contains shared constants and sentinel errors used across
// the maintenance tracker components. Callers match these values with
// errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound        = errors.New("not found")
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownItem     = errors.New("unknown item")
	ErrDuplicateTitle  = errors.New("duplicate title")

	// Transient storage failures. Retry policy belongs to the caller.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// Auth errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
)
