// Package common defines shared sentinel errors and small helpers used
// across the Fortress packages. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Storage-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrCorruptStore  = errors.New("stored data is corrupt")
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// Validation errors, detected before any crypto or storage call.
	ErrValidation   = errors.New("validation error")
	ErrFileTooLarge = errors.New("file too large")

	// Authentication errors.
	ErrDuplicateUser      = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotLoggedIn        = errors.New("not logged in")

	// Cryptographic errors.
	ErrDecrypt = errors.New("decryption failed")
)
