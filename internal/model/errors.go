package model

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed input and password policy violations.
	ErrValidation = errors.New("validation failed")
	// ErrPasswordMismatch is returned when a password and its confirmation differ.
	ErrPasswordMismatch = fmt.Errorf("%w: passwords do not match", ErrValidation)
	// ErrWeakPassword is returned when a password has no special character.
	ErrWeakPassword = fmt.Errorf("%w: password must contain at least one special character", ErrValidation)

	ErrDuplicateAccount   = errors.New("account with this email already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidTransition  = errors.New("role change is not permitted")
	ErrInvalidToken       = errors.New("invalid token")

	// ErrStoreFailure wraps underlying persistence faults.
	ErrStoreFailure = errors.New("store failure")
	// ErrUniqueViolation is returned by the store when a unique constraint fails.
	ErrUniqueViolation = errors.New("unique constraint violation")
)
