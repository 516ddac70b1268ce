package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by services and repositories. Callers wrap them with
// context and the HTTP layer maps them with errors.Is.
var (
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("already exists")
	ErrInvalidReference    = errors.New("references an unknown record")
	ErrValidation          = errors.New("validation failed")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrForbidden           = errors.New("access forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInactiveUser        = errors.New("user is inactive")
	ErrInvalidOTP          = errors.New("invalid otp")
	ErrOTPExpired          = errors.New("otp expired or not requested")
	ErrOTPAttemptsExceeded = errors.New("too many otp attempts")
	ErrResetTokenInvalid   = errors.New("reset token invalid or expired")
	ErrRoleInUse           = errors.New("role is assigned to users")
	ErrProtectedRole       = errors.New("built-in role cannot be changed")
)

// NotFound reports a missing record of the given kind, e.g. "inquiry not found".
func NotFound(kind string) error {
	return fmt.Errorf("%s %w", kind, ErrNotFound)
}

// Conflict reports a uniqueness violation, e.g. "user email already exists".
func Conflict(what string) error {
	return fmt.Errorf("%s %w", what, ErrConflict)
}

// InvalidReference reports a dangling id, e.g. "product.brand_id references an unknown record".
func InvalidReference(field string) error {
	return fmt.Errorf("%s %w", field, ErrInvalidReference)
}

// Invalid reports a rule violation not caught by request validation.
func Invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
