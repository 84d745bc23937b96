package domain

import "errors"

var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")
	ErrInactiveUser       = errors.New("account is inactive")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrBookNotFound       = errors.New("book not found")

	// ErrValidation is the match target for all input validation failures.
	ErrValidation = errors.New("invalid input")
)

// ValidationError carries a human-readable reason for a rejected input.
// errors.Is(err, ErrValidation) matches every ValidationError.
type ValidationError struct {
	Reason string
}

func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
