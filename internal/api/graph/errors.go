package graph

import (
	"errors"

	"github.com/openshelf/book-catalog/internal/core/domain"
)

// Stable error codes surfaced to clients via GraphQL error extensions.
const (
	codeUnauthenticated = "UNAUTHENTICATED"
	codeForbidden       = "FORBIDDEN"
	codeBadUserInput    = "BAD_USER_INPUT"
	codeNotFound        = "NOT_FOUND"
	codeRateLimited     = "RATE_LIMITED"
	codeInternal        = "INTERNAL_ERROR"
)

// apiError is the error type surfaced to GraphQL clients. It implements
// gqlerrors.ExtendedError so the code lands in the error extensions.
type apiError struct {
	code    string
	message string
}

func (e *apiError) Error() string { return e.message }

func (e *apiError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

// mapError converts a domain error into an apiError with a stable code.
// Validation and authorization failures keep their message; anything
// unexpected is logged server-side and replaced by a generic message so
// internals never leak to the client.
func (r *Resolver) mapError(op string, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return &apiError{code: codeBadUserInput, message: err.Error()}
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInactiveUser):
		return &apiError{code: codeUnauthenticated, message: err.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return &apiError{code: codeForbidden, message: err.Error()}
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrBookNotFound):
		return &apiError{code: codeNotFound, message: err.Error()}
	case errors.Is(err, domain.ErrTooManyAttempts):
		return &apiError{code: codeRateLimited, message: err.Error()}
	}

	r.logger.Error().Err(err).Str("operation", op).Msg("unhandled resolver error")
	return &apiError{code: codeInternal, message: "internal server error"}
}
