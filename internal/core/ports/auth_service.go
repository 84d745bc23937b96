package ports

import (
	"context"

	"github.com/openshelf/book-catalog/internal/core/domain"
)

// RegisterInput carries the fields for account registration.
type RegisterInput struct {
	Username  string `validate:"required,alphanum,min=3,max=30"`
	Email     string `validate:"omitempty,email"`
	Password  string `validate:"required,min=6,max=128"`
	FirstName string `validate:"omitempty,max=50"`
	LastName  string `validate:"omitempty,max=50"`
	Role      string `validate:"omitempty,oneof=user admin"`
}

// LoginInput carries login credentials.
type LoginInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// AuthService implements registration, login and token verification.
type AuthService interface {
	// Register creates an account and returns a signed token with the public
	// user projection. Only an admin actor may grant the admin role; the
	// actor is nil for anonymous registration.
	Register(ctx context.Context, actor *domain.User, input RegisterInput) (*domain.AuthPayload, error)
	// Login verifies credentials and issues a token. Fails closed on unknown
	// users, wrong passwords and inactive accounts.
	Login(ctx context.Context, input LoginInput) (*domain.AuthPayload, error)
	// Authenticate resolves a bearer token to an active user. Malformed,
	// expired or mis-signed tokens never yield a partial identity.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// LoginThrottle limits repeated failed logins for a single key.
type LoginThrottle interface {
	TooMany(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}
