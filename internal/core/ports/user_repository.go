package ports

import (
	"context"

	"github.com/openshelf/book-catalog/internal/core/domain"
)

// UserFilter narrows a user listing. Nil fields are ignored.
type UserFilter struct {
	Role     *string
	IsActive *bool
}

// UserUpdate describes a partial user update. Nil fields are left untouched.
type UserUpdate struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Role      *string
	IsActive  *bool
}

// UserRepository defines the persistence interface for user accounts.
type UserRepository interface {
	// Create inserts a user. Returns domain.ErrUserExists when the username
	// or email is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Find lists users matching the filter, newest first.
	Find(ctx context.Context, filter UserFilter, limit, offset int) ([]*domain.User, error)
	// Search matches a case-insensitive substring against username, email,
	// first name and last name.
	Search(ctx context.Context, query string, limit, offset int) ([]*domain.User, error)
	// Update applies the non-nil fields and returns the updated user.
	// Returns domain.ErrUserExists when a unique field collides.
	Update(ctx context.Context, id string, upd UserUpdate) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
}
