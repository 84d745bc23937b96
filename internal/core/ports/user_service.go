package ports

import (
	"context"

	"github.com/openshelf/book-catalog/internal/core/domain"
)

// UpdateUserInput carries a partial profile update. Nil fields are untouched.
type UpdateUserInput struct {
	Username  *string `validate:"omitempty,alphanum,min=3,max=30"`
	Email     *string `validate:"omitempty,email"`
	FirstName *string `validate:"omitempty,max=50"`
	LastName  *string `validate:"omitempty,max=50"`
	Role      *string `validate:"omitempty,oneof=user admin"`
	IsActive  *bool
}

// ChangePasswordInput carries a password rotation request.
type ChangePasswordInput struct {
	CurrentPassword string `validate:"required"`
	NewPassword     string `validate:"required,min=6,max=128"`
}

// UserService implements the user-facing account operations. Every method
// receives the acting viewer explicitly; a nil viewer is anonymous.
type UserService interface {
	// Get returns a profile; allowed for the profile owner and admins.
	Get(ctx context.Context, viewer *domain.User, id string) (*domain.User, error)
	// ByID returns the public projection without an authorization gate.
	// Used to resolve record ownership references, never exposed directly.
	ByID(ctx context.Context, id string) (*domain.User, error)
	// List returns users newest first; admin only.
	List(ctx context.Context, viewer *domain.User, filter UserFilter, limit, offset int) ([]*domain.User, error)
	// Search matches users by substring; admin only.
	Search(ctx context.Context, viewer *domain.User, query string, limit, offset int) ([]*domain.User, error)
	// Update applies a partial update; self or admin. Only admins may change
	// the role or active flag.
	Update(ctx context.Context, viewer *domain.User, id string, input UpdateUserInput) (*domain.User, error)
	// ChangePassword rotates the viewer's password after re-verifying the
	// current one.
	ChangePassword(ctx context.Context, viewer *domain.User, input ChangePasswordInput) (*domain.User, error)
	// Delete hard-deletes an account; admin only, never the admin's own.
	Delete(ctx context.Context, viewer *domain.User, id string) error
	// ToggleStatus flips the active flag; admin only, never the admin's own.
	ToggleStatus(ctx context.Context, viewer *domain.User, id string) (*domain.User, error)
}
