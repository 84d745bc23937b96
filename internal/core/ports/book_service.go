package ports

import (
	"context"

	"github.com/openshelf/book-catalog/internal/core/domain"
)

// CreateBookInput carries the fields for a new catalog record.
// The dynamic upper bound on the year is enforced by the bookyear tag.
type CreateBookInput struct {
	Title         string `validate:"required,max=200"`
	Author        string `validate:"required,max=100"`
	Genre         string `validate:"required,max=50"`
	PublishedYear int    `validate:"required,min=1000,bookyear"`
}

// UpdateBookInput carries a partial book update. Nil fields are untouched;
// supplied required fields must not be empty.
type UpdateBookInput struct {
	Title         *string `validate:"omitempty,max=200"`
	Author        *string `validate:"omitempty,max=100"`
	Genre         *string `validate:"omitempty,max=50"`
	PublishedYear *int    `validate:"omitempty,min=1000,bookyear"`
}

// BookService implements the catalog operations. All operations require an
// authenticated viewer; mutations additionally require the creator or an admin.
type BookService interface {
	List(ctx context.Context, viewer *domain.User, filter BookFilter, limit, offset int) ([]*domain.Book, error)
	Get(ctx context.Context, viewer *domain.User, id string) (*domain.Book, error)
	Search(ctx context.Context, viewer *domain.User, query string, limit, offset int) ([]*domain.Book, error)
	Create(ctx context.Context, viewer *domain.User, input CreateBookInput) (*domain.Book, error)
	Update(ctx context.Context, viewer *domain.User, id string, input UpdateBookInput) (*domain.Book, error)
	// Delete removes the record and returns a confirmation message.
	Delete(ctx context.Context, viewer *domain.User, id string) (string, error)
}
