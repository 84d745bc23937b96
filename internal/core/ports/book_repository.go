package ports

import (
	"context"

	"github.com/openshelf/book-catalog/internal/core/domain"
)

// BookFilter narrows a book listing. String fields match as case-insensitive
// substrings, the year matches exactly; zero values are ignored.
type BookFilter struct {
	Title         string
	Author        string
	Genre         string
	PublishedYear *int
}

// BookUpdate describes a partial book update. Nil fields are left untouched.
type BookUpdate struct {
	Title         *string
	Author        *string
	Genre         *string
	PublishedYear *int
}

// BookRepository defines the persistence interface for catalog records.
type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) (*domain.Book, error)
	FindByID(ctx context.Context, id string) (*domain.Book, error)
	// Find lists books matching the filter, newest first.
	Find(ctx context.Context, filter BookFilter, limit, offset int) ([]*domain.Book, error)
	// Search matches a case-insensitive substring against title, author or genre.
	Search(ctx context.Context, query string, limit, offset int) ([]*domain.Book, error)
	// Update applies the non-nil fields and returns the updated book.
	Update(ctx context.Context, id string, upd BookUpdate) (*domain.Book, error)
	Delete(ctx context.Context, id string) error
}
