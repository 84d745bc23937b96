package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/openshelf/book-catalog/internal/core/domain"
	"github.com/openshelf/book-catalog/internal/core/ports"
	"github.com/openshelf/book-catalog/internal/core/validation"
)

// BookService implements the catalog CRUD. Reads require an authenticated
// viewer; mutations additionally require the record's creator or an admin.
type BookService struct {
	books    ports.BookRepository
	validate *validation.Validator
	logger   zerolog.Logger
}

func NewBookService(books ports.BookRepository, validate *validation.Validator, logger zerolog.Logger) *BookService {
	return &BookService{books: books, validate: validate, logger: logger}
}

func (s *BookService) List(ctx context.Context, viewer *domain.User, filter ports.BookFilter, limit, offset int) ([]*domain.Book, error) {
	if viewer == nil {
		return nil, domain.ErrUnauthenticated
	}
	limit, offset = clampPage(limit, offset)
	return s.books.Find(ctx, filter, limit, offset)
}

func (s *BookService) Get(ctx context.Context, viewer *domain.User, id string) (*domain.Book, error) {
	if viewer == nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.books.FindByID(ctx, id)
}

func (s *BookService) Search(ctx context.Context, viewer *domain.User, query string, limit, offset int) ([]*domain.Book, error) {
	if viewer == nil {
		return nil, domain.ErrUnauthenticated
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.NewValidationError("search query is required")
	}
	limit, offset = clampPage(limit, offset)
	return s.books.Search(ctx, query, limit, offset)
}

func (s *BookService) Create(ctx context.Context, viewer *domain.User, input ports.CreateBookInput) (*domain.Book, error) {
	if viewer == nil {
		return nil, domain.ErrUnauthenticated
	}

	input.Title = strings.TrimSpace(input.Title)
	input.Author = strings.TrimSpace(input.Author)
	input.Genre = strings.TrimSpace(input.Genre)

	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	book := &domain.Book{
		Title:         input.Title,
		Author:        input.Author,
		Genre:         input.Genre,
		PublishedYear: input.PublishedYear,
		CreatedBy:     viewer.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.books.Create(ctx, book)
	if err != nil {
		s.logger.Error().Err(err).Str("title", input.Title).Msg("failed to create book")
		return nil, err
	}

	s.logger.Info().Str("book_id", created.ID).Str("title", created.Title).Str("created_by", viewer.Username).Msg("book created")
	return created, nil
}

func (s *BookService) Update(ctx context.Context, viewer *domain.User, id string, input ports.UpdateBookInput) (*domain.Book, error) {
	if viewer == nil {
		return nil, domain.ErrUnauthenticated
	}

	book, err := s.books.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.CanManage(book.CreatedBy) {
		return nil, domain.ErrForbidden
	}

	// Supplied required fields must remain non-empty after trimming.
	if input.Title != nil {
		trimmed := strings.TrimSpace(*input.Title)
		if trimmed == "" {
			return nil, domain.NewValidationError("title cannot be empty")
		}
		input.Title = &trimmed
	}
	if input.Author != nil {
		trimmed := strings.TrimSpace(*input.Author)
		if trimmed == "" {
			return nil, domain.NewValidationError("author cannot be empty")
		}
		input.Author = &trimmed
	}
	if input.Genre != nil {
		trimmed := strings.TrimSpace(*input.Genre)
		if trimmed == "" {
			return nil, domain.NewValidationError("genre cannot be empty")
		}
		input.Genre = &trimmed
	}

	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}

	updated, err := s.books.Update(ctx, id, ports.BookUpdate{
		Title:         input.Title,
		Author:        input.Author,
		Genre:         input.Genre,
		PublishedYear: input.PublishedYear,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("book_id", id).Str("updated_by", viewer.Username).Msg("book updated")
	return updated, nil
}

func (s *BookService) Delete(ctx context.Context, viewer *domain.User, id string) (string, error) {
	if viewer == nil {
		return "", domain.ErrUnauthenticated
	}

	book, err := s.books.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	if !viewer.CanManage(book.CreatedBy) {
		return "", domain.ErrForbidden
	}

	if err := s.books.Delete(ctx, id); err != nil {
		return "", err
	}

	s.logger.Info().Str("book_id", id).Str("title", book.Title).Str("deleted_by", viewer.Username).Msg("book deleted")
	return fmt.Sprintf("Book %q has been successfully deleted", book.Title), nil
}
