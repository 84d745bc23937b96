package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/openshelf/book-catalog/internal/core/domain"
	"github.com/openshelf/book-catalog/internal/core/ports"
)

// stubUserRepo is an in-memory UserRepository preserving insertion order;
// listings are returned newest first, like the real repository.
type stubUserRepo struct {
	users []*domain.User
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username || (user.Email != "" && u.Email == user.Email) {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("user_%d", r.seq)
	r.users = append(r.users, created)
	return cloneUser(created), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Find(_ context.Context, filter ports.UserFilter, limit, offset int) ([]*domain.User, error) {
	var out []*domain.User
	for i := len(r.users) - 1; i >= 0; i-- {
		u := r.users[i]
		if filter.Role != nil && u.Role != *filter.Role {
			continue
		}
		if filter.IsActive != nil && u.IsActive != *filter.IsActive {
			continue
		}
		out = append(out, cloneUser(u))
	}
	return paginate(out, limit, offset), nil
}

func (r *stubUserRepo) Search(_ context.Context, query string, limit, offset int) ([]*domain.User, error) {
	q := strings.ToLower(query)
	var out []*domain.User
	for i := len(r.users) - 1; i >= 0; i-- {
		u := r.users[i]
		if containsFold(u.Username, q) || containsFold(u.Email, q) ||
			containsFold(u.FirstName, q) || containsFold(u.LastName, q) {
			out = append(out, cloneUser(u))
		}
	}
	return paginate(out, limit, offset), nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, upd ports.UserUpdate) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID != id {
			continue
		}
		if upd.Username != nil {
			for _, other := range r.users {
				if other.ID != id && other.Username == *upd.Username {
					return nil, domain.ErrUserExists
				}
			}
			u.Username = *upd.Username
		}
		if upd.Email != nil {
			u.Email = *upd.Email
		}
		if upd.FirstName != nil {
			u.FirstName = *upd.FirstName
		}
		if upd.LastName != nil {
			u.LastName = *upd.LastName
		}
		if upd.Role != nil {
			u.Role = *upd.Role
		}
		if upd.IsActive != nil {
			u.IsActive = *upd.IsActive
		}
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	for _, u := range r.users {
		if u.ID == id {
			u.PasswordHash = hash
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

// stubBookRepo is an in-memory BookRepository with the same filter and
// search semantics as the MongoDB implementation.
type stubBookRepo struct {
	books []*domain.Book
	seq   int
}

func newStubBookRepo() *stubBookRepo {
	return &stubBookRepo{}
}

func cloneBook(b *domain.Book) *domain.Book {
	if b == nil {
		return nil
	}
	clone := *b
	return &clone
}

func (r *stubBookRepo) Create(_ context.Context, book *domain.Book) (*domain.Book, error) {
	r.seq++
	created := cloneBook(book)
	created.ID = fmt.Sprintf("book_%d", r.seq)
	r.books = append(r.books, created)
	return cloneBook(created), nil
}

func (r *stubBookRepo) FindByID(_ context.Context, id string) (*domain.Book, error) {
	for _, b := range r.books {
		if b.ID == id {
			return cloneBook(b), nil
		}
	}
	return nil, domain.ErrBookNotFound
}

func (r *stubBookRepo) Find(_ context.Context, filter ports.BookFilter, limit, offset int) ([]*domain.Book, error) {
	var out []*domain.Book
	for i := len(r.books) - 1; i >= 0; i-- {
		b := r.books[i]
		if filter.Title != "" && !containsFold(b.Title, strings.ToLower(filter.Title)) {
			continue
		}
		if filter.Author != "" && !containsFold(b.Author, strings.ToLower(filter.Author)) {
			continue
		}
		if filter.Genre != "" && !containsFold(b.Genre, strings.ToLower(filter.Genre)) {
			continue
		}
		if filter.PublishedYear != nil && b.PublishedYear != *filter.PublishedYear {
			continue
		}
		out = append(out, cloneBook(b))
	}
	return paginateBooks(out, limit, offset), nil
}

func (r *stubBookRepo) Search(_ context.Context, query string, limit, offset int) ([]*domain.Book, error) {
	q := strings.ToLower(query)
	var out []*domain.Book
	for i := len(r.books) - 1; i >= 0; i-- {
		b := r.books[i]
		if containsFold(b.Title, q) || containsFold(b.Author, q) || containsFold(b.Genre, q) {
			out = append(out, cloneBook(b))
		}
	}
	return paginateBooks(out, limit, offset), nil
}

func (r *stubBookRepo) Update(_ context.Context, id string, upd ports.BookUpdate) (*domain.Book, error) {
	for _, b := range r.books {
		if b.ID != id {
			continue
		}
		if upd.Title != nil {
			b.Title = *upd.Title
		}
		if upd.Author != nil {
			b.Author = *upd.Author
		}
		if upd.Genre != nil {
			b.Genre = *upd.Genre
		}
		if upd.PublishedYear != nil {
			b.PublishedYear = *upd.PublishedYear
		}
		return cloneBook(b), nil
	}
	return nil, domain.ErrBookNotFound
}

func (r *stubBookRepo) Delete(_ context.Context, id string) error {
	for i, b := range r.books {
		if b.ID == id {
			r.books = append(r.books[:i], r.books[i+1:]...)
			return nil
		}
	}
	return domain.ErrBookNotFound
}

// stubThrottle counts failures in memory.
type stubThrottle struct {
	failures map[string]int
	max      int
}

func newStubThrottle(max int) *stubThrottle {
	return &stubThrottle{failures: make(map[string]int), max: max}
}

func (t *stubThrottle) TooMany(_ context.Context, key string) (bool, error) {
	return t.failures[key] >= t.max, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, key string) error {
	t.failures[key]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, key string) error {
	delete(t.failures, key)
	return nil
}

func containsFold(s, lowered string) bool {
	return strings.Contains(strings.ToLower(s), lowered)
}

func paginate(in []*domain.User, limit, offset int) []*domain.User {
	if offset >= len(in) {
		return nil
	}
	in = in[offset:]
	if limit > 0 && len(in) > limit {
		in = in[:limit]
	}
	return in
}

func paginateBooks(in []*domain.Book, limit, offset int) []*domain.Book {
	if offset >= len(in) {
		return nil
	}
	in = in[offset:]
	if limit > 0 && len(in) > limit {
		in = in[:limit]
	}
	return in
}
