package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/openshelf/book-catalog/internal/core/domain"
	"github.com/openshelf/book-catalog/internal/core/ports"
	"github.com/openshelf/book-catalog/internal/core/validation"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// UserService implements account queries and mutations with role and
// ownership gating. The acting viewer is passed explicitly into every call.
type UserService struct {
	users    ports.UserRepository
	validate *validation.Validator
	logger   zerolog.Logger
}

func NewUserService(users ports.UserRepository, validate *validation.Validator, logger zerolog.Logger) *UserService {
	return &UserService{users: users, validate: validate, logger: logger}
}

func (s *UserService) Get(ctx context.Context, viewer *domain.User, id string) (*domain.User, error) {
	if viewer == nil {
		return nil, domain.ErrUnauthenticated
	}
	if !viewer.IsAdmin() && viewer.ID != id {
		return nil, domain.ErrForbidden
	}
	return s.users.FindByID(ctx, id)
}

func (s *UserService) ByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, viewer *domain.User, filter ports.UserFilter, limit, offset int) ([]*domain.User, error) {
	if viewer == nil {
		return nil, domain.ErrUnauthenticated
	}
	if !viewer.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	limit, offset = clampPage(limit, offset)
	return s.users.Find(ctx, filter, limit, offset)
}

func (s *UserService) Search(ctx context.Context, viewer *domain.User, query string, limit, offset int) ([]*domain.User, error) {
	if viewer == nil {
		return nil, domain.ErrUnauthenticated
	}
	if !viewer.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.NewValidationError("search query is required")
	}
	limit, offset = clampPage(limit, offset)
	return s.users.Search(ctx, query, limit, offset)
}

func (s *UserService) Update(ctx context.Context, viewer *domain.User, id string, input ports.UpdateUserInput) (*domain.User, error) {
	if viewer == nil {
		return nil, domain.ErrUnauthenticated
	}
	if !viewer.IsAdmin() && viewer.ID != id {
		return nil, domain.ErrForbidden
	}

	// Role and active-flag changes are an admin capability; for everyone
	// else the fields are silently dropped, matching profile-update
	// semantics rather than failing the whole mutation.
	if !viewer.IsAdmin() {
		input.Role = nil
		input.IsActive = nil
	}

	if input.Username != nil {
		trimmed := strings.TrimSpace(*input.Username)
		if trimmed == "" {
			return nil, domain.NewValidationError("username cannot be empty")
		}
		input.Username = &trimmed
	}
	if input.Email != nil {
		trimmed := strings.TrimSpace(*input.Email)
		input.Email = &trimmed
	}

	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}

	updated, err := s.users.Update(ctx, id, ports.UserUpdate{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      input.Role,
		IsActive:  input.IsActive,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.NewValidationError("username or email is already taken")
		}
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Str("updated_by", viewer.ID).Msg("user updated")
	return updated, nil
}

func (s *UserService) ChangePassword(ctx context.Context, viewer *domain.User, input ports.ChangePasswordInput) (*domain.User, error) {
	if viewer == nil {
		return nil, domain.ErrUnauthenticated
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, viewer.ID)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcryptCost)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("password changed")
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now().UTC()
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, viewer *domain.User, id string) error {
	if viewer == nil {
		return domain.ErrUnauthenticated
	}
	if !viewer.IsAdmin() {
		return domain.ErrForbidden
	}
	if viewer.ID == id {
		return domain.ErrForbidden
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Str("deleted_by", viewer.ID).Msg("user deleted")
	return nil
}

func (s *UserService) ToggleStatus(ctx context.Context, viewer *domain.User, id string) (*domain.User, error) {
	if viewer == nil {
		return nil, domain.ErrUnauthenticated
	}
	if !viewer.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if viewer.ID == id {
		return nil, domain.ErrForbidden
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := !user.IsActive
	updated, err := s.users.Update(ctx, id, ports.UserUpdate{IsActive: &next})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Bool("is_active", next).Msg("user status toggled")
	return updated, nil
}

// clampPage normalizes pagination arguments.
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
