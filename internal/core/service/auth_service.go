package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/openshelf/book-catalog/internal/core/domain"
	"github.com/openshelf/book-catalog/internal/core/ports"
	"github.com/openshelf/book-catalog/internal/core/validation"
)

const (
	bcryptCost      = 12
	defaultTokenTTL = 7 * 24 * time.Hour
)

// AuthService implements registration, login and bearer-token verification.
type AuthService struct {
	users    ports.UserRepository
	validate *validation.Validator
	throttle ports.LoginThrottle
	secret   string
	tokenTTL time.Duration
	logger   zerolog.Logger
}

func NewAuthService(users ports.UserRepository, validate *validation.Validator, throttle ports.LoginThrottle, secret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{
		users:    users,
		validate: validate,
		throttle: throttle,
		secret:   secret,
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

func (s *AuthService) Register(ctx context.Context, actor *domain.User, input ports.RegisterInput) (*domain.AuthPayload, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)

	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}

	role := domain.RoleUser
	if input.Role == domain.RoleAdmin {
		if !actor.IsAdmin() {
			return nil, domain.ErrForbidden
		}
		role = domain.RoleAdmin
	}

	if _, err := s.users.FindByUsername(ctx, input.Username); err == nil {
		return nil, domain.NewValidationError("username already exists")
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.NewValidationError("username or email already exists")
		}
		return nil, err
	}

	token, err := s.issueToken(created)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Str("role", created.Role).Msg("user registered")
	return &domain.AuthPayload{Token: token, User: created}, nil
}

func (s *AuthService) Login(ctx context.Context, input ports.LoginInput) (*domain.AuthPayload, error) {
	input.Username = strings.TrimSpace(input.Username)
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}

	key := strings.ToLower(input.Username)
	if s.throttle != nil {
		blocked, err := s.throttle.TooMany(ctx, key)
		if err != nil {
			return nil, err
		}
		if blocked {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, key)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, domain.ErrInactiveUser
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		s.recordFailure(ctx, key)
		return nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, key); err != nil {
			s.logger.Warn().Err(err).Str("username", input.Username).Msg("failed to reset login throttle")
		}
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", user.Username).Msg("user logged in")
	return &domain.AuthPayload{Token: token, User: user}, nil
}

// Authenticate resolves a bearer token to an active user. Any parse,
// signature or lookup failure yields an authentication error, never a
// partial identity.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidCredentials
	}

	userID, _ := claims["sub"].(string)
	if userID == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrInactiveUser
	}
	return user, nil
}

// issueToken signs an HS256 token carrying the user id, role and, when
// present, the email.
func (s *AuthService) issueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}
	if user.Email != "" {
		claims["email"] = user.Email
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.secret))
}

func (s *AuthService) recordFailure(ctx context.Context, key string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, key); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record login failure")
	}
}
