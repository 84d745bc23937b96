package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/openshelf/book-catalog/internal/core/domain"
	"github.com/openshelf/book-catalog/internal/core/ports"
)

type stubAuthService struct {
	user  *domain.User
	token string
}

func (s *stubAuthService) Register(context.Context, *domain.User, ports.RegisterInput) (*domain.AuthPayload, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuthService) Login(context.Context, ports.LoginInput) (*domain.AuthPayload, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuthService) Authenticate(_ context.Context, token string) (*domain.User, error) {
	if token == s.token {
		return s.user, nil
	}
	return nil, domain.ErrInvalidCredentials
}

func runAuth(t *testing.T, auth *stubAuthService, header string) *domain.User {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *domain.User
	handler := Auth(auth)(func(c echo.Context) error {
		seen = ViewerFrom(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return seen
}

func TestAuth_ValidTokenInjectsViewer(t *testing.T) {
	user := &domain.User{ID: "u1", Username: "alice", Role: domain.RoleUser, IsActive: true}
	auth := &stubAuthService{user: user, token: "good-token"}

	seen := runAuth(t, auth, "Bearer good-token")
	if seen == nil || seen.ID != "u1" {
		t.Fatalf("expected viewer u1, got %+v", seen)
	}
}

func TestAuth_SchemeIsCaseInsensitive(t *testing.T) {
	user := &domain.User{ID: "u1", Username: "alice", Role: domain.RoleUser, IsActive: true}
	auth := &stubAuthService{user: user, token: "good-token"}

	if seen := runAuth(t, auth, "bearer good-token"); seen == nil {
		t.Fatalf("lowercase scheme should authenticate")
	}
}

func TestAuth_AnonymousPassThrough(t *testing.T) {
	auth := &stubAuthService{token: "good-token"}

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic abc123"},
		{"bare token", "good-token"},
		{"invalid token", "Bearer garbage"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if seen := runAuth(t, auth, tc.header); seen != nil {
				t.Fatalf("expected anonymous request, got viewer %+v", seen)
			}
		})
	}
}

func TestViewerFrom_MissingValue(t *testing.T) {
	if v := ViewerFrom(context.Background()); v != nil {
		t.Fatalf("expected nil viewer, got %+v", v)
	}
}
