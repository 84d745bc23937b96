package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/openshelf/book-catalog/internal/api/metrics"
	"github.com/openshelf/book-catalog/internal/core/domain"
	"github.com/openshelf/book-catalog/internal/core/ports"
)

type viewerKey struct{}

// WithViewer returns a context carrying the authenticated user.
func WithViewer(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, viewerKey{}, user)
}

// ViewerFrom extracts the authenticated user from the context, or nil for an
// anonymous request.
func ViewerFrom(ctx context.Context) *domain.User {
	user, _ := ctx.Value(viewerKey{}).(*domain.User)
	return user
}

// Auth resolves the optional bearer token and injects the viewer into the
// request context. Absent, malformed or invalid tokens leave the request
// anonymous; individual resolvers decide whether anonymity is acceptable.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get("Authorization"))
			if token == "" {
				return next(c)
			}

			user, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				reason := "invalid_token"
				if errors.Is(err, domain.ErrInactiveUser) {
					reason = "inactive_user"
				}
				metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
				return next(c)
			}

			req := c.Request()
			c.SetRequest(req.WithContext(WithViewer(req.Context(), user)))
			return next(c)
		}
	}
}

// bearerToken extracts the token from an Authorization header, or returns ""
// when the header is absent or not a bearer scheme.
func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
