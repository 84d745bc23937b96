// Package graph assembles the GraphQL schema and its resolvers. Each resolver
// reads the acting viewer from the request context, delegates to a core
// service, and maps domain errors to stable extension codes.
package graph

import (
	"github.com/graphql-go/graphql"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/openshelf/book-catalog/internal/api/metrics"
	"github.com/openshelf/book-catalog/internal/core/ports"
)

// Resolver holds the service dependencies shared by all field resolvers.
type Resolver struct {
	auth   ports.AuthService
	users  ports.UserService
	books  ports.BookService
	logger zerolog.Logger
}

func NewResolver(auth ports.AuthService, users ports.UserService, books ports.BookService, logger zerolog.Logger) *Resolver {
	return &Resolver{auth: auth, users: users, books: books, logger: logger}
}

// resolve wraps a field resolver with metrics and error mapping.
func (r *Resolver) resolve(op string, fn graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		timer := prometheus.NewTimer(metrics.GraphQLOperationDuration.WithLabelValues(op))
		defer timer.ObserveDuration()

		out, err := fn(p)
		status := "ok"
		if err != nil {
			status = "error"
			err = r.mapError(op, err)
		}
		metrics.GraphQLOperationsTotal.WithLabelValues(op, status).Inc()
		return out, err
	}
}

// --- argument helpers ---

func stringArg(args map[string]interface{}, name string) string {
	s, _ := args[name].(string)
	return s
}

func intArg(args map[string]interface{}, name string, def int) int {
	if n, ok := args[name].(int); ok {
		return n
	}
	return def
}

func inputArg(args map[string]interface{}, name string) map[string]interface{} {
	m, _ := args[name].(map[string]interface{})
	if m == nil {
		m = map[string]interface{}{}
	}
	return m
}

func optString(m map[string]interface{}, key string) *string {
	if v, ok := m[key].(string); ok {
		return &v
	}
	return nil
}

func optInt(m map[string]interface{}, key string) *int {
	if v, ok := m[key].(int); ok {
		return &v
	}
	return nil
}

func optBool(m map[string]interface{}, key string) *bool {
	if v, ok := m[key].(bool); ok {
		return &v
	}
	return nil
}
