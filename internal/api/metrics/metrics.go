// Package metrics defines and registers all custom Prometheus metrics for the
// book catalog API. It is the single source of truth for metric names, labels,
// and help strings. Collectors register with the default registry at import
// time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bookcatalog"

// GraphQLOperationsTotal counts resolved GraphQL operations.
// Labels:
//   - operation: the query or mutation name (e.g. "createBook")
//   - status: "ok" or "error"
var GraphQLOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "graphql_operations_total",
		Help:      "Total number of GraphQL operations resolved, by operation and status.",
	},
	[]string{"operation", "status"},
)

// GraphQLOperationDuration measures how long a single resolver takes.
var GraphQLOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "graphql_operation_duration_seconds",
		Help:      "Duration of GraphQL resolver execution.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// AuthFailuresTotal counts rejected bearer tokens.
// Label:
//   - reason: short description of the failure (e.g. "invalid_token", "inactive_user")
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of bearer tokens rejected at the API boundary.",
	},
	[]string{"reason"},
)

// UsersRegisteredTotal counts successful registrations.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of user accounts created.",
	},
)

// BooksCreatedTotal counts successful book creations.
var BooksCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "books_created_total",
		Help:      "Total number of books created.",
	},
)
