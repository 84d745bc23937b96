package api

import (
	"fmt"
	"net/http"

	"github.com/graphql-go/handler"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/openshelf/book-catalog/internal/api/graph"
	"github.com/openshelf/book-catalog/internal/api/middleware"
	"github.com/openshelf/book-catalog/internal/core/ports"
	"github.com/openshelf/book-catalog/internal/infrastructure/config"
	"github.com/openshelf/book-catalog/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, resolver *graph.Resolver, auth ports.AuthService) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("bookcatalog"))

	// --- GraphQL endpoint ---
	schema, err := graph.NewSchema(resolver)
	if err != nil {
		return nil, fmt.Errorf("build schema: %w", err)
	}
	gqlHandler := handler.New(&handler.Config{
		Schema:   &schema,
		Pretty:   cfg.IsDevelopment(),
		GraphiQL: cfg.IsDevelopment(),
	})

	authMiddleware := middleware.Auth(auth)
	e.POST("/graphql", echo.WrapHandler(gqlHandler), authMiddleware)
	e.GET("/graphql", echo.WrapHandler(gqlHandler), authMiddleware)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, nil
}
