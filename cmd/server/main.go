package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openshelf/book-catalog/internal/api"
	"github.com/openshelf/book-catalog/internal/api/graph"
	"github.com/openshelf/book-catalog/internal/core/service"
	"github.com/openshelf/book-catalog/internal/core/validation"
	"github.com/openshelf/book-catalog/internal/infrastructure/config"
	mongodb "github.com/openshelf/book-catalog/internal/infrastructure/db/mongo"
	redisdb "github.com/openshelf/book-catalog/internal/infrastructure/db/redis"
	"github.com/openshelf/book-catalog/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	userRepo := mongodb.NewUserRepository(db)
	bookRepo := mongodb.NewBookRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}
	if err := bookRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create book indexes")
	}

	validate := validation.New()
	throttle := redisdb.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.AttemptWindow)

	authService := service.NewAuthService(userRepo, validate, throttle, cfg.JWTSecret, cfg.JWTTTL, log)
	userService := service.NewUserService(userRepo, validate, log)
	bookService := service.NewBookService(bookRepo, validate, log)

	resolver := graph.NewResolver(authService, userService, bookService, log)
	e, err := api.NewRouter(cfg, db, rdb, resolver, authService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	go func() {
		addr := cfg.Host + ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server stopped")
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
