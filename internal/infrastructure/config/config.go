package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Host       string        `env:"HOST,        default=0.0.0.0"`
	Port       string        `env:"PORT,        default=8080"`
	Env        string        `env:"ENV,         default=development"`
	LogLevel   string        `env:"LOG_LEVEL,   default=info"`
	JWTSecret  string        `env:"JWT_SECRET"`
	JWTTTL     time.Duration `env:"JWT_TTL,     default=168h"`
	CORSOrigin string        `env:"CORS_ORIGIN, default=http://localhost:3001"`

	Mongo MongoConfig
	Redis RedisConfig
	Login LoginConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=book_catalog"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type LoginConfig struct {
	MaxAttempts   int           `env:"LOGIN_MAX_ATTEMPTS,   default=5"`
	AttemptWindow time.Duration `env:"LOGIN_ATTEMPT_WINDOW, default=15m"`
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
