package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Version identifies the running build. Override at build time with
// -ldflags "-X github.com/appservers/customer-api/internal/pkg/config.Version=...".
var Version = "1.0.0"

type Config struct {
	Port       string `env:"PORT,        default=3001"`
	Env        string `env:"ENV,         default=development"`
	ServerName string `env:"SERVER_NAME, default=app1"`
	LogLevel   string `env:"LOG_LEVEL,   default=info"`

	Postgres  PostgresConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type PostgresConfig struct {
	Host     string `env:"DB_HOST,      default=localhost"`
	Port     int    `env:"DB_PORT,      default=5432"`
	User     string `env:"DB_USER,      default=app_user"`
	Password string `env:"DB_PASSWORD,  default=password"`
	Database string `env:"DB_NAME,      default=crud_app"`
	SSLMode  string `env:"DB_SSLMODE,   default=disable"`
	MaxConns int32  `env:"DB_MAX_CONNS, default=10"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type RateLimitConfig struct {
	Window time.Duration `env:"RATE_LIMIT_WINDOW, default=15m"`
	Max    int64         `env:"RATE_LIMIT_MAX,    default=100"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
