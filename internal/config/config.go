package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config aggregates runtime configuration for the server, worker and terminal client.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	AMQP     AMQPConfig
	Logger   LoggerConfig
	Client   ClientConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Env                string        `envconfig:"APP_ENV" default:"development"`
	Addr               string        `envconfig:"APP_ADDR" default:":8080"`
	RequestTimeout     time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`
	ShutdownTimeout    time.Duration `envconfig:"APP_SHUTDOWN_TIMEOUT" default:"10s"`
	RateLimitPerMinute int           `envconfig:"RATE_LIMIT_PER_MINUTE" default:"120"`
}

// DatabaseConfig holds DB connection values. URL wins over the discrete fields when set.
type DatabaseConfig struct {
	URL      string `envconfig:"DATABASE_URL"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"crm"`
	MaxConns int    `envconfig:"DB_MAX_CONNS" default:"10"`
}

// RedisConfig configures the customer list cache. Empty Addr disables caching.
type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	TTL      time.Duration `envconfig:"CACHE_TTL" default:"1m"`
}

// AMQPConfig configures the customer event broker. Empty URL keeps events in-process.
type AMQPConfig struct {
	URL   string `envconfig:"AMQP_URL"`
	Queue string `envconfig:"AMQP_QUEUE" default:"customer_events"`
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

// ClientConfig configures the terminal client.
type ClientConfig struct {
	APIURL  string        `envconfig:"CRM_API_URL" default:"http://localhost:8080"`
	Timeout time.Duration `envconfig:"CRM_CLIENT_TIMEOUT" default:"10s"`
}

// Load reads configuration from the environment, after loading .env if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name,
	)
}

// IsProduction returns true when the application runs in production.
func (a AppConfig) IsProduction() bool {
	return a.Env == "production"
}
