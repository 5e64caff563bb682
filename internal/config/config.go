package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds environment-driven configuration.
type Config struct {
	Addr        string        `envconfig:"STOREFRONT_ADDR" default:":8080"`
	DatabaseURL string        `envconfig:"DATABASE_URL" required:"true"`
	JWTSecret   string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL    time.Duration `envconfig:"TOKEN_TTL" default:"72h"`

	// OrderTimeout bounds the whole order-placement transaction.
	OrderTimeout time.Duration `envconfig:"ORDER_TIMEOUT" default:"10s"`

	DBMaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	DBMaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	DBConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`

	// KafkaBrokers left empty disables event publishing.
	KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`
	KafkaTopic   string   `envconfig:"KAFKA_ORDER_TOPIC" default:"storefront.orders"`

	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	CORSOrigins string `envconfig:"CORS_ALLOW_ORIGINS" default:"*"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
