package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	awspkg "github.com/sOuL2000s/Shoppy-Assignment-First-Track/pkg/aws"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Port           string
	Env            string
	Postgres       PostgresConfig
	RedisURL       string
	CartTTL        time.Duration
	JWTSecret      string
	AllowedOrigins []string

	EventsBackend       string // kafka, sns or none
	KafkaBrokers        []string
	OrderEventsTopic    string
	OrderEventsTopicARN string

	CloudWatchEnabled bool
	UseSecrets        bool
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DB       string
	SSLMode  string
	TimeZone string
}

// DSN returns the libpq connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		p.Host, p.User, p.Password, p.DB, p.Port, p.SSLMode, p.TimeZone,
	)
}

const (
	EventsKafka = "kafka"
	EventsSNS   = "sns"
	EventsNone  = "none"
)

// Load reads the environment (and .env when present). When AWS_USE_SECRETS
// is true the database credentials and JWT secret come from Secrets Manager.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()

	cfg := fromEnv()

	if cfg.UseSecrets {
		awsCfg, err := awspkg.LoadAWSConfig(ctx)
		if err != nil {
			return nil, err
		}
		if err := applySecrets(ctx, cfg, awspkg.NewSecretsClient(awsCfg)); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromEnv() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("APP_ENV", "development"),
		Postgres: PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DB:       os.Getenv("POSTGRES_DB"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
			TimeZone: getEnv("POSTGRES_TIMEZONE", "UTC"),
		},
		RedisURL:            getEnv("REDIS_URL", "redis://localhost:6379"),
		CartTTL:             getDuration("CART_TTL", 7*24*time.Hour),
		JWTSecret:           strings.TrimSpace(os.Getenv("JWT_SECRET")),
		AllowedOrigins:      splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		EventsBackend:       strings.ToLower(getEnv("EVENTS_BACKEND", EventsNone)),
		KafkaBrokers:        splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
		OrderEventsTopic:    getEnv("ORDER_EVENTS_TOPIC", "order.placed"),
		OrderEventsTopicARN: os.Getenv("ORDER_EVENTS_SNS_TOPIC_ARN"),
		CloudWatchEnabled:   getBool("CLOUDWATCH_ENABLED"),
		UseSecrets:          getBool("AWS_USE_SECRETS"),
	}
}

type dbCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	DBName   string `json:"dbname"`
}

func applySecrets(ctx context.Context, cfg *Config, sm awspkg.SecretGetter) error {
	if raw, err := sm.GetSecret(ctx, "storefront/DB_CREDENTIALS"); err == nil && raw != "" {
		var creds dbCredentials
		if err := json.Unmarshal([]byte(raw), &creds); err != nil {
			return fmt.Errorf("invalid storefront/DB_CREDENTIALS secret: %w", err)
		}
		overlay(&cfg.Postgres.User, creds.Username)
		overlay(&cfg.Postgres.Password, creds.Password)
		overlay(&cfg.Postgres.Host, creds.Host)
		overlay(&cfg.Postgres.Port, creds.Port)
		overlay(&cfg.Postgres.DB, creds.DBName)
	}

	if jwt, err := sm.GetSecret(ctx, "storefront/JWT_SECRET"); err == nil && jwt != "" {
		cfg.JWTSecret = strings.TrimSpace(jwt)
	}
	return nil
}

// Validate reports the first missing required setting.
func (c *Config) Validate() error {
	switch {
	case c.Postgres.User == "":
		return fmt.Errorf("POSTGRES_USER not set")
	case c.Postgres.Password == "":
		return fmt.Errorf("POSTGRES_PASSWORD not set")
	case c.Postgres.DB == "":
		return fmt.Errorf("POSTGRES_DB not set")
	case c.JWTSecret == "":
		return fmt.Errorf("JWT_SECRET is required")
	case c.CartTTL <= 0:
		return fmt.Errorf("CART_TTL must be positive")
	}

	switch c.EventsBackend {
	case EventsNone:
	case EventsKafka:
		if len(c.KafkaBrokers) == 0 {
			return fmt.Errorf("KAFKA_BROKERS is required when EVENTS_BACKEND=kafka")
		}
	case EventsSNS:
		if c.OrderEventsTopicARN == "" {
			return fmt.Errorf("ORDER_EVENTS_SNS_TOPIC_ARN is required when EVENTS_BACKEND=sns")
		}
	default:
		return fmt.Errorf("unknown EVENTS_BACKEND %q", c.EventsBackend)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	// plain integers are seconds
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultVal
}

func getBool(key string) bool {
	b, _ := strconv.ParseBool(os.Getenv(key))
	return b
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
