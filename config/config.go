package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	aws_pkg "bookstore-service/pkg/aws"

	"github.com/joho/godotenv"
)

const dbSecretName = "bookstore/DB_CREDENTIALS"

// Config holds all configuration for the bookstore service.
type Config struct {
	Env  string
	Port string

	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string
	PostgresSSLMode  string
	PostgresTimeZone string

	// Optional; the book cache is disabled when empty.
	RedisURL     string
	BookCacheTTL time.Duration

	JWTSecret           string
	AccessTokenTTL      time.Duration
	TrustGatewayHeaders bool

	// Order events go to SNS, Kafka, both or neither.
	OrderEventsSNSTopicARN string
	KafkaBrokers           []string
	OrderEventsTopic       string

	RequestTimeout time.Duration
	// Browser origins allowed by CORS. Empty allows any origin without credentials.
	CORSAllowedOrigins []string
}

// SecretGetter reads a named secret. *aws_pkg.SecretsClient implements it.
type SecretGetter interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// Load reads configuration from an optional .env file and the environment.
// With AWS_USE_SECRETS=true the database credentials are overridden from
// Secrets Manager.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var secrets SecretGetter
	if os.Getenv("AWS_USE_SECRETS") == "true" {
		awsCfg, err := aws_pkg.LoadAWSConfig(context.Background())
		if err != nil {
			return nil, err
		}
		secrets = aws_pkg.NewSecretsClient(awsCfg)
	}
	return load(context.Background(), secrets)
}

func load(ctx context.Context, secrets SecretGetter) (*Config, error) {
	cfg := &Config{
		Env:                    getEnv("APP_ENV", "development"),
		Port:                   getEnv("PORT", "8080"),
		PostgresUser:           os.Getenv("POSTGRES_USER"),
		PostgresPassword:       os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:             os.Getenv("POSTGRES_DB"),
		PostgresHost:           os.Getenv("POSTGRES_HOST"),
		PostgresPort:           getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:        getEnv("POSTGRES_SSLMODE", "disable"),
		PostgresTimeZone:       getEnv("POSTGRES_TIMEZONE", "UTC"),
		RedisURL:               os.Getenv("REDIS_URL"),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		OrderEventsSNSTopicARN: os.Getenv("ORDER_EVENTS_SNS_TOPIC_ARN"),
		KafkaBrokers:           splitList(os.Getenv("KAFKA_BROKERS")),
		OrderEventsTopic:       getEnv("ORDER_EVENTS_TOPIC", "order-events"),
		CORSAllowedOrigins:     splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}

	var err error
	if cfg.BookCacheTTL, err = getDuration("BOOK_CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.AccessTokenTTL, err = getDuration("ACCESS_TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.TrustGatewayHeaders, err = getBool("TRUST_GATEWAY_HEADERS", false); err != nil {
		return nil, err
	}

	if secrets != nil {
		if err := applyDBSecret(ctx, cfg, secrets); err != nil {
			return nil, err
		}
	}

	if cfg.PostgresUser == "" || cfg.PostgresPassword == "" || cfg.PostgresDB == "" || cfg.PostgresHost == "" {
		return nil, fmt.Errorf("database config incomplete")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set")
	}
	return cfg, nil
}

// LoadDatabase reads only what the migrate and create-admin commands need.
func LoadDatabase() (*Config, error) {
	_ = godotenv.Load()
	cfg := &Config{
		Env:              getEnv("APP_ENV", "development"),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		PostgresTimeZone: getEnv("POSTGRES_TIMEZONE", "UTC"),
	}
	if cfg.PostgresUser == "" || cfg.PostgresPassword == "" || cfg.PostgresDB == "" || cfg.PostgresHost == "" {
		return nil, fmt.Errorf("database config incomplete")
	}
	return cfg, nil
}

// DSN is the postgres connection string for gorm.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort, c.PostgresSSLMode, c.PostgresTimeZone,
	)
}

func applyDBSecret(ctx context.Context, cfg *Config, secrets SecretGetter) error {
	raw, err := secrets.GetSecret(ctx, dbSecretName)
	if err != nil {
		return err
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return fmt.Errorf("secret %s is not a JSON object: %w", dbSecretName, err)
	}
	overrides := map[string]*string{
		"POSTGRES_USER":     &cfg.PostgresUser,
		"POSTGRES_PASSWORD": &cfg.PostgresPassword,
		"POSTGRES_DB":       &cfg.PostgresDB,
		"POSTGRES_HOST":     &cfg.PostgresHost,
		"POSTGRES_PORT":     &cfg.PostgresPort,
	}
	for key, field := range overrides {
		if v, ok := m[key]; ok && v != "" {
			*field = v
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getBool(key string, fallback bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
