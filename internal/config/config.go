// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP API server listens on (e.g. :8080).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// DatabaseURL is the Postgres DSN; empty until DB is wired.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// SiteBaseURL is the public base URL of the site, used to build absolute redirect targets (e.g. https://clubs.example.edu).
	SiteBaseURL string `mapstructure:"SITE_BASE_URL"`

	// JWTPrivateKey is the PEM-encoded private key (RSA or ECDSA) or path to file; used to sign session tokens at login.
	JWTPrivateKey string `mapstructure:"JWT_PRIVATE_KEY"`
	// JWTPublicKey is the PEM-encoded public key or path to file; used to verify session tokens.
	JWTPublicKey string `mapstructure:"JWT_PUBLIC_KEY"`
	// JWTIssuer is the iss claim (e.g. "campus-clubs-auth").
	JWTIssuer string `mapstructure:"JWT_ISSUER"`
	// JWTAudience is the aud claim (e.g. "campus-clubs-api").
	JWTAudience string `mapstructure:"JWT_AUDIENCE"`
	// SessionTTL is the session/access token lifetime (e.g. "12h").
	SessionTTL string `mapstructure:"SESSION_TTL"`
	// BcryptCost is the bcrypt cost factor (4–31); default 12.
	BcryptCost int `mapstructure:"BCRYPT_COST"`

	// EmailWorkerBaseURL is the base URL of the hosted functions platform that runs the email worker.
	// The trigger routes POST to {EmailWorkerBaseURL}/functions/v1/send-emails.
	EmailWorkerBaseURL string `mapstructure:"EMAIL_WORKER_BASE_URL"`
	// EmailWorkerAnonKey is the anonymous access key sent as the Bearer credential to the email worker.
	EmailWorkerAnonKey string `mapstructure:"EMAIL_WORKER_ANON_KEY"`
	// EmailWorkerSecret is the shared secret sent in the x-worker-secret header.
	EmailWorkerSecret string `mapstructure:"EMAIL_WORKER_SECRET"`

	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`

	// Activity telemetry (optional). When Kafka brokers are set, the API emits activity events to Kafka.
	// ActivityKafkaBrokers is a comma-separated list of Kafka broker addresses (e.g. "localhost:9092").
	ActivityKafkaBrokers string `mapstructure:"KAFKA_BROKERS"`
	// ActivityKafkaTopic is the Kafka topic for activity events (default campus-clubs-activity).
	ActivityKafkaTopic string `mapstructure:"ACTIVITY_KAFKA_TOPIC"`

	// OTLPEndpoint is the OTLP gRPC endpoint for traces/metrics (e.g. http://localhost:4317). Empty disables export.
	OTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	// OTLPInsecure forces plaintext OTLP export even for https endpoints (standard OTEL_EXPORTER_OTLP_INSECURE behavior).
	OTLPInsecure bool `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`

	// Worker-only: Loki URL for the activity worker to push logs (e.g. http://localhost:3100).
	LokiURL string `mapstructure:"LOKI_URL"`
	// KafkaGroupID is the consumer group ID for the activity worker.
	KafkaGroupID string `mapstructure:"KAFKA_GROUP_ID"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("SITE_BASE_URL", "")
	v.SetDefault("JWT_ISSUER", "campus-clubs-auth")
	v.SetDefault("JWT_AUDIENCE", "campus-clubs-api")
	v.SetDefault("SESSION_TTL", "12h")
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("EMAIL_WORKER_BASE_URL", "")
	v.SetDefault("EMAIL_WORKER_ANON_KEY", "")
	v.SetDefault("EMAIL_WORKER_SECRET", "")
	v.SetDefault("APP_ENV", "")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("ACTIVITY_KAFKA_TOPIC", "campus-clubs-activity")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", false)
	v.SetDefault("LOKI_URL", "")
	v.SetDefault("KAFKA_GROUP_ID", "campus-clubs-activity-worker")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}

	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = 12
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, errors.New("config: BCRYPT_COST must be between 4 and 31")
	}

	return &cfg, nil
}

// SessionDuration parses SessionTTL as a time.Duration. Returns 12h if unset or invalid.
func (c *Config) SessionDuration() time.Duration {
	d, err := time.ParseDuration(c.SessionTTL)
	if err != nil || d <= 0 {
		return 12 * time.Hour
	}
	return d
}

// ActivityKafkaBrokersList returns Kafka broker addresses from the comma-separated config.
// Used to decide if activity telemetry is enabled (non-empty list) and to create the producer.
func (c *Config) ActivityKafkaBrokersList() []string {
	if c == nil || c.ActivityKafkaBrokers == "" {
		return nil
	}
	parts := strings.Split(c.ActivityKafkaBrokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
