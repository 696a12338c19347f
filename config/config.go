package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const devJWTSecret = "development-secret"

// Environment is the deployment the process runs in, read from ENV.
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// CurrentEnvironment reads ENV, with CI=true taking precedence. Unknown or
// empty values mean development.
func CurrentEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}
	switch e := Environment(strings.ToLower(strings.TrimSpace(os.Getenv("ENV")))); e {
	case Test, Production:
		return e
	}
	return Development
}

// Strict reports whether missing secrets are fatal.
func (e Environment) Strict() bool {
	return e == Production || e == CI
}

// Config holds all configuration for the application
type Config struct {
	Environment Environment `env:"-"`

	// Server configuration
	ServerHost    string   `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	ServerPort    string   `env:"SERVER_PORT" envDefault:"8080"`
	PublicBaseURL string   `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:5173"`
	CORSOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	LogLevel      string   `env:"LOG_LEVEL" envDefault:"info"`

	// Database configuration
	DatabaseURL string `env:"DATABASE_URL"`
	DBHost      string `env:"DB_HOST" envDefault:"localhost"`
	DBPort      string `env:"DB_PORT" envDefault:"5432"`
	DBUser      string `env:"DB_USER" envDefault:"postgres"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBName      string `env:"DB_NAME" envDefault:"menuqr"`
	DBSSLMode   string `env:"DB_SSL_MODE" envDefault:"disable"`

	MigrationsDir string `env:"MIGRATIONS_DIR" envDefault:"migrations"`
	AutoMigrate   bool   `env:"AUTO_MIGRATE" envDefault:"true"`

	// Redis configuration
	RedisURL      string `env:"REDIS_URL"`
	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// JWT configuration
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// Generative provider
	OpenAIAPIKey    string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL   string        `env:"OPENAI_BASE_URL"`
	OpenAIModel     string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	ProviderTimeout time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"45s"`

	// Upload archive (S3 or any S3-compatible endpoint such as R2)
	S3Bucket    string `env:"S3_BUCKET_NAME"`
	S3Region    string `env:"AWS_REGION" envDefault:"us-east-1"`
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3AccessKey string `env:"S3_ACCESS_KEY_ID"`
	S3SecretKey string `env:"S3_SECRET_ACCESS_KEY"`

	SecretsDir string `env:"SECRETS_DIR" envDefault:"/run/secrets"`
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	environment := CurrentEnvironment()

	if environment == Development {
		// .env is optional; real environment variables win
		_ = godotenv.Load()
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	cfg.Environment = environment

	loadSecrets(cfg)

	if cfg.JWTSecret == "" && !environment.Strict() {
		cfg.JWTSecret = devJWTSecret
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadSecrets fills sensitive values that were not set in the environment from
// Docker secret files.
func loadSecrets(cfg *Config) {
	secrets := map[string]*string{
		"db_password":          &cfg.DBPassword,
		"jwt_secret":           &cfg.JWTSecret,
		"redis_password":       &cfg.RedisPassword,
		"openai_api_key":       &cfg.OpenAIAPIKey,
		"s3_secret_access_key": &cfg.S3SecretKey,
	}
	for name, field := range secrets {
		if *field != "" {
			continue
		}
		*field = readSecret(cfg.SecretsDir, name)
	}
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(dir, name string) string {
	if dir == "" {
		dir = "/run/secrets"
	}
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// DSN returns the postgres connection string.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// RedisAddr returns host:port for the redis client when no URL is configured.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// ListenAddr returns the address the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%s", c.ServerHost, c.ServerPort)
}
