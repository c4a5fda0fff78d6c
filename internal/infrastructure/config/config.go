package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Credential store backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Dev backend storage engines.
const (
	StorageMemory = "memory"
	StorageMongo  = "mongo"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// GraphQLEndpoint is the remote API every session operation is sent to.
	GraphQLEndpoint string `env:"GRAPHQL_ENDPOINT, default=http://localhost:8090/v1/graphql"`

	// CredentialBackend selects where the bearer credential is persisted.
	CredentialBackend string `env:"CREDENTIAL_BACKEND, default=file"`
	// CredentialDir overrides the XDG state directory for the file backend.
	CredentialDir string `env:"CREDENTIAL_DIR"`

	// ProtectedRoutes are the destinations the route guard gates.
	ProtectedRoutes []string `env:"PROTECTED_ROUTES, default=/dashboard,/preferences,/articles/*,/profile"`

	NotificationBuffer int `env:"NOTIFICATION_BUFFER, default=256"`

	Redis  RedisConfig
	DevAPI DevAPIConfig
	Mongo  MongoConfig
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// DevAPIConfig configures the development GraphQL backend.
type DevAPIConfig struct {
	Port      string        `env:"DEVAPI_PORT,       default=8090"`
	JWTSecret string        `env:"JWT_SECRET,        default=dev-secret-change-me"`
	TokenTTL  time.Duration `env:"DEVAPI_TOKEN_TTL,  default=24h"`
	Storage   string        `env:"DEVAPI_STORAGE,    default=memory"`
	SeedEmail string        `env:"DEVAPI_SEED_EMAIL, default=demo@example.com"`
	SeedPass  string        `env:"DEVAPI_SEED_PASSWORD, default=password123"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=newsreader"`
}

// IsProduction reports whether ENV is set to production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the backend selections and required values.
func (c *Config) Validate() error {
	var errs []error
	switch c.CredentialBackend {
	case BackendFile, BackendRedis:
	default:
		errs = append(errs, fmt.Errorf("CREDENTIAL_BACKEND must be one of %s, %s: got %q", BackendFile, BackendRedis, c.CredentialBackend))
	}
	switch c.DevAPI.Storage {
	case StorageMemory, StorageMongo:
	default:
		errs = append(errs, fmt.Errorf("DEVAPI_STORAGE must be one of %s, %s: got %q", StorageMemory, StorageMongo, c.DevAPI.Storage))
	}
	if strings.TrimSpace(c.GraphQLEndpoint) == "" {
		errs = append(errs, errors.New("GRAPHQL_ENDPOINT is required"))
	}
	if c.IsProduction() && c.DevAPI.JWTSecret == "dev-secret-change-me" {
		errs = append(errs, errors.New("JWT_SECRET must be set in production"))
	}
	return errors.Join(errs...)
}
