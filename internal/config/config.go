package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	HTTP     HTTPConfig
	GRPC     GRPCConfig
	Auth     AuthConfig
	Redis    RedisConfig
	Log      LogConfig
	Seed     SeedConfig
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Path string // SQLite database file path
}

// HTTPConfig contains REST server settings.
type HTTPConfig struct {
	Port        string
	CORSOrigins []string
}

// Address returns the listen address for the HTTP server.
func (h HTTPConfig) Address() string {
	return ":" + strings.TrimPrefix(h.Port, ":")
}

// GRPCConfig contains gRPC health server settings. Empty Address disables it.
type GRPCConfig struct {
	Address string
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	JWTSecret              string
	Issuer                 string
	TokenTTL               time.Duration
	AllowAdminRegistration bool
}

// RedisConfig enables token revocation when Addr is set.
type RedisConfig struct {
	Addr     string
	Password string
}

// LogConfig selects zerolog level and output format ("json" or "console").
type LogConfig struct {
	Level  string
	Format string
}

// SeedConfig holds the credentials of the admin seeded into an empty users table.
type SeedConfig struct {
	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

// MinSecretLength is the shortest accepted JWT signing secret.
const MinSecretLength = 16

// legacySecret is the placeholder that older deployments shipped with.
const legacySecret = "change_this_secret_in_prod"

const devSecret = "dev-secret-change-me-not-for-prod"

var (
	ErrSecretRequired = errors.New("JWT_SECRET environment variable is not set; required for production")
	ErrWeakSecret     = fmt.Errorf("JWT_SECRET must be at least %d bytes and not a known placeholder", MinSecretLength)
)

// Load loads configuration from an optional .env file and environment variables
// and requires a valid JWT_SECRET.
func Load() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if err := ValidateSecret(cfg.Auth.JWTSecret); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWithDefaults is like Load but substitutes a development JWT_SECRET when unset.
// WARNING: Only use for local tooling! Use Load() for the server.
func LoadWithDefaults() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = devSecret
	}
	return cfg, nil
}

// ValidateSecret reports whether secret is acceptable for signing tokens.
func ValidateSecret(secret string) error {
	if strings.TrimSpace(secret) == "" {
		return ErrSecretRequired
	}
	if len(secret) < MinSecretLength || secret == legacySecret {
		return ErrWeakSecret
	}
	return nil
}

func load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("db_source", "movies.db")
	v.SetDefault("port", "3000")
	v.SetDefault("cors_origins", "*")
	v.SetDefault("grpc_address", "")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("jwt_issuer", "movie-catalog")
	v.SetDefault("token_ttl", "1h")
	v.SetDefault("allow_admin_registration", true)
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("seed_admin_username", "admin")
	v.SetDefault("seed_admin_email", "admin@example.com")
	v.SetDefault("seed_admin_password", "admin123")

	ttl := v.GetDuration("token_ttl")
	if ttl <= 0 {
		return nil, fmt.Errorf("invalid TOKEN_TTL %q", v.GetString("token_ttl"))
	}

	cfg := &Config{
		Database: DatabaseConfig{Path: v.GetString("db_source")},
		HTTP: HTTPConfig{
			Port:        v.GetString("port"),
			CORSOrigins: splitList(v.GetString("cors_origins")),
		},
		GRPC: GRPCConfig{Address: v.GetString("grpc_address")},
		Auth: AuthConfig{
			JWTSecret:              v.GetString("jwt_secret"),
			Issuer:                 v.GetString("jwt_issuer"),
			TokenTTL:               ttl,
			AllowAdminRegistration: v.GetBool("allow_admin_registration"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis_addr"),
			Password: v.GetString("redis_password"),
		},
		Log: LogConfig{
			Level:  v.GetString("log_level"),
			Format: v.GetString("log_format"),
		},
		Seed: SeedConfig{
			AdminUsername: v.GetString("seed_admin_username"),
			AdminEmail:    v.GetString("seed_admin_email"),
			AdminPassword: v.GetString("seed_admin_password"),
		},
	}
	return cfg, nil
}

// loadDotEnv loads ENV_FILE (default .env) without overriding variables
// that are already set. A missing file is not an error.
func loadDotEnv() error {
	env := viper.New()
	env.AutomaticEnv()
	env.SetDefault("env_file", ".env")
	path := env.GetString("env_file")
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{DB: %s, HTTP: %s, gRPC: %q, Redis: %q, Auth: *** (masked) ***}",
		c.Database.Path, c.HTTP.Address(), c.GRPC.Address, c.Redis.Addr)
}
