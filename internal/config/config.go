package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/seafuel/service-voyage/internal/platform/database"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "VOYAGE"

// ServiceConfig holds all configuration for the voyage service.
type ServiceConfig struct {
	Port     string
	AppEnv   string
	Routes   RoutesConfig
	Auth     AuthConfig
	Amap     AmapConfig
	Report   ReportConfig
	DBConfig database.PostgresConfig
	Kafka    KafkaConfig
}

// RoutesConfig selects and locates the route store.
type RoutesConfig struct {
	Backend            string
	Dir                string
	DefaultOrigin      string
	DefaultDestination string
}

// HasDefault reports whether a fallback route pair is configured.
func (c RoutesConfig) HasDefault() bool {
	return c.DefaultOrigin != "" && c.DefaultDestination != ""
}

// AuthConfig holds the credential store and token settings.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	Backend   string
	// Users maps usernames to plaintext passwords or bcrypt hashes.
	Users map[string]string
	// InsecureSecret is set when no secret was configured and the
	// development fallback is in use.
	InsecureSecret bool
}

// AmapConfig holds the reverse-geocoding client settings.
type AmapConfig struct {
	APIKey    string
	BaseURL   string
	Timeout   time.Duration
	CacheSize int
	CacheTTL  time.Duration
}

// ReportConfig holds PDF rendering settings.
type ReportConfig struct {
	Title    string
	FontPath string
}

// KafkaConfig holds the optional activity event settings.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Enabled reports whether events should be published.
func (c KafkaConfig) Enabled() bool { return len(c.Brokers) > 0 }

// UsesPostgres reports whether any store is backed by PostgreSQL.
func (c *ServiceConfig) UsesPostgres() bool {
	return c.Routes.Backend == BackendPostgres || c.Auth.Backend == BackendPostgres
}

// Store backends.
const (
	BackendFile     = "file"
	BackendStatic   = "static"
	BackendPostgres = "postgres"
)

// Application environments.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// IsDevelopment reports whether the service runs with development conveniences.
func (c *ServiceConfig) IsDevelopment() bool {
	return c.AppEnv == EnvDevelopment
}

// Load reads configuration from .env, an optional config.yaml and environment variables.
func Load() (*ServiceConfig, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}
	return FromViper(v)
}

// FromViper builds a ServiceConfig from an already populated viper instance.
func FromViper(v *viper.Viper) (*ServiceConfig, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &ServiceConfig{
		Port:   normalizePort(v.GetString("service_port")),
		AppEnv: v.GetString("app_env"),
		Routes: RoutesConfig{
			Backend:            strings.ToLower(v.GetString("routes.backend")),
			Dir:                v.GetString("routes.dir"),
			DefaultOrigin:      v.GetString("routes.default_origin"),
			DefaultDestination: v.GetString("routes.default_destination"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("auth.jwt_secret"),
			TokenTTL:  v.GetDuration("auth.token_ttl"),
			Backend:   strings.ToLower(v.GetString("auth.backend")),
			Users:     loadUsers(v),
		},
		Amap: AmapConfig{
			APIKey:    v.GetString("amap.api_key"),
			BaseURL:   strings.TrimRight(v.GetString("amap.base_url"), "/"),
			Timeout:   v.GetDuration("amap.timeout"),
			CacheSize: v.GetInt("amap.cache_size"),
			CacheTTL:  v.GetDuration("amap.cache_ttl"),
		},
		Report: ReportConfig{
			Title:    v.GetString("report.title"),
			FontPath: v.GetString("report.font_path"),
		},
		DBConfig: database.PostgresConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetString("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			DBName:   v.GetString("db.name"),
			SSLMode:  v.GetString("db.sslmode"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetStringSlice("kafka.brokers")),
			Topic:   v.GetString("kafka.topic"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service_port", "5001")
	v.SetDefault("app_env", EnvProduction)

	v.SetDefault("routes.backend", BackendFile)
	v.SetDefault("routes.dir", "data/routes")
	v.SetDefault("routes.default_origin", "")
	v.SetDefault("routes.default_destination", "")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.backend", BackendStatic)
	v.SetDefault("auth.admin_user", "")
	v.SetDefault("auth.admin_password", "")

	v.SetDefault("amap.api_key", "")
	v.SetDefault("amap.base_url", "https://restapi.amap.com")
	v.SetDefault("amap.timeout", 10*time.Second)
	v.SetDefault("amap.cache_size", 1024)
	v.SetDefault("amap.cache_ttl", 24*time.Hour)

	v.SetDefault("report.title", "Ship Fuel Saving Report")
	v.SetDefault("report.font_path", "")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "voyage")
	v.SetDefault("db.password", "voyage")
	v.SetDefault("db.name", "voyage")
	v.SetDefault("db.sslmode", "disable")

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "voyage.events")
}

// loadUsers merges the auth.users map with the single-user env shortcut
// (VOYAGE_AUTH_ADMIN_USER / VOYAGE_AUTH_ADMIN_PASSWORD).
func loadUsers(v *viper.Viper) map[string]string {
	users := make(map[string]string)
	for name, secret := range v.GetStringMapString("auth.users") {
		name = strings.TrimSpace(name)
		if name != "" && secret != "" {
			users[name] = secret
		}
	}
	if name := strings.TrimSpace(v.GetString("auth.admin_user")); name != "" {
		if secret := v.GetString("auth.admin_password"); secret != "" {
			users[name] = secret
		}
	}
	return users
}

func (c *ServiceConfig) validate() error {
	switch c.Routes.Backend {
	case BackendFile, BackendPostgres:
	default:
		return fmt.Errorf("routes.backend must be %q or %q, got %q", BackendFile, BackendPostgres, c.Routes.Backend)
	}
	switch c.Auth.Backend {
	case BackendStatic, BackendPostgres:
	default:
		return fmt.Errorf("auth.backend must be %q or %q, got %q", BackendStatic, BackendPostgres, c.Auth.Backend)
	}
	if c.Auth.JWTSecret == "" {
		if !c.IsDevelopment() {
			return errors.New("auth.jwt_secret is required outside development")
		}
		c.Auth.JWTSecret = "development-only-secret"
		c.Auth.InsecureSecret = true
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth.token_ttl must be positive")
	}
	if (c.Routes.DefaultOrigin == "") != (c.Routes.DefaultDestination == "") {
		return errors.New("routes.default_origin and routes.default_destination must be set together")
	}
	return nil
}

func normalizePort(port string) string {
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

// splitList accepts both YAML lists and comma separated env values.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
