package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Loader defines the interface for loading configuration.
type Loader interface {
	Load() (*Config, error)
	Validate(*Config) error
}

// ViperLoader implements Loader using Viper.
type ViperLoader struct {
	configFile         string
	envPrefix          string
	serviceNameDefault string
}

// NewViperLoader creates a ViperLoader.
// configFile may be empty; envPrefix is the prefix for environment variables
// (e.g. "SHOPAPI").
func NewViperLoader(configFile, envPrefix string) *ViperLoader {
	return &ViperLoader{
		configFile: configFile,
		envPrefix:  envPrefix,
	}
}

// WithServiceNameDefault sets the default service.name used when neither the
// config file nor the environment provides one.
func (l *ViperLoader) WithServiceNameDefault(serviceName string) *ViperLoader {
	if l == nil {
		return l
	}
	l.serviceNameDefault = strings.TrimSpace(serviceName)
	return l
}

// Load loads configuration with precedence: ENV > file > defaults.
func (l *ViperLoader) Load() (*Config, error) {
	v := viper.New()

	l.setDefaults(v, DefaultConfig())

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", l.configFile, err)
		}
	}

	v.SetEnvPrefix(l.envPrefix)
	l.bindLegacyEnvVars(v)
	l.bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := l.Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration can actually run a service.
// A missing database host, user or password is a fatal startup condition,
// never a per-request error.
func (l *ViperLoader) Validate(cfg *Config) error {
	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be in (0, 65535], got %d", cfg.HTTP.Port)
	}
	if cfg.Database.Host == "" {
		return fmt.Errorf("database.host is required (set MONGODB_HOST)")
	}
	if cfg.Database.Username == "" {
		return fmt.Errorf("database.username is required (set MONGODB_USER)")
	}
	if cfg.Database.Password == "" {
		return fmt.Errorf("database.password is required (set MONGODB_PASS)")
	}
	if cfg.Database.DatabaseName == "" {
		return fmt.Errorf("database.database_name is required")
	}
	return nil
}

func (l *ViperLoader) setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("router_type", d.RouterType)
	v.SetDefault("service.name", l.serviceNameDefault)
	v.SetDefault("service.environment", d.Service.Environment)

	v.SetDefault("http.port", d.HTTP.Port)
	v.SetDefault("http.read_timeout", d.HTTP.ReadTimeout)
	v.SetDefault("http.write_timeout", d.HTTP.WriteTimeout)
	v.SetDefault("http.idle_timeout", d.HTTP.IdleTimeout)

	v.SetDefault("cors.enabled", d.CORS.Enabled)
	v.SetDefault("cors.allow_all_origins", d.CORS.AllowAllOrigins)
	v.SetDefault("cors.allow_origins", d.CORS.AllowOrigins)
	v.SetDefault("cors.allow_methods", d.CORS.AllowMethods)
	v.SetDefault("cors.allow_headers", d.CORS.AllowHeaders)
	v.SetDefault("cors.allow_credentials", d.CORS.AllowCredentials)
	v.SetDefault("cors.max_age", d.CORS.MaxAge)

	v.SetDefault("database.host", d.Database.Host)
	v.SetDefault("database.port", d.Database.Port)
	v.SetDefault("database.username", d.Database.Username)
	v.SetDefault("database.password", d.Database.Password)
	v.SetDefault("database.auth_source", d.Database.AuthSource)
	v.SetDefault("database.auth_mechanism", d.Database.AuthMechanism)
	v.SetDefault("database.database_name", d.Database.DatabaseName)
	v.SetDefault("database.server_selection_timeout", d.Database.ServerSelectionTimeout)
	v.SetDefault("database.connect_timeout", d.Database.ConnectTimeout)
	v.SetDefault("database.operation_timeout", d.Database.OperationTimeout)

	v.SetDefault("observability.log_level", d.Observability.LogLevel)
	v.SetDefault("observability.log_format", d.Observability.LogFormat)
	v.SetDefault("observability.metrics_enabled", d.Observability.MetricsEnabled)
}

// bindEnvVars binds environment variables explicitly for nested keys, so that
// SHOPAPI_DATABASE_HOST overrides database.host and so on.
func (l *ViperLoader) bindEnvVars(v *viper.Viper) {
	keys := []string{
		"router_type",
		"service.name",
		"service.environment",
		"http.port",
		"http.read_timeout",
		"http.write_timeout",
		"http.idle_timeout",
		"cors.enabled",
		"cors.allow_all_origins",
		"cors.allow_origins",
		"cors.allow_methods",
		"cors.allow_headers",
		"cors.allow_credentials",
		"cors.max_age",
		"database.host",
		"database.port",
		"database.username",
		"database.password",
		"database.auth_source",
		"database.auth_mechanism",
		"database.database_name",
		"database.server_selection_timeout",
		"database.connect_timeout",
		"database.operation_timeout",
		"observability.log_level",
		"observability.log_format",
		"observability.metrics_enabled",
	}
	for _, key := range keys {
		envName := l.envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		_ = v.BindEnv(key, envName)
	}
}

// bindLegacyEnvVars maps the historical MONGODB_* variables onto the database
// keys. They take effect only when the prefixed variables are unset.
func (l *ViperLoader) bindLegacyEnvVars(v *viper.Viper) {
	legacy := map[string]string{
		"database.host":     "MONGODB_HOST",
		"database.username": "MONGODB_USER",
		"database.password": "MONGODB_PASS",
	}
	for key, envName := range legacy {
		prefixed := l.envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if os.Getenv(prefixed) != "" {
			continue
		}
		if value := os.Getenv(envName); value != "" {
			v.Set(key, value)
		}
	}
}
