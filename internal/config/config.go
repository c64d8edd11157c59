// Package config loads service configuration from a YAML file with
// environment variable overrides. A .env file (or the file named by ENV_FILE)
// is loaded first so local development does not need exported variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	defaultServiceName  = "soundscape-survey"
	defaultServicePort  = 8094
	defaultVersion      = "0.1.0"
	defaultLoggingLevel = "info"

	defaultMongoURI      = "mongodb://localhost:27017"
	defaultMongoDatabase = "soundscape"
	defaultCollection    = "submissions"

	defaultMaxSubmitsPerWindow = 5
	defaultWindowSeconds       = 15

	defaultSummaryLimit = 200
)

// Config holds the application configuration.
type Config struct {
	Service   ServiceConfig   `yaml:"service"`
	Mongo     MongoConfig     `yaml:"mongo"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Port    int    `env:"SURVEY_PORT" yaml:"port"`
	Debug   bool   `env:"APP_DEBUG"   yaml:"debug"`
	// SummaryLimit caps the submission list view.
	SummaryLimit int `yaml:"summary_limit"`
}

// MongoConfig holds document store configuration.
type MongoConfig struct {
	URI        string `env:"MONGODB_URI" yaml:"uri"`
	Database   string `env:"MONGODB_DB"  yaml:"database"`
	Collection string `yaml:"collection"`
}

// RateLimitConfig throttles the submission intake route. When RedisAddress is
// set the window is tracked in Redis (shared across replicas); otherwise an
// in-process per-IP limiter is used.
type RateLimitConfig struct {
	MaxPerWindow  int    `yaml:"max_per_window"`
	WindowSeconds int    `yaml:"window_seconds"`
	RedisAddress  string `env:"REDIS_ADDRESS"  yaml:"redis_address"`
	RedisPassword string `env:"REDIS_PASSWORD" yaml:"redis_password"`
	RedisDB       int    `env:"REDIS_DB"       yaml:"redis_db"`
}

// Window returns the rate limit window as a duration.
func (r *RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

// DashboardConfig gates the stats and summary routes with basic auth.
// Leaving the user empty disables the gate (useful in development).
type DashboardConfig struct {
	User     string `env:"DASHBOARD_USER"     yaml:"user"`
	Password string `env:"DASHBOARD_PASSWORD" yaml:"password"`
}

// Enabled reports whether the basic-auth gate is configured.
func (d *DashboardConfig) Enabled() bool {
	return d.User != ""
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `env:"LOG_LEVEL" yaml:"level"`
}

// Load reads the YAML config at path, applies defaults, then applies
// environment variable overrides (env always wins). A missing config file is
// not an error; defaults plus environment carry a dev setup.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, fmt.Errorf("load environment files: %w", err)
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if unmarshalErr := yaml.Unmarshal(data, &cfg); unmarshalErr != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, unmarshalErr)
		}
	case os.IsNotExist(err):
		// Fall through to defaults.
	default:
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	setDefaults(&cfg)
	applyEnvOverrides(&cfg)
	return &cfg, nil
}

// GetConfigPath returns the config path from CONFIG_PATH or the default.
func GetConfigPath(defaultPath string) string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return defaultPath
}

// loadEnvFiles loads .env files in priority order: ENV_FILE if set, otherwise
// .env.local then .env. Missing files are ignored.
func loadEnvFiles() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}
	for _, name := range []string{".env.local", ".env"} {
		if err := godotenv.Load(name); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	if cfg.Service.Name == "" {
		cfg.Service.Name = defaultServiceName
	}
	if cfg.Service.Version == "" {
		cfg.Service.Version = defaultVersion
	}
	if cfg.Service.Port == 0 {
		cfg.Service.Port = defaultServicePort
	}
	if cfg.Service.SummaryLimit == 0 {
		cfg.Service.SummaryLimit = defaultSummaryLimit
	}
	if cfg.Mongo.URI == "" {
		cfg.Mongo.URI = defaultMongoURI
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = defaultMongoDatabase
	}
	if cfg.Mongo.Collection == "" {
		cfg.Mongo.Collection = defaultCollection
	}
	if cfg.RateLimit.MaxPerWindow == 0 {
		cfg.RateLimit.MaxPerWindow = defaultMaxSubmitsPerWindow
	}
	if cfg.RateLimit.WindowSeconds == 0 {
		cfg.RateLimit.WindowSeconds = defaultWindowSeconds
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultLoggingLevel
	}
}

// applyEnvOverrides applies each env-tagged field explicitly. Environment
// variables win over both the YAML file and defaults.
func applyEnvOverrides(cfg *Config) {
	overrideString(&cfg.Mongo.URI, "MONGODB_URI")
	overrideString(&cfg.Mongo.Database, "MONGODB_DB")
	overrideString(&cfg.RateLimit.RedisAddress, "REDIS_ADDRESS")
	overrideString(&cfg.RateLimit.RedisPassword, "REDIS_PASSWORD")
	overrideInt(&cfg.RateLimit.RedisDB, "REDIS_DB")
	overrideString(&cfg.Dashboard.User, "DASHBOARD_USER")
	overrideString(&cfg.Dashboard.Password, "DASHBOARD_PASSWORD")
	overrideString(&cfg.Logging.Level, "LOG_LEVEL")
	overrideInt(&cfg.Service.Port, "SURVEY_PORT")
	overrideBool(&cfg.Service.Debug, "APP_DEBUG")
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func overrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			*dst = i
		}
	}
}

func overrideBool(dst *bool, key string) {
	switch os.Getenv(key) {
	case "true", "1", "yes":
		*dst = true
	case "false", "0", "no":
		*dst = false
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Service.Port < 1 || c.Service.Port > 65535 {
		return fmt.Errorf("service.port: must be between 1 and 65535, got %d", c.Service.Port)
	}
	if c.Mongo.URI == "" {
		return fmt.Errorf("mongo.uri: is required")
	}
	if c.Dashboard.User != "" && c.Dashboard.Password == "" {
		return fmt.Errorf("dashboard.password: is required when dashboard.user is set")
	}
	return nil
}
