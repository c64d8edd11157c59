package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSetDefaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	assertStringEqual(t, "service.name", defaultServiceName, cfg.Service.Name)
	assertStringEqual(t, "service.version", defaultVersion, cfg.Service.Version)
	assertIntEqual(t, "service.port", defaultServicePort, cfg.Service.Port)
	assertIntEqual(t, "service.summary_limit", defaultSummaryLimit, cfg.Service.SummaryLimit)

	assertStringEqual(t, "mongo.uri", defaultMongoURI, cfg.Mongo.URI)
	assertStringEqual(t, "mongo.database", defaultMongoDatabase, cfg.Mongo.Database)
	assertStringEqual(t, "mongo.collection", defaultCollection, cfg.Mongo.Collection)

	assertIntEqual(t, "rate_limit.max_per_window", defaultMaxSubmitsPerWindow, cfg.RateLimit.MaxPerWindow)
	assertIntEqual(t, "rate_limit.window_seconds", defaultWindowSeconds, cfg.RateLimit.WindowSeconds)

	assertStringEqual(t, "logging.level", defaultLoggingLevel, cfg.Logging.Level)
}

func TestSetDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Service.Port = 9000
	cfg.Mongo.Database = "noise"
	setDefaults(cfg)

	assertIntEqual(t, "service.port", 9000, cfg.Service.Port)
	assertStringEqual(t, "mongo.database", "noise", cfg.Mongo.Database)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "no-such.yml"))
	if err != nil {
		t.Fatalf("Load with missing file: %v", err)
	}
	assertIntEqual(t, "service.port", defaultServicePort, cfg.Service.Port)
}

func TestLoad_ReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := []byte(`
service:
  port: 9100
  summary_limit: 50
mongo:
  database: noise
rate_limit:
  max_per_window: 10
  window_seconds: 60
dashboard:
  user: admin
  password: secret
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	assertIntEqual(t, "service.port", 9100, cfg.Service.Port)
	assertIntEqual(t, "service.summary_limit", 50, cfg.Service.SummaryLimit)
	assertStringEqual(t, "mongo.database", "noise", cfg.Mongo.Database)
	assertIntEqual(t, "rate_limit.max_per_window", 10, cfg.RateLimit.MaxPerWindow)

	if got, want := cfg.RateLimit.Window(), 60*time.Second; got != want {
		t.Errorf("rate_limit window: got %v, want %v", got, want)
	}
	if !cfg.Dashboard.Enabled() {
		t.Error("dashboard gate should be enabled when user is set")
	}

	// Defaults still fill the gaps the file left.
	assertStringEqual(t, "mongo.uri", defaultMongoURI, cfg.Mongo.URI)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("mongo:\n  uri: mongodb://file:27017\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("MONGODB_URI", "mongodb://env:27017")
	t.Setenv("SURVEY_PORT", "9200")
	t.Setenv("APP_DEBUG", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	assertStringEqual(t, "mongo.uri", "mongodb://env:27017", cfg.Mongo.URI)
	assertIntEqual(t, "service.port", 9200, cfg.Service.Port)
	if !cfg.Service.Debug {
		t.Error("APP_DEBUG=true should enable debug")
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	cfg.Service.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for port 0")
	}

	cfg = &Config{}
	setDefaults(cfg)
	cfg.Mongo.URI = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty mongo.uri")
	}

	cfg = &Config{}
	setDefaults(cfg)
	cfg.Dashboard.User = "admin"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for dashboard user without password")
	}
	cfg.Dashboard.Password = "secret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("user+password should validate: %v", err)
	}
}

func TestGetConfigPath(t *testing.T) {
	if got := GetConfigPath("config.yml"); got != "config.yml" {
		t.Errorf("default path: got %s", got)
	}

	t.Setenv("CONFIG_PATH", "/etc/soundscape/config.yml")
	if got := GetConfigPath("config.yml"); got != "/etc/soundscape/config.yml" {
		t.Errorf("CONFIG_PATH override: got %s", got)
	}
}

func assertStringEqual(t *testing.T, field, want, got string) {
	t.Helper()
	if got != want {
		t.Errorf("%s: got %q, want %q", field, got, want)
	}
}

func assertIntEqual(t *testing.T, field string, want, got int) {
	t.Helper()
	if got != want {
		t.Errorf("%s: got %d, want %d", field, got, want)
	}
}
