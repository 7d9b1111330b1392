package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/arangodb/logger"
	"github.com/kbukum/arangodb/transport"
)

type clientConfig struct {
	transport.Config `yaml:",inline" mapstructure:",squash"`
	Logging          logger.Config `yaml:"logging" mapstructure:"logging"`

	defaulted bool
}

func (c *clientConfig) ApplyDefaults() {
	c.Config.ApplyDefaults()
	c.Logging.ApplyDefaults()
	c.defaulted = true
}

func (c *clientConfig) Validate() error {
	if err := c.Config.Validate(); err != nil {
		return err
	}
	return c.Logging.Validate()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestKeys(t *testing.T) {
	keys := Keys(&clientConfig{})
	for _, want := range []string{
		"endpoint", "database", "timeout", "http2",
		"tls.ca_file", "tls.ca", "tls.min_version", "retry.max_attempts", "retry.initial_backoff",
		"circuit_breaker.max_failures", "logging.level",
	} {
		if !slices.Contains(keys, want) {
			t.Errorf("missing key %q in %v", want, keys)
		}
	}
	for _, unwanted := range []string{"headers", "auth", "circuit_breaker.onstatechange", "config.endpoint"} {
		if slices.Contains(keys, unwanted) {
			t.Errorf("unexpected key %q", unwanted)
		}
	}
	if Keys(nil) != nil {
		t.Error("expected no keys for nil")
	}
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "arangodb.yml", `
endpoint: http://db.internal:8529
database: shop
timeout: 5s
retry:
  max_attempts: 5
  initial_backoff: 50ms
logging:
  level: debug
  format: console
`)

	var cfg clientConfig
	if err := Load("arangodb", &cfg, WithConfigFile(path), WithFileSystem(stubFS{})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Endpoint != "http://db.internal:8529" || cfg.Database != "shop" || cfg.Timeout != 5*time.Second {
		t.Errorf("unexpected transport config %+v", cfg.Config)
	}
	if cfg.Retry == nil || cfg.Retry.MaxAttempts != 5 || cfg.Retry.InitialBackoff != 50*time.Millisecond {
		t.Errorf("unexpected retry config %+v", cfg.Retry)
	}
	if cfg.Retry.Multiplier != 2.0 {
		t.Errorf("expected retry defaults to fill gaps, got %+v", cfg.Retry)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" || cfg.Logging.Output != "stderr" {
		t.Errorf("unexpected logging config %+v", cfg.Logging)
	}
	if !cfg.defaulted {
		t.Error("expected ApplyDefaults to run")
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "arangodb.yml", "endpoint: http://yaml:8529\ndatabase: shop\n")
	t.Setenv("ARANGODB_DATABASE", "orders")
	t.Setenv("ARANGODB_RETRY_MAX_ATTEMPTS", "7")
	t.Setenv("ARANGODB_LOGGING_LEVEL", "warn")

	var cfg clientConfig
	if err := Load("arangodb", &cfg, WithConfigFile(path), WithFileSystem(stubFS{})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Endpoint != "http://yaml:8529" {
		t.Errorf("expected endpoint from yaml, got %q", cfg.Endpoint)
	}
	if cfg.Database != "orders" {
		t.Errorf("expected database from env, got %q", cfg.Database)
	}
	if cfg.Retry == nil || cfg.Retry.MaxAttempts != 7 {
		t.Errorf("expected retry from env, got %+v", cfg.Retry)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected logging level from env, got %q", cfg.Logging.Level)
	}
}

func TestLoad_EnvFileAndPrefix(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "TESTDB_ENDPOINT=http://dotenv:8529\nTESTDB_DATABASE=fromenvfile\n")
	t.Cleanup(func() {
		_ = os.Unsetenv("TESTDB_ENDPOINT")
		_ = os.Unsetenv("TESTDB_DATABASE")
	})

	var cfg clientConfig
	err := Load("arangodb", &cfg, WithEnvFile(envPath), WithEnvPrefix("TESTDB"), WithFileSystem(OSFileSystem{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Endpoint != "http://dotenv:8529" || cfg.Database != "fromenvfile" {
		t.Errorf("unexpected config %+v", cfg.Config)
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "arangodb.yml", "endpoint: ftp://nowhere\n")

	var cfg clientConfig
	err := Load("arangodb", &cfg, WithConfigFile(path), WithFileSystem(stubFS{}))
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "config: arangodb:") {
		t.Errorf("unexpected error %q", err)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "arangodb.yml", "endpoint: [unterminated\n")

	var cfg clientConfig
	if err := Load("arangodb", &cfg, WithConfigFile(path), WithFileSystem(stubFS{})); err == nil {
		t.Fatal("expected read error")
	}
}

func TestFindFile(t *testing.T) {
	fs := stubFS{"config/arangodb.yaml": true, ".env": true}
	if got := findFile(fs, configCandidates("arangodb")); got != "config/arangodb.yaml" {
		t.Errorf("config file: got %q", got)
	}
	if got := findFile(fs, envCandidates("arangodb")); got != ".env" {
		t.Errorf("env file: got %q", got)
	}
	if got := findFile(stubFS{}, configCandidates("arangodb")); got != "" {
		t.Errorf("expected no file, got %q", got)
	}
}

// stubFS reports only the listed paths as present and never loads env files.
type stubFS map[string]bool

func (s stubFS) Exists(path string) bool { return s[path] }
func (s stubFS) LoadEnv(string) error    { return nil }
