package transport

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kbukum/arangodb/validation"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultName        = "arangodb"
	defaultMaxAttempts = 3
)

// Config configures the HTTP transport.
type Config struct {
	// Name identifies the transport in logs, spans and metrics.
	Name string `yaml:"name" mapstructure:"name"`

	// Endpoint is the server base URL, e.g. "http://localhost:8529".
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`

	// Database scopes every request to /_db/<Database>/. Empty uses the
	// server's default database.
	Database string `yaml:"database" mapstructure:"database"`

	// Timeout bounds a single attempt. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Auth configures authentication applied to all requests.
	Auth *AuthConfig `yaml:"-" mapstructure:"-"`

	// TLS configures TLS settings for https endpoints.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// HTTP2 enables HTTP/2 over TLS.
	HTTP2 bool `yaml:"http2" mapstructure:"http2"`

	// Retry configures retry of transport failures. Nil disables retry.
	Retry *RetryConfig `yaml:"retry" mapstructure:"retry"`

	// CircuitBreaker configures circuit breaking. Nil disables it.
	CircuitBreaker *CircuitBreakerConfig `yaml:"circuit_breaker" mapstructure:"circuit_breaker"`
}

// RetryConfig configures retry of retryable transport errors. HTTP statuses
// are never retried.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts, including the first.
	MaxAttempts int `yaml:"max_attempts" mapstructure:"max_attempts"`
	// InitialBackoff is the delay before the first retry.
	InitialBackoff time.Duration `yaml:"initial_backoff" mapstructure:"initial_backoff"`
	// MaxBackoff caps the delay between retries.
	MaxBackoff time.Duration `yaml:"max_backoff" mapstructure:"max_backoff"`
	// Multiplier grows the delay after each retry.
	Multiplier float64 `yaml:"multiplier" mapstructure:"multiplier"`
	// Jitter randomizes each delay by up to this fraction (0.0 to 1.0).
	Jitter float64 `yaml:"jitter" mapstructure:"jitter"`
}

// DefaultRetryConfig returns a retry config suitable for ArangoDB clients.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts:    defaultMaxAttempts,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     5 * time.Second,
		Multiplier:     2.0,
		Jitter:         0.1,
	}
}

func (c *RetryConfig) applyDefaults() {
	d := DefaultRetryConfig()
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = d.MaxAttempts
	}
	if c.InitialBackoff <= 0 {
		c.InitialBackoff = d.InitialBackoff
	}
	if c.MaxBackoff <= 0 {
		c.MaxBackoff = d.MaxBackoff
	}
	if c.Multiplier <= 0 {
		c.Multiplier = d.Multiplier
	}
	if c.Jitter < 0 {
		c.Jitter = 0
	}
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = defaultName
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.TLS == nil && strings.HasPrefix(strings.ToLower(c.Endpoint), "https://") {
		c.TLS = &TLSConfig{}
	}
	if c.TLS != nil {
		c.TLS.applyDefaults()
	}
	if c.Retry != nil {
		c.Retry.applyDefaults()
	}
	if c.CircuitBreaker != nil {
		c.CircuitBreaker.applyDefaults(c.Name)
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("transport: endpoint is required")
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("transport: invalid endpoint %q: %w", c.Endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("transport: endpoint scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("transport: endpoint %q has no host", c.Endpoint)
	}
	if c.Database != "" {
		if err := validation.ValidateDatabaseName(c.Database); err != nil {
			return err
		}
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("transport: timeout must be positive")
	}
	if c.Retry != nil && c.Retry.Jitter > 1 {
		return fmt.Errorf("transport: retry jitter must be between 0 and 1")
	}
	if c.TLS != nil {
		if err := c.TLS.Validate(); err != nil {
			return err
		}
	}
	if err := c.Auth.validate(); err != nil {
		return err
	}
	return nil
}
