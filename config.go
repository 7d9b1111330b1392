package arangodb

import (
	"fmt"
	"strings"

	"github.com/kbukum/arangodb/config"
	"github.com/kbukum/arangodb/logger"
	"github.com/kbukum/arangodb/observability"
	"github.com/kbukum/arangodb/transport"
)

// Config configures a Client. It loads from YAML and ARANGODB_* variables
// through LoadConfig.
type Config struct {
	transport.Config `yaml:",inline" mapstructure:",squash"`

	// Credentials configures authentication when transport.Config.Auth is nil.
	Credentials Credentials `yaml:"auth" mapstructure:"auth"`

	Logging       logger.Config        `yaml:"logging" mapstructure:"logging"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// Credentials is the loadable form of transport.AuthConfig.
type Credentials struct {
	// Type is one of "", "none", "basic", "bearer" or "jwt".
	Type     string `yaml:"type" mapstructure:"type"`
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`
	Token    string `yaml:"token" mapstructure:"token"`
	// Secret is the server JWT secret used by the "jwt" type.
	Secret string `yaml:"secret" mapstructure:"secret"`
}

// AuthConfig converts c into a transport.AuthConfig. The zero value
// disables authentication.
func (c Credentials) AuthConfig() (*transport.AuthConfig, error) {
	switch strings.ToLower(c.Type) {
	case "", "none":
		return nil, nil
	case "basic":
		return transport.BasicAuth(c.Username, c.Password), nil
	case "bearer":
		return transport.BearerAuth(c.Token), nil
	case "jwt":
		return transport.UserJWTAuth([]byte(c.Secret), c.Username), nil
	default:
		return nil, fmt.Errorf("arangodb: unknown auth type %q", c.Type)
	}
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	c.Config.ApplyDefaults()
	c.Logging.ApplyDefaults()
	if c.Observability.ServiceName == "" {
		c.Observability.ServiceName = c.Name
	}
	c.Observability.ApplyDefaults()
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	tc, err := c.TransportConfig()
	if err != nil {
		return err
	}
	if err := tc.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	return c.Observability.Validate()
}

// TransportConfig returns the transport settings with Credentials applied
// when no AuthConfig was set directly.
func (c *Config) TransportConfig() (transport.Config, error) {
	tc := c.Config
	if tc.Auth == nil {
		auth, err := c.Credentials.AuthConfig()
		if err != nil {
			return transport.Config{}, err
		}
		tc.Auth = auth
	}
	return tc, nil
}

// LoadConfig loads a Config from arangodb.yml, .env and ARANGODB_* variables.
func LoadConfig(opts ...config.Option) (Config, error) {
	var cfg Config
	if err := config.Load("arangodb", &cfg, opts...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
