package transport

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"strings"
)

// DefaultTLSVersion is the minimum TLS version used for https endpoints.
const DefaultTLSVersion = "1.2"

var tlsVersions = map[string]uint16{
	"1.2": tls.VersionTLS12,
	"1.3": tls.VersionTLS13,
}

// TLSConfig configures connections to https endpoints. Every field can be
// loaded from YAML or ARANGODB_TLS_* variables; CA takes a PEM bundle
// directly so certificates can be passed without files.
type TLSConfig struct {
	// SkipVerify disables server certificate verification.
	SkipVerify bool `yaml:"skip_verify" mapstructure:"skip_verify"`

	// CAFile and CA add trusted roots. Both may be set.
	CAFile string `yaml:"ca_file" mapstructure:"ca_file"`
	CA     string `yaml:"ca" mapstructure:"ca"`

	// CertFile and KeyFile enable client certificate authentication.
	CertFile string `yaml:"cert_file" mapstructure:"cert_file"`
	KeyFile  string `yaml:"key_file" mapstructure:"key_file"`

	ServerName string `yaml:"server_name" mapstructure:"server_name"`

	// MinVersion is "1.2" or "1.3", optionally prefixed with "TLS".
	MinVersion string `yaml:"min_version" mapstructure:"min_version"`
}

func (c *TLSConfig) applyDefaults() {
	if c.MinVersion == "" {
		c.MinVersion = DefaultTLSVersion
	}
}

// Validate checks the version and that client cert and key come together.
func (c *TLSConfig) Validate() error {
	if c == nil {
		return nil
	}
	if (c.CertFile != "") != (c.KeyFile != "") {
		return fmt.Errorf("transport/tls: cert_file and key_file must be set together")
	}
	if _, err := c.version(); err != nil {
		return err
	}
	return nil
}

// Build creates the *tls.Config used by the HTTP transport. A nil
// TLSConfig keeps the Go defaults and returns nil.
func (c *TLSConfig) Build() (*tls.Config, error) {
	if c == nil {
		return nil, nil
	}
	version, err := c.version()
	if err != nil {
		return nil, err
	}
	cfg := &tls.Config{
		InsecureSkipVerify: c.SkipVerify, //nolint:gosec // opt-in for development servers
		ServerName:         c.ServerName,
		MinVersion:         version,
	}
	if cfg.RootCAs, err = c.rootCAs(); err != nil {
		return nil, err
	}
	if c.CertFile != "" {
		cert, err := tls.LoadX509KeyPair(c.CertFile, c.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("transport/tls: load client certificate: %w", err)
		}
		cfg.Certificates = []tls.Certificate{cert}
	}
	return cfg, nil
}

func (c *TLSConfig) version() (uint16, error) {
	name := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(c.MinVersion)), "tls")
	if name == "" {
		name = DefaultTLSVersion
	}
	v, ok := tlsVersions[name]
	if !ok {
		return 0, fmt.Errorf("transport/tls: unsupported min_version %q", c.MinVersion)
	}
	return v, nil
}

// rootCAs returns nil when no roots are configured, leaving the system pool.
func (c *TLSConfig) rootCAs() (*x509.CertPool, error) {
	if c.CAFile == "" && c.CA == "" {
		return nil, nil
	}
	pool := x509.NewCertPool()
	if c.CAFile != "" {
		pem, err := os.ReadFile(c.CAFile)
		if err != nil {
			return nil, fmt.Errorf("transport/tls: read CA file: %w", err)
		}
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("transport/tls: no certificates in %s", c.CAFile)
		}
	}
	if c.CA != "" && !pool.AppendCertsFromPEM([]byte(c.CA)) {
		return nil, fmt.Errorf("transport/tls: no certificates in inline CA")
	}
	return pool, nil
}
