package transport

import (
	"crypto/tls"
	"os"
	"testing"

	"github.com/kbukum/arangodb/transport/tlstest"
)

func TestTLSConfig_BuildNil(t *testing.T) {
	var cfg *TLSConfig
	got, err := cfg.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Error("expected nil tls.Config")
	}
}

func TestTLSConfig_Build(t *testing.T) {
	certs := tlstest.GenerateTLSCerts(t)
	tests := []struct {
		name  string
		cfg   *TLSConfig
		check func(t *testing.T, c *tls.Config)
	}{
		{
			name: "skip verify defaults to TLS 1.2",
			cfg:  &TLSConfig{SkipVerify: true},
			check: func(t *testing.T, c *tls.Config) {
				if !c.InsecureSkipVerify || c.MinVersion != tls.VersionTLS12 {
					t.Errorf("unexpected config %+v", c)
				}
			},
		},
		{
			name: "empty block uses system roots",
			cfg:  &TLSConfig{},
			check: func(t *testing.T, c *tls.Config) {
				if c.RootCAs != nil || c.MinVersion != tls.VersionTLS12 {
					t.Errorf("unexpected config %+v", c)
				}
			},
		},
		{
			name: "min version 1.3",
			cfg:  &TLSConfig{MinVersion: "1.3"},
			check: func(t *testing.T, c *tls.Config) {
				if c.MinVersion != tls.VersionTLS13 {
					t.Errorf("expected TLS 1.3, got %d", c.MinVersion)
				}
			},
		},
		{
			name: "min version with prefix",
			cfg:  &TLSConfig{MinVersion: "TLS1.3"},
			check: func(t *testing.T, c *tls.Config) {
				if c.MinVersion != tls.VersionTLS13 {
					t.Errorf("expected TLS 1.3, got %d", c.MinVersion)
				}
			},
		},
		{
			name: "inline CA",
			cfg:  &TLSConfig{CA: readFile(t, certs.CAFile)},
			check: func(t *testing.T, c *tls.Config) {
				if c.RootCAs == nil {
					t.Error("expected RootCAs")
				}
			},
		},
		{
			name: "full",
			cfg: &TLSConfig{
				CAFile:     certs.CAFile,
				CertFile:   certs.CertFile,
				KeyFile:    certs.KeyFile,
				ServerName: "localhost",
			},
			check: func(t *testing.T, c *tls.Config) {
				if c.RootCAs == nil {
					t.Error("expected RootCAs")
				}
				if len(c.Certificates) != 1 {
					t.Errorf("expected 1 client certificate, got %d", len(c.Certificates))
				}
				if c.ServerName != "localhost" {
					t.Errorf("unexpected server name %q", c.ServerName)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.Build()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, got)
		})
	}
}

func TestTLSConfig_BuildErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  *TLSConfig
	}{
		{"missing CA", &TLSConfig{CAFile: "/nonexistent/ca.pem"}},
		{"invalid CA", &TLSConfig{CAFile: tlstest.WriteInvalidPEM(t, "ca.pem")}},
		{"missing key pair", &TLSConfig{CertFile: "/nonexistent/cert.pem", KeyFile: "/nonexistent/key.pem"}},
		{"invalid inline CA", &TLSConfig{CA: "not a certificate"}},
		{"unknown version", &TLSConfig{MinVersion: "1.1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.cfg.Build(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestTLSConfig_Validate(t *testing.T) {
	var nilCfg *TLSConfig
	if err := nilCfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := (&TLSConfig{CertFile: "c", KeyFile: "k"}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := (&TLSConfig{CertFile: "c"}).Validate(); err == nil {
		t.Error("expected error for cert without key")
	}
	if err := (&TLSConfig{KeyFile: "k"}).Validate(); err == nil {
		t.Error("expected error for key without cert")
	}
	if err := (&TLSConfig{MinVersion: "1.0"}).Validate(); err == nil {
		t.Error("expected error for unsupported version")
	}
}

func TestConfig_ApplyDefaultsTLS(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantTLS  bool
		wantVers string
	}{
		{"http endpoint", Config{Endpoint: "http://localhost:8529"}, false, ""},
		{"https endpoint", Config{Endpoint: "https://db.example.com:8529"}, true, DefaultTLSVersion},
		{"explicit version kept", Config{Endpoint: "https://db", TLS: &TLSConfig{MinVersion: "1.3"}}, true, "1.3"},
		{"block on http endpoint", Config{Endpoint: "http://db", TLS: &TLSConfig{SkipVerify: true}}, true, DefaultTLSVersion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.ApplyDefaults()
			if (tt.cfg.TLS != nil) != tt.wantTLS {
				t.Fatalf("expected TLS block %v, got %+v", tt.wantTLS, tt.cfg.TLS)
			}
			if tt.wantTLS && tt.cfg.TLS.MinVersion != tt.wantVers {
				t.Errorf("expected min version %q, got %q", tt.wantVers, tt.cfg.TLS.MinVersion)
			}
		})
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}
