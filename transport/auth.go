package transport

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthType identifies the authentication method.
type AuthType int

const (
	// AuthNone disables authentication.
	AuthNone AuthType = iota
	// AuthBasic uses HTTP Basic authentication.
	AuthBasic
	// AuthBearer sends a pre-issued token.
	AuthBearer
	// AuthJWT signs tokens locally with the server's JWT secret.
	AuthJWT
)

const (
	jwtIssuer   = "arangodb"
	jwtLifetime = time.Hour
	jwtRefresh  = time.Minute
)

// AuthConfig configures request authentication.
type AuthConfig struct {
	// Type is the authentication method.
	Type AuthType
	// Username and Password are used by AuthBasic. Username is also the
	// preferred_username claim for AuthJWT; empty signs a superuser token.
	Username string
	Password string
	// Token is the bearer token (AuthBearer).
	Token string
	// Secret is the server's JWT secret (AuthJWT).
	Secret []byte

	mu      sync.Mutex
	signed  string
	expires time.Time
	now     func() time.Time
}

// BasicAuth creates a basic auth config.
func BasicAuth(username, password string) *AuthConfig {
	return &AuthConfig{Type: AuthBasic, Username: username, Password: password}
}

// BearerAuth creates a bearer token auth config.
func BearerAuth(token string) *AuthConfig {
	return &AuthConfig{Type: AuthBearer, Token: token}
}

// JWTAuth creates a config that signs superuser tokens with secret.
func JWTAuth(secret []byte) *AuthConfig {
	return &AuthConfig{Type: AuthJWT, Secret: secret}
}

// UserJWTAuth creates a config that signs tokens for username with secret.
func UserJWTAuth(secret []byte, username string) *AuthConfig {
	return &AuthConfig{Type: AuthJWT, Secret: secret, Username: username}
}

func (a *AuthConfig) validate() error {
	if a == nil {
		return nil
	}
	switch a.Type {
	case AuthNone:
	case AuthBasic:
		if a.Username == "" {
			return fmt.Errorf("transport: basic auth requires a username")
		}
	case AuthBearer:
		if a.Token == "" {
			return fmt.Errorf("transport: bearer auth requires a token")
		}
	case AuthJWT:
		if len(a.Secret) == 0 {
			return fmt.Errorf("transport: jwt auth requires a secret")
		}
	default:
		return fmt.Errorf("transport: unknown auth type %d", a.Type)
	}
	return nil
}

// apply sets the Authorization header on req.
func (a *AuthConfig) apply(req *http.Request) error {
	if a == nil {
		return nil
	}
	switch a.Type {
	case AuthBasic:
		req.SetBasicAuth(a.Username, a.Password)
	case AuthBearer:
		req.Header.Set("Authorization", "Bearer "+a.Token)
	case AuthJWT:
		token, err := a.token()
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "bearer "+token)
	}
	return nil
}

// token returns a cached signed token, re-signing it shortly before expiry.
func (a *AuthConfig) token() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := time.Now
	if a.now != nil {
		now = a.now
	}
	t := now()
	if a.signed != "" && t.Add(jwtRefresh).Before(a.expires) {
		return a.signed, nil
	}

	expires := t.Add(jwtLifetime)
	claims := jwt.MapClaims{
		"iss": jwtIssuer,
		"iat": t.Unix(),
		"exp": expires.Unix(),
	}
	if a.Username != "" {
		claims["preferred_username"] = a.Username
	} else {
		claims["server_id"] = "arangodb-go"
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.Secret)
	if err != nil {
		return "", fmt.Errorf("transport: sign jwt: %w", err)
	}
	a.signed = signed
	a.expires = expires
	return signed, nil
}
