package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenManager issues and validates signed, time-limited bearer tokens.
// Tokens are self-contained: nothing is stored server-side and the only
// way a token dies is by reaching its expiry.
type TokenManager interface {
	// Issue signs a claim set for the subject. A non-positive ttl uses
	// the configured default lifetime. The binding value records the
	// network address of the requester the token was issued to.
	Issue(subject uuid.UUID, binding string, ttl time.Duration) (string, error)
	// Validate decodes the token, verifies its signature and expiry,
	// and returns the claims. Failures unwrap to ErrUnauthorized.
	Validate(token string) (TokenClaims, error)
}

// TokenClaims is the verified content of an access token.
type TokenClaims struct {
	Subject   uuid.UUID
	Binding   string
	ExpiresAt time.Time
}

// Clock abstracts time for deterministic expiry testing.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// SecretProvider hands out the process-wide signing key. Loaded once at
// startup; rotation is out of scope but swapping the provider requires
// no code changes in the token service.
type SecretProvider interface {
	SigningSecret() []byte
}

// StaticSecret is a SecretProvider holding a fixed key.
type StaticSecret []byte

func (s StaticSecret) SigningSecret() []byte { return []byte(s) }
