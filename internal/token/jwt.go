package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/violethawk/server/internal/model"
)

// Claims represents the JWT claim set of an access token: the subject
// user and the network address the token was issued to.
type Claims struct {
	jwt.RegisteredClaims
	UserID  uuid.UUID `json:"user_id"`
	Binding string    `json:"ip"`
}

// JWT implements model.TokenManager backed by symmetric HMAC. It is
// stateless: there is no server-side session store and no revocation,
// so the compromise window is bounded only by the TTL.
type JWT struct {
	secret     model.SecretProvider
	clock      model.Clock
	defaultTTL time.Duration
}

// NewJWT creates a token manager with the given signing secret, clock
// and default token lifetime.
func NewJWT(secret model.SecretProvider, clock model.Clock, defaultTTL time.Duration) *JWT {
	return &JWT{secret: secret, clock: clock, defaultTTL: defaultTTL}
}

var _ model.TokenManager = (*JWT)(nil)

// Issue signs a claim set for the subject. A non-positive ttl falls
// back to the configured default lifetime.
func (j *JWT) Issue(subject uuid.UUID, binding string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = j.defaultTTL
	}
	now := j.clock.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:  subject,
		Binding: binding,
	})

	tokenString, err := token.SignedString(j.secret.SigningSecret())
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// Validate verifies signature and expiry and extracts the claims. An
// unverified payload is never partially trusted: on any failure the
// returned claims are zero.
func (j *JWT) Validate(tokenString string) (model.TokenClaims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secret.SigningSecret(), nil
	}, jwt.WithTimeFunc(j.clock.Now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return model.TokenClaims{}, model.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return model.TokenClaims{}, model.ErrTokenInvalid
		default:
			return model.TokenClaims{}, fmt.Errorf("%w: %w", model.ErrTokenMalformed, err)
		}
	}
	if !token.Valid {
		return model.TokenClaims{}, model.ErrTokenInvalid
	}
	if claims.UserID == uuid.Nil || claims.ExpiresAt == nil {
		return model.TokenClaims{}, model.ErrTokenMalformed
	}

	return model.TokenClaims{
		Subject:   claims.UserID,
		Binding:   claims.Binding,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
