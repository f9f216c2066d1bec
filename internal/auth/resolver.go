// Package auth resolves request credentials into principals and gates
// operations on them.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/violethawk/server/internal/logger"
	"github.com/violethawk/server/internal/model"
)

// Resolver turns credential material into zero-or-one authenticated
// principal. The three entry points correspond to the three trust
// postures of the platform: API requiring auth, API allowing guests,
// and browser pages allowing guests.
type Resolver struct {
	tokens model.TokenManager
	users  model.UserStore
	logger *logger.Logger
}

// NewResolver creates a Resolver over the given token manager and user
// lookup collaborator.
func NewResolver(tokens model.TokenManager, users model.UserStore, logger *logger.Logger) *Resolver {
	return &Resolver{tokens: tokens, users: users, logger: logger}
}

// RequireAuthenticated validates the credential and returns the
// principal. A missing, invalid or expired credential, an unknown
// subject, and a disabled or banned account all fail; nothing is
// downgraded to guest.
func (r *Resolver) RequireAuthenticated(ctx context.Context, credential string) (*model.Principal, error) {
	if credential == "" {
		return nil, fmt.Errorf("%w: missing credential", model.ErrUnauthorized)
	}

	claims, err := r.tokens.Validate(credential)
	if err != nil {
		return nil, err
	}

	user, err := r.users.GetByID(ctx, claims.Subject)
	if errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("%w: unknown subject", model.ErrUnauthorized)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up token subject: %w", err)
	}

	if user.Disabled {
		return nil, model.ErrAccountDisabled
	}
	if user.Banned {
		return nil, model.ErrAccountBanned
	}

	return principalFrom(user, claims), nil
}

// OptionalAuthenticated resolves like RequireAuthenticated but treats
// an absent credential as a guest. A credential that is present but
// invalid still fails: absent is tolerated, invalid is not.
func (r *Resolver) OptionalAuthenticated(ctx context.Context, credential string) (*model.Principal, error) {
	if credential == "" {
		return nil, nil
	}
	return r.RequireAuthenticated(ctx, credential)
}

// OptionalFromCookie resolves a cookie credential, degrading every
// resolution failure to a guest so browser pages render instead of
// erroring. This is the single path where auth errors are swallowed.
func (r *Resolver) OptionalFromCookie(ctx context.Context, cookieValue string) *model.Principal {
	if cookieValue == "" {
		return nil
	}
	p, err := r.RequireAuthenticated(ctx, cookieValue)
	if err != nil {
		r.logger.Debug("cookie credential rejected, continuing as guest", "error", err.Error())
		return nil
	}
	return p
}

func principalFrom(user model.User, claims model.TokenClaims) *model.Principal {
	return &model.Principal{
		ID:         user.ID,
		ScreenName: user.ScreenName,
		Admin:      user.Admin,
		Blocked:    user.Blocked,
		BindingIP:  claims.Binding,
	}
}
