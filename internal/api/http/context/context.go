// Package context carries the resolved principal across a request.
package context

import (
	"context"

	"github.com/violethawk/server/internal/model"
)

type contextKey int

const principalKey contextKey = iota

var _ model.ContextManager = (*Manager)(nil)

// Manager stores and retrieves the resolved principal on a request
// context.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetPrincipal records the resolution outcome on the context. A nil
// principal marks the request as resolved-to-guest, which is distinct
// from never having passed through an authentication middleware.
func (m *Manager) SetPrincipal(ctx context.Context, p *model.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipal returns the principal resolved for this request. ok is
// false when no authentication middleware ran.
func (m *Manager) GetPrincipal(ctx context.Context) (*model.Principal, bool) {
	p, ok := ctx.Value(principalKey).(*model.Principal)
	if !ok {
		return nil, false
	}
	return p, true
}
