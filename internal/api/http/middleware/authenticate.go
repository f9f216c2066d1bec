package middleware

import (
	"net/http"
	"strings"

	"github.com/violethawk/server/internal/api/http/handler"
	"github.com/violethawk/server/internal/auth"
	"github.com/violethawk/server/internal/logger"
	"github.com/violethawk/server/internal/model"
)

// Authenticate resolves request credentials into a principal and
// stores the outcome on the request context. The three middleware
// tiers differ only in how resolution failures are treated.
type Authenticate struct {
	resolver       *auth.Resolver
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates the authentication middleware.
func NewAuthenticate(resolver *auth.Resolver, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{
		resolver:       resolver,
		contextManager: contextManager,
		logger:         logger,
	}
}

// bearerToken extracts the token from the Authorization header, empty
// when absent.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// cookieToken extracts the token from the session cookie, empty when
// absent.
func cookieToken(r *http.Request) string {
	cookie, err := r.Cookie(handler.AccessTokenCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Require rejects requests without a valid bearer credential. Nothing
// is downgraded to guest.
func (m *Authenticate) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := m.resolver.RequireAuthenticated(r.Context(), bearerToken(r))
		if err != nil {
			m.logger.Debug("authentication failed", "path", r.URL.Path, "error", err.Error())
			handler.WriteError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(m.contextManager.SetPrincipal(r.Context(), principal)))
	})
}

// Optional resolves an absent credential to guest but still rejects a
// credential that is present and invalid.
func (m *Authenticate) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := m.resolver.OptionalAuthenticated(r.Context(), bearerToken(r))
		if err != nil {
			m.logger.Debug("authentication failed", "path", r.URL.Path, "error", err.Error())
			handler.WriteError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(m.contextManager.SetPrincipal(r.Context(), principal)))
	})
}

// Browser resolves the session cookie, falling back to the bearer
// header, and degrades every failure to guest. Requests on this tier
// never fail authentication; the operation itself decides whether a
// guest may proceed.
func (m *Authenticate) Browser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		credential := cookieToken(r)
		if credential == "" {
			credential = bearerToken(r)
		}
		principal := m.resolver.OptionalFromCookie(r.Context(), credential)
		next.ServeHTTP(w, r.WithContext(m.contextManager.SetPrincipal(r.Context(), principal)))
	})
}
