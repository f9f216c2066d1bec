package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpctx "github.com/violethawk/server/internal/api/http/context"
	"github.com/violethawk/server/internal/api/http/handler"
	"github.com/violethawk/server/internal/auth"
	"github.com/violethawk/server/internal/mocks"
	"github.com/violethawk/server/internal/model"
	"github.com/violethawk/server/internal/testutil"
)

func authFixture(t *testing.T) (*mocks.TokenManager, *mocks.UserStore, *Authenticate, *httpctx.Manager) {
	t.Helper()
	tokens := &mocks.TokenManager{}
	users := &mocks.UserStore{}
	ctxMgr := httpctx.NewManager()
	resolver := auth.NewResolver(tokens, users, testutil.MakeNoopLogger())
	return tokens, users, NewAuthenticate(resolver, ctxMgr, testutil.MakeNoopLogger()), ctxMgr
}

// probe records what the middleware resolved for the inner handler.
func probe(ctxMgr *httpctx.Manager, gotPrincipal **model.Principal, gotOK *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotPrincipal, *gotOK = ctxMgr.GetPrincipal(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func validTokenFixtures(tokens *mocks.TokenManager, users *mocks.UserStore) model.User {
	user := model.User{ID: uuid.New(), ScreenName: "hawk"}
	tokens.On("Validate", "good-token").Return(model.TokenClaims{
		Subject:   user.ID,
		Binding:   "203.0.113.7",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)
	users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	return user
}

func TestAuthenticate_Require(t *testing.T) {
	t.Run("valid bearer token", func(t *testing.T) {
		tokens, users, mw, ctxMgr := authFixture(t)
		user := validTokenFixtures(tokens, users)

		var p *model.Principal
		var ok bool
		srv := mw.Require(probe(ctxMgr, &p, &ok))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.True(t, ok)
		require.NotNil(t, p)
		assert.Equal(t, user.ID, p.ID)
	})

	t.Run("missing credential", func(t *testing.T) {
		_, _, mw, ctxMgr := authFixture(t)

		var p *model.Principal
		var ok bool
		srv := mw.Require(probe(ctxMgr, &p, &ok))

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, ok)
	})

	t.Run("invalid token", func(t *testing.T) {
		tokens, _, mw, ctxMgr := authFixture(t)
		tokens.On("Validate", "bad-token").Return(model.TokenClaims{}, model.ErrTokenInvalid)

		var p *model.Principal
		var ok bool
		srv := mw.Require(probe(ctxMgr, &p, &ok))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthenticate_Optional(t *testing.T) {
	t.Run("absent credential resolves to guest", func(t *testing.T) {
		_, _, mw, ctxMgr := authFixture(t)

		var p *model.Principal
		var ok bool
		srv := mw.Optional(probe(ctxMgr, &p, &ok))

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, ok)
		assert.Nil(t, p)
	})

	t.Run("present but invalid credential still fails", func(t *testing.T) {
		tokens, _, mw, ctxMgr := authFixture(t)
		tokens.On("Validate", "bad-token").Return(model.TokenClaims{}, model.ErrTokenExpired)

		var p *model.Principal
		var ok bool
		srv := mw.Optional(probe(ctxMgr, &p, &ok))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthenticate_Browser(t *testing.T) {
	t.Run("valid cookie resolves principal", func(t *testing.T) {
		tokens, users, mw, ctxMgr := authFixture(t)
		user := validTokenFixtures(tokens, users)

		var p *model.Principal
		var ok bool
		srv := mw.Browser(probe(ctxMgr, &p, &ok))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: handler.AccessTokenCookie, Value: "good-token"})
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, p)
		assert.Equal(t, user.ID, p.ID)
	})

	t.Run("invalid cookie degrades to guest", func(t *testing.T) {
		tokens, _, mw, ctxMgr := authFixture(t)
		tokens.On("Validate", "stale-token").Return(model.TokenClaims{}, model.ErrTokenExpired)

		var p *model.Principal
		var ok bool
		srv := mw.Browser(probe(ctxMgr, &p, &ok))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: handler.AccessTokenCookie, Value: "stale-token"})
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		// The request proceeds as guest instead of failing.
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, ok)
		assert.Nil(t, p)
	})

	t.Run("bearer header is the fallback credential", func(t *testing.T) {
		tokens, users, mw, ctxMgr := authFixture(t)
		user := validTokenFixtures(tokens, users)

		var p *model.Principal
		var ok bool
		srv := mw.Browser(probe(ctxMgr, &p, &ok))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, p)
		assert.Equal(t, user.ID, p.ID)
	})
}
