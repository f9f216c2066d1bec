package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/violethawk/server/internal/mocks"
	"github.com/violethawk/server/internal/model"
	"github.com/violethawk/server/internal/testutil"
)

func newTestResolver(tokens *mocks.TokenManager, users *mocks.UserStore) *Resolver {
	return NewResolver(tokens, users, testutil.MakeNoopLogger())
}

func TestResolver_RequireAuthenticated_Success(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	tokens := &mocks.TokenManager{}
	users := &mocks.UserStore{}

	tokens.On("Validate", "good-token").Return(model.TokenClaims{Subject: userID, Binding: "203.0.113.7"}, nil).Once()
	users.On("GetByID", ctx, userID).Return(model.User{
		ID:         userID,
		ScreenName: "hawk",
		Admin:      true,
		Blocked:    []uuid.UUID{uuid.New()},
	}, nil).Once()

	r := newTestResolver(tokens, users)

	p, err := r.RequireAuthenticated(ctx, "good-token")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, userID, p.ID)
	assert.Equal(t, "hawk", p.ScreenName)
	assert.True(t, p.Admin)
	assert.Equal(t, "203.0.113.7", p.BindingIP)
	assert.Len(t, p.Blocked, 1)
}

func TestResolver_RequireAuthenticated_MissingCredential(t *testing.T) {
	r := newTestResolver(&mocks.TokenManager{}, &mocks.UserStore{})

	_, err := r.RequireAuthenticated(context.Background(), "")
	require.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestResolver_RequireAuthenticated_InvalidToken(t *testing.T) {
	ctx := context.Background()
	tokens := &mocks.TokenManager{}
	tokens.On("Validate", "bad").Return(model.TokenClaims{}, model.ErrTokenInvalid).Once()

	r := newTestResolver(tokens, &mocks.UserStore{})

	_, err := r.RequireAuthenticated(ctx, "bad")
	require.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestResolver_RequireAuthenticated_UnknownSubject(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	tokens := &mocks.TokenManager{}
	users := &mocks.UserStore{}
	tokens.On("Validate", "tok").Return(model.TokenClaims{Subject: userID}, nil).Once()
	users.On("GetByID", ctx, userID).Return(model.User{}, model.ErrNotFound).Once()

	r := newTestResolver(tokens, users)

	_, err := r.RequireAuthenticated(ctx, "tok")
	require.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestResolver_RequireAuthenticated_StatusGates(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		user model.User
		want error
	}{
		{name: "disabled", user: model.User{Disabled: true}, want: model.ErrAccountDisabled},
		{name: "banned", user: model.User{Banned: true}, want: model.ErrAccountBanned},
		{name: "disabled_wins_over_banned", user: model.User{Disabled: true, Banned: true}, want: model.ErrAccountDisabled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID := uuid.New()
			tt.user.ID = userID

			tokens := &mocks.TokenManager{}
			users := &mocks.UserStore{}
			tokens.On("Validate", "tok").Return(model.TokenClaims{Subject: userID}, nil).Once()
			users.On("GetByID", ctx, userID).Return(tt.user, nil).Once()

			r := newTestResolver(tokens, users)

			_, err := r.RequireAuthenticated(ctx, "tok")
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestResolver_OptionalAuthenticated_AbsentIsGuest(t *testing.T) {
	r := newTestResolver(&mocks.TokenManager{}, &mocks.UserStore{})

	p, err := r.OptionalAuthenticated(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestResolver_OptionalAuthenticated_InvalidStillFails(t *testing.T) {
	ctx := context.Background()
	tokens := &mocks.TokenManager{}
	tokens.On("Validate", "garbage").Return(model.TokenClaims{}, model.ErrTokenMalformed).Once()

	r := newTestResolver(tokens, &mocks.UserStore{})

	// Absent is tolerated, invalid is not.
	_, err := r.OptionalAuthenticated(ctx, "garbage")
	require.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestResolver_OptionalAuthenticated_BannedStillFails(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	tokens := &mocks.TokenManager{}
	users := &mocks.UserStore{}
	tokens.On("Validate", "tok").Return(model.TokenClaims{Subject: userID}, nil).Once()
	users.On("GetByID", ctx, userID).Return(model.User{ID: userID, Banned: true}, nil).Once()

	r := newTestResolver(tokens, users)

	_, err := r.OptionalAuthenticated(ctx, "tok")
	require.ErrorIs(t, err, model.ErrAccountBanned)
}

func TestResolver_OptionalFromCookie_SwallowsErrors(t *testing.T) {
	ctx := context.Background()
	tokens := &mocks.TokenManager{}
	tokens.On("Validate", "garbage").Return(model.TokenClaims{}, model.ErrTokenInvalid).Once()

	r := newTestResolver(tokens, &mocks.UserStore{})

	assert.Nil(t, r.OptionalFromCookie(ctx, "garbage"))
	assert.Nil(t, r.OptionalFromCookie(ctx, ""))
}

func TestResolver_OptionalFromCookie_Success(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	tokens := &mocks.TokenManager{}
	users := &mocks.UserStore{}
	tokens.On("Validate", "cookie-token").Return(model.TokenClaims{Subject: userID}, nil).Once()
	users.On("GetByID", ctx, userID).Return(model.User{ID: userID, ScreenName: "hawk"}, nil).Once()

	r := newTestResolver(tokens, users)

	p := r.OptionalFromCookie(ctx, "cookie-token")
	require.NotNil(t, p)
	assert.Equal(t, userID, p.ID)
}
