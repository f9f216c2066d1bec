package postgres

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/violethawk/server/internal/model"
)

func TestStoreErr(t *testing.T) {
	t.Run("deadline expiry is store unavailable", func(t *testing.T) {
		err := storeErr(fmt.Errorf("query timed out: %w", context.DeadlineExceeded))
		assert.ErrorIs(t, err, model.ErrStoreUnavailable)
	})

	t.Run("connection failure is store unavailable", func(t *testing.T) {
		err := storeErr(&pgconn.ConnectError{Config: &pgconn.Config{}})
		assert.ErrorIs(t, err, model.ErrStoreUnavailable)
	})

	t.Run("query errors pass through", func(t *testing.T) {
		assert.Equal(t, pgx.ErrNoRows, storeErr(pgx.ErrNoRows))
	})

	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, storeErr(nil))
	})

	t.Run("classification survives repository wrapping", func(t *testing.T) {
		err := fmt.Errorf("failed to get reaction: %w", storeErr(context.DeadlineExceeded))
		assert.ErrorIs(t, err, model.ErrStoreUnavailable)
	})
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(pgx.ErrNoRows))
}
