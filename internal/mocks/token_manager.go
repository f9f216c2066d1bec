package mocks

import (
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/violethawk/server/internal/model"
)

// TokenManager is a mock of model.TokenManager.
type TokenManager struct {
	mock.Mock
}

var _ model.TokenManager = (*TokenManager)(nil)

func (m *TokenManager) Issue(subject uuid.UUID, binding string, ttl time.Duration) (string, error) {
	args := m.Called(subject, binding, ttl)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) Validate(token string) (model.TokenClaims, error) {
	args := m.Called(token)
	return args.Get(0).(model.TokenClaims), args.Error(1)
}
