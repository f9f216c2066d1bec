// Package mocks contains testify mocks for the model interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/violethawk/server/internal/model"
)

// UserStore is a mock of model.UserStore.
type UserStore struct {
	mock.Mock
}

var _ model.UserStore = (*UserStore)(nil)

func (m *UserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) Block(ctx context.Context, userID, blockedID uuid.UUID) error {
	args := m.Called(ctx, userID, blockedID)
	return args.Error(0)
}

func (m *UserStore) SetStatus(ctx context.Context, id uuid.UUID, disabled, banned bool) error {
	args := m.Called(ctx, id, disabled, banned)
	return args.Error(0)
}

func (m *UserStore) ReplaceCredential(ctx context.Context, id uuid.UUID, cred model.Credential) error {
	args := m.Called(ctx, id, cred)
	return args.Error(0)
}

func (m *UserStore) TouchLastSeen(ctx context.Context, id uuid.UUID, when time.Time) error {
	args := m.Called(ctx, id, when)
	return args.Error(0)
}
