package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/violethawk/server/internal/model"
)

// ReactionStore is a mock of model.ReactionStore.
type ReactionStore struct {
	mock.Mock
}

var _ model.ReactionStore = (*ReactionStore)(nil)

func (m *ReactionStore) GetReaction(ctx context.Context, principalID uuid.UUID, kind model.TargetKind, targetID uuid.UUID) (model.ReactionState, error) {
	args := m.Called(ctx, principalID, kind, targetID)
	return args.Get(0).(model.ReactionState), args.Error(1)
}

func (m *ReactionStore) ApplyTransition(ctx context.Context, t model.ReactionTransition) (int64, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(int64), args.Error(1)
}
