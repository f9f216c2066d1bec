package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/violethawk/server/internal/model"
)

// PostStore is a mock of model.PostStore.
type PostStore struct {
	mock.Mock
}

var _ model.PostStore = (*PostStore)(nil)

func (m *PostStore) Create(ctx context.Context, post model.Post) (model.Post, error) {
	args := m.Called(ctx, post)
	return args.Get(0).(model.Post), args.Error(1)
}

func (m *PostStore) GetByID(ctx context.Context, id uuid.UUID) (model.Post, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Post), args.Error(1)
}

func (m *PostStore) ListBySub(ctx context.Context, subID uuid.UUID, limit int) ([]model.Post, error) {
	args := m.Called(ctx, subID, limit)
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *PostStore) List(ctx context.Context, limit int) ([]model.Post, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *PostStore) Update(ctx context.Context, post model.Post) (model.Post, error) {
	args := m.Called(ctx, post)
	return args.Get(0).(model.Post), args.Error(1)
}

func (m *PostStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// CommentStore is a mock of model.CommentStore.
type CommentStore struct {
	mock.Mock
}

var _ model.CommentStore = (*CommentStore)(nil)

func (m *CommentStore) Create(ctx context.Context, comment model.Comment) (model.Comment, error) {
	args := m.Called(ctx, comment)
	return args.Get(0).(model.Comment), args.Error(1)
}

func (m *CommentStore) GetByID(ctx context.Context, id uuid.UUID) (model.Comment, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Comment), args.Error(1)
}

func (m *CommentStore) ListByPost(ctx context.Context, postID uuid.UUID, limit int) ([]model.Comment, error) {
	args := m.Called(ctx, postID, limit)
	return args.Get(0).([]model.Comment), args.Error(1)
}

func (m *CommentStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// SubStore is a mock of model.SubStore.
type SubStore struct {
	mock.Mock
}

var _ model.SubStore = (*SubStore)(nil)

func (m *SubStore) Create(ctx context.Context, sub model.Sub) (model.Sub, error) {
	args := m.Called(ctx, sub)
	return args.Get(0).(model.Sub), args.Error(1)
}

func (m *SubStore) GetByID(ctx context.Context, id uuid.UUID) (model.Sub, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Sub), args.Error(1)
}

func (m *SubStore) GetByTitle(ctx context.Context, title string) (model.Sub, error) {
	args := m.Called(ctx, title)
	return args.Get(0).(model.Sub), args.Error(1)
}
