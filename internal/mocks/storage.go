package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/violethawk/server/internal/model"
)

// Storage is a mock of model.Storage.
type Storage struct {
	mock.Mock
}

var _ model.Storage = (*Storage)(nil)

func (m *Storage) Upload(ctx context.Context, name string, reader io.Reader) error {
	args := m.Called(ctx, name, reader)
	return args.Error(0)
}

func (m *Storage) Download(ctx context.Context, name string) (io.ReadCloser, error) {
	args := m.Called(ctx, name)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

func (m *Storage) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *Storage) Exists(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}
