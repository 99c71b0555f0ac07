package service

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/roster-server/internal/model"
)

// MockStore mocks the EntityStore interface
type MockStore[T model.Entity] struct {
	mock.Mock
}

func (m *MockStore[T]) Get(ctx context.Context, id int) (T, error) {
	args := m.Called(ctx, id)
	entity, _ := args.Get(0).(T)
	return entity, args.Error(1)
}

func (m *MockStore[T]) GetAll(ctx context.Context) ([]T, error) {
	args := m.Called(ctx)
	entities, _ := args.Get(0).([]T)
	return entities, args.Error(1)
}

func (m *MockStore[T]) Add(ctx context.Context, entity T) (T, error) {
	args := m.Called(ctx, entity)
	added, _ := args.Get(0).(T)
	return added, args.Error(1)
}

func (m *MockStore[T]) Update(ctx context.Context, entity T) (T, error) {
	args := m.Called(ctx, entity)
	updated, _ := args.Get(0).(T)
	return updated, args.Error(1)
}

func (m *MockStore[T]) UpdateRange(ctx context.Context, entities []T) ([]T, error) {
	args := m.Called(ctx, entities)
	updated, _ := args.Get(0).([]T)
	return updated, args.Error(1)
}

func (m *MockStore[T]) Delete(ctx context.Context, entity T) (bool, error) {
	args := m.Called(ctx, entity)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore[T]) DeleteRange(ctx context.Context, entities []T) (bool, error) {
	args := m.Called(ctx, entities)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore[T]) HasEntity(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockStorage mocks the Storage interface
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, reader, size, contentType)
	return args.Error(0)
}

func (m *MockStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockStorage) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}
