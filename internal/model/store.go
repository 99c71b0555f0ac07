package model

import "context"

// EntityStore defines CRUD persistence operations for one entity type.
type EntityStore[T Entity] interface {
	Get(ctx context.Context, id int) (T, error)
	GetAll(ctx context.Context) ([]T, error)
	Add(ctx context.Context, entity T) (T, error)
	Update(ctx context.Context, entity T) (T, error)
	UpdateRange(ctx context.Context, entities []T) ([]T, error)
	Delete(ctx context.Context, entity T) (bool, error)
	DeleteRange(ctx context.Context, entities []T) (bool, error)
	HasEntity(ctx context.Context, id int) (bool, error)
}
