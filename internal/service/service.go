package service

import (
	"context"
	"reflect"

	"github.com/dtroode/roster-server/internal/logger"
	"github.com/dtroode/roster-server/internal/model"
)

// Service validates CRUD requests for one entity type and passes them on to
// its store. Results are returned exactly as the store produced them.
type Service[T model.Entity] struct {
	store      model.EntityStore[T]
	logger     *logger.Logger
	entityType string
}

func New[T model.Entity](store model.EntityStore[T], logger *logger.Logger) *Service[T] {
	return &Service[T]{
		store:      store,
		logger:     logger,
		entityType: entityTypeName[T](),
	}
}

func (s *Service[T]) Get(ctx context.Context, id int) (T, error) {
	var zero T
	if id <= 0 {
		return zero, s.fail("get", model.NewOutOfRangeError("id", id), "entity_id", id)
	}

	entity, err := s.store.Get(ctx, id)
	if err != nil {
		return zero, s.fail("get", err, "entity_id", id)
	}

	return entity, nil
}

func (s *Service[T]) GetAll(ctx context.Context) ([]T, error) {
	entities, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, s.fail("get all", err)
	}

	return entities, nil
}

func (s *Service[T]) Add(ctx context.Context, entity T) (T, error) {
	var zero T
	if model.IsNil(entity) {
		return zero, s.fail("add", model.NewNullArgumentError("entity"))
	}
	if entity.GetID() != 0 {
		return zero, s.fail("add", model.NewOutOfRangeError("Id", entity.GetID()), "entity_id", entity.GetID())
	}

	added, err := s.store.Add(ctx, entity)
	if err != nil {
		return zero, s.fail("add", err)
	}

	return added, nil
}

func (s *Service[T]) Update(ctx context.Context, entity T) (T, error) {
	var zero T
	if err := checkEntity(entity, "entity"); err != nil {
		return zero, s.fail("update", err)
	}

	updated, err := s.store.Update(ctx, entity)
	if err != nil {
		return zero, s.fail("update", err, "entity_id", entity.GetID())
	}

	return updated, nil
}

func (s *Service[T]) UpdateRange(ctx context.Context, entities []T) ([]T, error) {
	if err := checkEntities(entities, "entities"); err != nil {
		return nil, s.fail("update range", err)
	}

	updated, err := s.store.UpdateRange(ctx, entities)
	if err != nil {
		return nil, s.fail("update range", err, "count", len(entities))
	}

	return updated, nil
}

func (s *Service[T]) Delete(ctx context.Context, entity T) (bool, error) {
	if err := checkEntity(entity, "entity"); err != nil {
		return false, s.fail("delete", err)
	}

	deleted, err := s.store.Delete(ctx, entity)
	if err != nil {
		return false, s.fail("delete", err, "entity_id", entity.GetID())
	}

	return deleted, nil
}

func (s *Service[T]) DeleteRange(ctx context.Context, entities []T) (bool, error) {
	if err := checkEntities(entities, "entities"); err != nil {
		return false, s.fail("delete range", err)
	}

	deleted, err := s.store.DeleteRange(ctx, entities)
	if err != nil {
		return false, s.fail("delete range", err, "count", len(entities))
	}

	return deleted, nil
}

func (s *Service[T]) HasEntity(ctx context.Context, id int) (bool, error) {
	if id <= 0 {
		return false, s.fail("has entity", model.NewOutOfRangeError("id", id), "entity_id", id)
	}

	exists, err := s.store.HasEntity(ctx, id)
	if err != nil {
		return false, s.fail("has entity", err, "entity_id", id)
	}

	return exists, nil
}

// fail logs err with the operation context and returns it unchanged.
func (s *Service[T]) fail(op string, err error, attrs ...any) error {
	args := append([]any{"operation", op, "entity_type", s.entityType}, attrs...)
	args = append(args, "error", err.Error())
	s.logger.Error("Service: operation failed", args...)
	return err
}

// checkEntity rejects nil entities and entities that were never stored.
func checkEntity[T model.Entity](entity T, param string) error {
	if model.IsNil(entity) {
		return model.NewNullArgumentError(param)
	}
	if entity.GetID() <= 0 {
		return model.NewOutOfRangeError("Id", entity.GetID())
	}
	return nil
}

func checkEntities[T model.Entity](entities []T, param string) error {
	if entities == nil {
		return model.NewNullArgumentError(param)
	}
	if len(entities) == 0 {
		return model.NewOutOfRangeError(param, 0)
	}
	return nil
}

func entityTypeName[T any]() string {
	t := reflect.TypeFor[T]()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
