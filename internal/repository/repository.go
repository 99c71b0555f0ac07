package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/dtroode/roster-server/database"
	"github.com/dtroode/roster-server/internal/logger"
	"github.com/dtroode/roster-server/internal/model"
)

var (
	_ model.EntityStore[*model.User]      = (*Repository[*model.User])(nil)
	_ model.EntityStore[*model.Shift]     = (*Repository[*model.Shift])(nil)
	_ model.EntityStore[*model.UserShift] = (*Repository[*model.UserShift])(nil)
	_ model.EntityStore[*model.Roster]    = (*Repository[*model.Roster])(nil)
	_ model.EntityStore[*model.IcsFile]   = (*Repository[*model.IcsFile])(nil)
)

// Option configures a Repository.
type Option func(*options)

type options struct {
	fixedUpdates bool
}

// WithFixedUpdates drops the existence check that rejects Update whenever
// another row is stored and makes UpdateRange write every element instead of
// removing them.
func WithFixedUpdates() Option {
	return func(o *options) {
		o.fixedUpdates = true
	}
}

// Repository provides CRUD access to one entity table. Every write runs in
// its own transaction.
type Repository[T model.Entity] struct {
	db         *sql.DB
	dialect    database.Dialect
	table      Table[T]
	logger     *logger.Logger
	entityType string
	opts       options
}

// New creates a repository for the entity type mapped by table.
func New[T model.Entity](db *sql.DB, dialect database.Dialect, table Table[T], logger *logger.Logger, opts ...Option) *Repository[T] {
	r := &Repository[T]{
		db:         db,
		dialect:    dialect,
		table:      table,
		logger:     logger,
		entityType: entityTypeName[T](),
	}
	for _, opt := range opts {
		opt(&r.opts)
	}
	return r
}

// EntityType returns the name of the entity type stored by the repository.
func (r *Repository[T]) EntityType() string {
	return r.entityType
}

// Get returns the entity with the given id, or the zero value when there is none.
func (r *Repository[T]) Get(ctx context.Context, id int) (T, error) {
	var zero T
	if id <= 0 {
		return zero, model.NewOutOfRangeError("id", id)
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = %s", r.selectList(), r.table.Name(), r.dialect.Placeholder(1))
	entity, err := r.table.Scan(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, nil
		}
		r.logger.Error("Repository: failed to get entity", "entity_type", r.entityType, "id", id, "error", err.Error())
		return zero, err
	}

	return entity, nil
}

// GetAll returns every stored entity ordered by id.
func (r *Repository[T]) GetAll(ctx context.Context) ([]T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", r.selectList(), r.table.Name())

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Repository: failed to get all entities", "entity_type", r.entityType, "error", err.Error())
		return nil, err
	}
	defer rows.Close()

	entities := make([]T, 0)
	for rows.Next() {
		entity, err := r.table.Scan(rows)
		if err != nil {
			r.logger.Error("Repository: failed to scan entity", "entity_type", r.entityType, "error", err.Error())
			return nil, err
		}
		entities = append(entities, entity)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Repository: failed to iterate entities", "entity_type", r.entityType, "error", err.Error())
		return nil, err
	}

	return entities, nil
}

// Add inserts a new entity and sets the id assigned by the store.
func (r *Repository[T]) Add(ctx context.Context, entity T) (T, error) {
	var zero T
	if model.IsNil(entity) {
		return zero, model.NewNullArgumentError("entity")
	}
	if entity.GetID() != 0 {
		return zero, model.NewOutOfRangeError("Id", entity.GetID())
	}

	columns := r.table.Columns()
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		r.table.Name(), strings.Join(columns, ", "), r.placeholders(1, len(columns)))

	var id int
	err := database.WithTx(ctx, r.db, func(ctx context.Context, tx database.DBTX) error {
		return tx.QueryRowContext(ctx, query, r.table.Values(entity)...).Scan(&id)
	})
	if err != nil {
		r.logger.Error("Repository: failed to add entity", "entity_type", r.entityType, "error", err.Error())
		return zero, err
	}

	entity.SetID(id)
	r.logger.Debug("Repository: entity added", "entity_type", r.entityType, "id", id)

	return entity, nil
}

// Update writes entity and fails with ErrNotFound when its row is not stored.
// Unless the repository was built WithFixedUpdates, the call also fails as soon
// as any stored row has a different id.
func (r *Repository[T]) Update(ctx context.Context, entity T) (T, error) {
	var zero T
	if model.IsNil(entity) {
		return zero, model.NewNullArgumentError("entity")
	}

	err := database.WithTx(ctx, r.db, func(ctx context.Context, tx database.DBTX) error {
		if !r.opts.fixedUpdates {
			other, err := r.existsOtherThan(ctx, tx, entity.GetID())
			if err != nil {
				return err
			}
			if other {
				return r.findError(model.ErrOperationFailed)
			}
		}
		return r.update(ctx, tx, entity)
	})
	if err != nil {
		r.logger.Error("Repository: failed to update entity", "entity_type", r.entityType, "id", entity.GetID(), "error", err.Error())
		return zero, err
	}

	return entity, nil
}

// UpdateRange returns entities unchanged. Unless the repository was built
// WithFixedUpdates, their rows are removed from the store instead of being
// updated.
func (r *Repository[T]) UpdateRange(ctx context.Context, entities []T) ([]T, error) {
	if err := checkRange(entities); err != nil {
		return nil, err
	}

	err := database.WithTx(ctx, r.db, func(ctx context.Context, tx database.DBTX) error {
		if !r.opts.fixedUpdates {
			return r.deleteIDs(ctx, tx, entities)
		}
		for _, entity := range entities {
			if err := r.update(ctx, tx, entity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Repository: failed to update entities", "entity_type", r.entityType, "count", len(entities), "error", err.Error())
		return nil, err
	}

	return entities, nil
}

// Delete removes the row of entity and fails with ErrNotFound when there is
// none.
func (r *Repository[T]) Delete(ctx context.Context, entity T) (bool, error) {
	if model.IsNil(entity) {
		return false, model.NewNullArgumentError("entity")
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE id = %s", r.table.Name(), r.dialect.Placeholder(1))
	err := database.WithTx(ctx, r.db, func(ctx context.Context, tx database.DBTX) error {
		res, err := tx.ExecContext(ctx, query, entity.GetID())
		if err != nil {
			return err
		}
		return r.requireRow(res)
	})
	if err != nil {
		r.logger.Error("Repository: failed to delete entity", "entity_type", r.entityType, "id", entity.GetID(), "error", err.Error())
		return false, err
	}

	r.logger.Debug("Repository: entity deleted", "entity_type", r.entityType, "id", entity.GetID())
	return true, nil
}

// DeleteRange removes the rows of all entities in one transaction.
func (r *Repository[T]) DeleteRange(ctx context.Context, entities []T) (bool, error) {
	if err := checkRange(entities); err != nil {
		return false, err
	}

	err := database.WithTx(ctx, r.db, func(ctx context.Context, tx database.DBTX) error {
		return r.deleteIDs(ctx, tx, entities)
	})
	if err != nil {
		r.logger.Error("Repository: failed to delete entities", "entity_type", r.entityType, "count", len(entities), "error", err.Error())
		return false, err
	}

	return true, nil
}

// HasEntity reports whether a row with id exists.
func (r *Repository[T]) HasEntity(ctx context.Context, id int) (bool, error) {
	if id <= 0 {
		return false, model.NewOutOfRangeError("id", id)
	}

	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE id = %s)", r.table.Name(), r.dialect.Placeholder(1))

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		r.logger.Error("Repository: failed to check entity", "entity_type", r.entityType, "id", id, "error", err.Error())
		return false, err
	}

	return exists, nil
}

func (r *Repository[T]) update(ctx context.Context, tx database.DBTX, entity T) error {
	columns := r.table.Columns()
	assignments := make([]string, len(columns))
	for i, c := range columns {
		assignments[i] = fmt.Sprintf("%s = %s", c, r.dialect.Placeholder(i+1))
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = %s",
		r.table.Name(), strings.Join(assignments, ", "), r.dialect.Placeholder(len(columns)+1))

	args := append(r.table.Values(entity), entity.GetID())
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return r.requireRow(res)
}

// requireRow fails with ErrNotFound when a write touched no row.
func (r *Repository[T]) requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return r.findError(model.ErrNotFound)
	}
	return nil
}

func (r *Repository[T]) existsOtherThan(ctx context.Context, tx database.DBTX, id int) (bool, error) {
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE id <> %s)", r.table.Name(), r.dialect.Placeholder(1))

	var exists bool
	if err := tx.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *Repository[T]) deleteIDs(ctx context.Context, tx database.DBTX, entities []T) error {
	ids := make([]any, len(entities))
	for i, e := range entities {
		ids[i] = e.GetID()
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE id IN (%s)", r.table.Name(), r.placeholders(1, len(ids)))
	_, err := tx.ExecContext(ctx, query, ids...)
	return err
}

func (r *Repository[T]) findError(kind error) error {
	return fmt.Errorf("error finding entity of type %s: %w", r.entityType, kind)
}

func (r *Repository[T]) selectList() string {
	return "id, " + strings.Join(r.table.Columns(), ", ")
}

func (r *Repository[T]) placeholders(start, n int) string {
	ph := make([]string, n)
	for i := range ph {
		ph[i] = r.dialect.Placeholder(start + i)
	}
	return strings.Join(ph, ", ")
}

func checkRange[T model.Entity](entities []T) error {
	if entities == nil {
		return model.NewNullArgumentError("entities")
	}
	if len(entities) == 0 {
		return model.NewOutOfRangeError("entities", 0)
	}
	for _, e := range entities {
		if model.IsNil(e) {
			return model.NewNullArgumentError("entities")
		}
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
