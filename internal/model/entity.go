package model

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"
)

// Entity is the capability every persisted record exposes: identity,
// audit timestamps and JSON serialization.
type Entity interface {
	GetID() int
	SetID(id int)
	GetDateCreated() time.Time
	SetDateCreated(t time.Time)
	GetDateModified() *time.Time
	SetDateModified(t *time.Time)
	ToJSON() (string, error)
	// Cast is reserved for entity conversion and always fails with ErrNotImplemented.
	Cast(target Entity) (Entity, error)
}

var _ Entity = (*DomainEntity)(nil)

// DomainEntity holds the identity and audit timestamps shared by all entities.
// An ID of 0 means the entity has not been stored yet.
type DomainEntity struct {
	ID           int
	DateCreated  time.Time
	DateModified *time.Time
}

func (e *DomainEntity) GetID() int { return e.ID }
func (e *DomainEntity) SetID(id int) { e.ID = id }
func (e *DomainEntity) GetDateCreated() time.Time { return e.DateCreated }
func (e *DomainEntity) SetDateCreated(t time.Time) { e.DateCreated = t }
func (e *DomainEntity) GetDateModified() *time.Time { return e.DateModified }
func (e *DomainEntity) SetDateModified(t *time.Time) { e.DateModified = t }
func (e *DomainEntity) Cast(Entity) (Entity, error) { return nil, ErrNotImplemented }
func (e *DomainEntity) ToJSON() (string, error) { return toJSON(e) }
func (e *DomainEntity) String() string { return fmt.Sprintf("model.DomainEntity.Id:%d", e.ID) }

type domainEntityJSON struct {
	ID           int        `json:"id"`
	DateCreated  timestamp  `json:"dateCreated"`
	DateModified *timestamp `json:"dateModified"`
}

func (e *DomainEntity) MarshalJSON() ([]byte, error) {
	return json.Marshal(domainEntityJSON{
		ID:           e.ID,
		DateCreated:  timestamp(e.DateCreated),
		DateModified: newTimestamp(e.DateModified),
	})
}

func (e *DomainEntity) UnmarshalJSON(data []byte) error {
	var w domainEntityJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*e = DomainEntity{
		ID:           w.ID,
		DateCreated:  time.Time(w.DateCreated),
		DateModified: w.DateModified.time(),
	}
	return nil
}

// IsNil reports whether v is nil or a typed nil pointer held in an interface.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func toJSON(v json.Marshaler) (string, error) {
	data, err := v.MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(data), nil
}
