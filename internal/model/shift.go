package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// ShiftEntity is the capability view of a shift.
type ShiftEntity interface {
	Entity
	GetStartDateTime() time.Time
	SetStartDateTime(t time.Time)
	GetEndDateTime() time.Time
	SetEndDateTime(t time.Time)
	GetUserID() int
	SetUserID(id int)
	GetUser() *User
	SetUser(user *User)
}

var _ ShiftEntity = (*Shift)(nil)

// Shift is a block of time owned by a user. User is an optional
// back-reference and may point at a user whose Shifts contain this shift.
type Shift struct {
	DomainEntity
	StartDateTime time.Time
	EndDateTime   time.Time
	UserID        int
	User          *User
}

func (s *Shift) GetStartDateTime() time.Time { return s.StartDateTime }
func (s *Shift) SetStartDateTime(t time.Time) { s.StartDateTime = t }
func (s *Shift) GetEndDateTime() time.Time { return s.EndDateTime }
func (s *Shift) SetEndDateTime(t time.Time) { s.EndDateTime = t }
func (s *Shift) GetUserID() int { return s.UserID }
func (s *Shift) SetUserID(id int) { s.UserID = id }
func (s *Shift) GetUser() *User { return s.User }
func (s *Shift) SetUser(user *User) { s.User = user }

func (s *Shift) String() string {
	return fmt.Sprintf("model.Shift.Id:%d.UserId:%d", s.ID, s.UserID)
}

func (s *Shift) ToJSON() (string, error) { return toJSON(s) }

type shiftJSON struct {
	ID            int        `json:"id"`
	StartDateTime timestamp  `json:"startDateTime"`
	EndDateTime   timestamp  `json:"endDateTime"`
	UserID        int        `json:"userId"`
	User          *userJSON  `json:"user"`
	DateCreated   timestamp  `json:"dateCreated"`
	DateModified  *timestamp `json:"dateModified,omitempty"`
}

func (s *Shift) wire(seen refTracker) *shiftJSON {
	if !seen.enter(s) {
		return nil
	}
	defer seen.leave(s)

	w := &shiftJSON{
		ID:            s.ID,
		StartDateTime: timestamp(s.StartDateTime),
		EndDateTime:   timestamp(s.EndDateTime),
		UserID:        s.UserID,
		DateCreated:   timestamp(s.DateCreated),
		DateModified:  newTimestamp(s.DateModified),
	}
	if s.User != nil {
		w.User = s.User.wire(seen)
	}
	return w
}

func (w *shiftJSON) shift() *Shift {
	if w == nil {
		return nil
	}
	return &Shift{
		DomainEntity: DomainEntity{
			ID:           w.ID,
			DateCreated:  time.Time(w.DateCreated),
			DateModified: w.DateModified.time(),
		},
		StartDateTime: time.Time(w.StartDateTime),
		EndDateTime:   time.Time(w.EndDateTime),
		UserID:        w.UserID,
		User:          w.User.user(),
	}
}

func (s *Shift) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.wire(refTracker{}))
}

func (s *Shift) UnmarshalJSON(data []byte) error {
	var w shiftJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*s = *w.shift()
	return nil
}
