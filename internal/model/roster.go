package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// RosterEntity is the capability view of a roster.
type RosterEntity interface {
	Entity
	GetUsers() []*User
	SetUsers(users []*User)
	GetShifts() []*Shift
	SetShifts(shifts []*Shift)
	GetCompleted() bool
	SetCompleted(completed bool)
	GetStartDateTime() time.Time
	SetStartDateTime(t time.Time)
	GetEndDateTime() time.Time
	SetEndDateTime(t time.Time)
}

var _ RosterEntity = (*Roster)(nil)

// Roster groups users and shifts over a scheduling window. An empty Users or
// Shifts list decodes as nil.
type Roster struct {
	DomainEntity
	Users         []*User
	Shifts        []*Shift
	Completed     bool
	StartDateTime time.Time
	EndDateTime   time.Time
}

func (r *Roster) GetUsers() []*User { return r.Users }
func (r *Roster) SetUsers(users []*User) { r.Users = users }
func (r *Roster) GetShifts() []*Shift { return r.Shifts }
func (r *Roster) SetShifts(shifts []*Shift) { r.Shifts = shifts }
func (r *Roster) GetCompleted() bool { return r.Completed }
func (r *Roster) SetCompleted(completed bool) { r.Completed = completed }
func (r *Roster) GetStartDateTime() time.Time { return r.StartDateTime }
func (r *Roster) SetStartDateTime(t time.Time) { r.StartDateTime = t }
func (r *Roster) GetEndDateTime() time.Time { return r.EndDateTime }
func (r *Roster) SetEndDateTime(t time.Time) { r.EndDateTime = t }

func (r *Roster) String() string {
	return fmt.Sprintf("model.Roster.Id:%d.Completed:%t", r.ID, r.Completed)
}

func (r *Roster) ToJSON() (string, error) { return toJSON(r) }

type rosterJSON struct {
	ID            int          `json:"id"`
	Users         []*userJSON  `json:"users"`
	Completed     bool         `json:"completed"`
	StartDateTime timestamp    `json:"startDateTime"`
	EndDateTime   timestamp    `json:"endDateTime"`
	DateCreated   timestamp    `json:"dateCreated"`
	DateModified  *timestamp   `json:"dateModified,omitempty"`
	Shifts        []*shiftJSON `json:"shifts,omitempty"`
}

func (r *Roster) MarshalJSON() ([]byte, error) {
	seen := refTracker{}
	seen.enter(r)
	return json.Marshal(rosterJSON{
		ID:            r.ID,
		Users:         usersToJSON(r.Users, seen),
		Completed:     r.Completed,
		StartDateTime: timestamp(r.StartDateTime),
		EndDateTime:   timestamp(r.EndDateTime),
		DateCreated:   timestamp(r.DateCreated),
		DateModified:  newTimestamp(r.DateModified),
		Shifts:        shiftsToJSON(r.Shifts, seen),
	})
}

func (r *Roster) UnmarshalJSON(data []byte) error {
	var w rosterJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = Roster{
		DomainEntity: DomainEntity{
			ID:           w.ID,
			DateCreated:  time.Time(w.DateCreated),
			DateModified: w.DateModified.time(),
		},
		Users:         usersFromJSON(w.Users),
		Shifts:        shiftsFromJSON(w.Shifts),
		Completed:     w.Completed,
		StartDateTime: time.Time(w.StartDateTime),
		EndDateTime:   time.Time(w.EndDateTime),
	}
	return nil
}
