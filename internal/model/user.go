package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// UserEntity is the capability view of a user. Reading the password through
// it never yields an absent value.
type UserEntity interface {
	Entity
	GetUsername() string
	SetUsername(username string)
	GetFirstName() *string
	SetFirstName(name *string)
	GetLastName() *string
	SetLastName(name *string)
	GetEmail() string
	SetEmail(email string)
	GetPhone() string
	SetPhone(phone string)
	GetPassword() string
	SetPassword(password *string)
	GetShifts() []*Shift
	SetShifts(shifts []*Shift)
	GetIsOrganizer() bool
	SetIsOrganizer(organizer bool)
	ScrubPassword()
}

var _ UserEntity = (*User)(nil)

// User is a person who can own shifts and organize rosters.
type User struct {
	DomainEntity
	Username    string
	FirstName   *string
	LastName    *string
	Email       string
	Phone       string
	Password    *string
	IsOrganizer bool
	// Shifts is nil when the user owns none; an empty list decodes as nil.
	Shifts []*Shift
}

func (u *User) GetUsername() string { return u.Username }
func (u *User) SetUsername(username string) { u.Username = username }
func (u *User) GetFirstName() *string { return u.FirstName }
func (u *User) SetFirstName(name *string) { u.FirstName = name }
func (u *User) GetLastName() *string { return u.LastName }
func (u *User) SetLastName(name *string) { u.LastName = name }
func (u *User) GetEmail() string { return u.Email }
func (u *User) SetEmail(email string) { u.Email = email }
func (u *User) GetPhone() string { return u.Phone }
func (u *User) SetPhone(phone string) { u.Phone = phone }
func (u *User) GetShifts() []*Shift { return u.Shifts }
func (u *User) SetShifts(shifts []*Shift) { u.Shifts = shifts }
func (u *User) GetIsOrganizer() bool { return u.IsOrganizer }
func (u *User) SetIsOrganizer(organizer bool) { u.IsOrganizer = organizer }
func (u *User) SetPassword(password *string) { u.Password = password }

// GetPassword returns the stored password, or "" when none is set.
func (u *User) GetPassword() string {
	if u.Password == nil {
		return ""
	}
	return *u.Password
}

// ScrubPassword removes the password. It cannot be undone.
func (u *User) ScrubPassword() {
	u.Password = nil
}

func (u *User) String() string {
	return fmt.Sprintf("model.User.Id:%d.UserName:%s", u.ID, u.Username)
}

func (u *User) ToJSON() (string, error) { return toJSON(u) }

type userJSON struct {
	ID           int          `json:"id"`
	Username     string       `json:"username"`
	FirstName    *string      `json:"firstName,omitempty"`
	LastName     *string      `json:"lastName,omitempty"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	Password     *string      `json:"password,omitempty"`
	IsOrganizer  bool         `json:"isOrganizer"`
	DateCreated  timestamp    `json:"dateCreated"`
	DateModified *timestamp   `json:"dateModified,omitempty"`
	Shifts       []*shiftJSON `json:"shifts,omitempty"`
}

func (u *User) wire(seen refTracker) *userJSON {
	if !seen.enter(u) {
		return nil
	}
	defer seen.leave(u)

	return &userJSON{
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		Phone:        u.Phone,
		Password:     u.Password,
		IsOrganizer:  u.IsOrganizer,
		DateCreated:  timestamp(u.DateCreated),
		DateModified: newTimestamp(u.DateModified),
		Shifts:       shiftsToJSON(u.Shifts, seen),
	}
}

func (w *userJSON) user() *User {
	if w == nil {
		return nil
	}
	return &User{
		DomainEntity: DomainEntity{
			ID:           w.ID,
			DateCreated:  time.Time(w.DateCreated),
			DateModified: w.DateModified.time(),
		},
		Username:    w.Username,
		FirstName:   w.FirstName,
		LastName:    w.LastName,
		Email:       w.Email,
		Phone:       w.Phone,
		Password:    w.Password,
		IsOrganizer: w.IsOrganizer,
		Shifts:      shiftsFromJSON(w.Shifts),
	}
}

func (u *User) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.wire(refTracker{}))
}

func (u *User) UnmarshalJSON(data []byte) error {
	var w userJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*u = *w.user()
	return nil
}
