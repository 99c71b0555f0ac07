package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// UserShiftEntity is the capability view of a user to shift assignment.
type UserShiftEntity interface {
	Entity
	GetUserID() int
	SetUserID(id int)
	GetShiftID() int
	SetShiftID(id int)
}

var _ UserShiftEntity = (*UserShift)(nil)

// UserShift assigns a shift to a user independently of Shift.UserID.
type UserShift struct {
	DomainEntity
	UserID  int
	ShiftID int
}

func (us *UserShift) GetUserID() int { return us.UserID }
func (us *UserShift) SetUserID(id int) { us.UserID = id }
func (us *UserShift) GetShiftID() int { return us.ShiftID }
func (us *UserShift) SetShiftID(id int) { us.ShiftID = id }

func (us *UserShift) String() string {
	return fmt.Sprintf("model.UserShift.Id:%d.UserId:%d.ShiftId:%d", us.ID, us.UserID, us.ShiftID)
}

func (us *UserShift) ToJSON() (string, error) { return toJSON(us) }

// dateModified is written as null when absent.
type userShiftJSON struct {
	ID           int        `json:"id"`
	UserID       int        `json:"userId"`
	ShiftID      int        `json:"shiftId"`
	DateCreated  timestamp  `json:"dateCreated"`
	DateModified *timestamp `json:"dateModified"`
}

func (us *UserShift) MarshalJSON() ([]byte, error) {
	return json.Marshal(userShiftJSON{
		ID:           us.ID,
		UserID:       us.UserID,
		ShiftID:      us.ShiftID,
		DateCreated:  timestamp(us.DateCreated),
		DateModified: newTimestamp(us.DateModified),
	})
}

func (us *UserShift) UnmarshalJSON(data []byte) error {
	var w userShiftJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*us = UserShift{
		DomainEntity: DomainEntity{
			ID:           w.ID,
			DateCreated:  time.Time(w.DateCreated),
			DateModified: w.DateModified.time(),
		},
		UserID:  w.UserID,
		ShiftID: w.ShiftID,
	}
	return nil
}
