package repository

import (
	"database/sql"

	"github.com/dtroode/roster-server/internal/model"
)

var (
	_ Table[*model.User]      = UserTable{}
	_ Table[*model.Shift]     = ShiftTable{}
	_ Table[*model.UserShift] = UserShiftTable{}
	_ Table[*model.Roster]    = RosterTable{}
	_ Table[*model.IcsFile]   = IcsFileTable{}
)

// UserTable maps users. Owned shifts live in the shifts table.
type UserTable struct{}

func (UserTable) Name() string { return "users" }

func (UserTable) Columns() []string {
	return []string{"username", "first_name", "last_name", "email", "phone", "password", "is_organizer", "date_created", "date_modified"}
}

func (UserTable) Values(u *model.User) []any {
	return []any{
		u.Username, nullableString(u.FirstName), nullableString(u.LastName), u.Email, u.Phone,
		nullableString(u.Password), u.IsOrganizer, u.DateCreated, nullableTime(u.DateModified),
	}
}

func (UserTable) Scan(row Scanner) (*model.User, error) {
	var (
		u                             model.User
		firstName, lastName, password sql.NullString
		modified                      sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Username, &firstName, &lastName, &u.Email, &u.Phone,
		&password, &u.IsOrganizer, &u.DateCreated, &modified,
	)
	if err != nil {
		return nil, err
	}
	u.FirstName = stringPtr(firstName)
	u.LastName = stringPtr(lastName)
	u.Password = stringPtr(password)
	u.DateModified = timePtr(modified)
	return &u, nil
}

// ShiftTable maps shifts. The User back-reference is not persisted.
type ShiftTable struct{}

func (ShiftTable) Name() string { return "shifts" }

func (ShiftTable) Columns() []string {
	return []string{"start_date_time", "end_date_time", "user_id", "date_created", "date_modified"}
}

func (ShiftTable) Values(s *model.Shift) []any {
	return []any{s.StartDateTime, s.EndDateTime, s.UserID, s.DateCreated, nullableTime(s.DateModified)}
}

func (ShiftTable) Scan(row Scanner) (*model.Shift, error) {
	var (
		s        model.Shift
		modified sql.NullTime
	)
	if err := row.Scan(&s.ID, &s.StartDateTime, &s.EndDateTime, &s.UserID, &s.DateCreated, &modified); err != nil {
		return nil, err
	}
	s.DateModified = timePtr(modified)
	return &s, nil
}

type UserShiftTable struct{}

func (UserShiftTable) Name() string { return "user_shifts" }

func (UserShiftTable) Columns() []string {
	return []string{"user_id", "shift_id", "date_created", "date_modified"}
}

func (UserShiftTable) Values(us *model.UserShift) []any {
	return []any{us.UserID, us.ShiftID, us.DateCreated, nullableTime(us.DateModified)}
}

func (UserShiftTable) Scan(row Scanner) (*model.UserShift, error) {
	var (
		us       model.UserShift
		modified sql.NullTime
	)
	if err := row.Scan(&us.ID, &us.UserID, &us.ShiftID, &us.DateCreated, &modified); err != nil {
		return nil, err
	}
	us.DateModified = timePtr(modified)
	return &us, nil
}

// RosterTable maps the scalar roster fields. Member users and shifts are
// not persisted.
type RosterTable struct{}

func (RosterTable) Name() string { return "rosters" }

func (RosterTable) Columns() []string {
	return []string{"completed", "start_date_time", "end_date_time", "date_created", "date_modified"}
}

func (RosterTable) Values(r *model.Roster) []any {
	return []any{r.Completed, r.StartDateTime, r.EndDateTime, r.DateCreated, nullableTime(r.DateModified)}
}

func (RosterTable) Scan(row Scanner) (*model.Roster, error) {
	var (
		r        model.Roster
		modified sql.NullTime
	)
	if err := row.Scan(&r.ID, &r.Completed, &r.StartDateTime, &r.EndDateTime, &r.DateCreated, &modified); err != nil {
		return nil, err
	}
	r.DateModified = timePtr(modified)
	return &r, nil
}

type IcsFileTable struct{}

func (IcsFileTable) Name() string { return "ics_files" }

func (IcsFileTable) Columns() []string {
	return []string{
		"file_name", "description", "content_type", "file_content", "file_size",
		"original_file_name", "created_by_user_id", "date_created", "date_modified",
	}
}

func (IcsFileTable) Values(f *model.IcsFile) []any {
	return []any{
		f.FileName, nullableString(f.Description), f.ContentType, f.FileContent, f.FileSize,
		nullableString(f.OriginalFileName), nullableInt(f.CreatedByUserID), f.DateCreated, nullableTime(f.DateModified),
	}
}

func (IcsFileTable) Scan(row Scanner) (*model.IcsFile, error) {
	var (
		f                             model.IcsFile
		description, originalFileName sql.NullString
		createdBy                     sql.NullInt64
		modified                      sql.NullTime
	)
	err := row.Scan(
		&f.ID, &f.FileName, &description, &f.ContentType, &f.FileContent, &f.FileSize,
		&originalFileName, &createdBy, &f.DateCreated, &modified,
	)
	if err != nil {
		return nil, err
	}
	f.Description = stringPtr(description)
	f.OriginalFileName = stringPtr(originalFileName)
	f.CreatedByUserID = intPtr(createdBy)
	f.DateModified = timePtr(modified)
	return &f, nil
}
