// Package cli is the command line front end over the roster services.
package cli

import (
	"database/sql"

	"github.com/dtroode/roster-server/database"
	"github.com/dtroode/roster-server/internal/logger"
	"github.com/dtroode/roster-server/internal/model"
	"github.com/dtroode/roster-server/internal/repository"
	"github.com/dtroode/roster-server/internal/service"
)

// BuildInfo is reported by the version command.
type BuildInfo struct {
	Version string `json:"version" yaml:"version"`
	Date    string `json:"date" yaml:"date"`
	Commit  string `json:"commit" yaml:"commit"`
}

// App holds the dependencies shared by all commands.
type App struct {
	DB      *sql.DB
	Dialect database.Dialect
	Logger  *logger.Logger
	Build   BuildInfo

	Users      *service.Service[*model.User]
	Shifts     *service.Service[*model.Shift]
	UserShifts *service.Service[*model.UserShift]
	Rosters    *service.Service[*model.Roster]
	IcsFiles   *service.IcsFile
}

// NewApp wires a repository and a service for every entity type on db.
// storage may be nil, which disables publishing.
func NewApp(db *sql.DB, dialect database.Dialect, log *logger.Logger, storage model.Storage, opts ...repository.Option) *App {
	users := repository.New[*model.User](db, dialect, repository.UserTable{}, log, opts...)
	shifts := repository.New[*model.Shift](db, dialect, repository.ShiftTable{}, log, opts...)
	userShifts := repository.New[*model.UserShift](db, dialect, repository.UserShiftTable{}, log, opts...)
	rosters := repository.New[*model.Roster](db, dialect, repository.RosterTable{}, log, opts...)
	icsFiles := repository.New[*model.IcsFile](db, dialect, repository.IcsFileTable{}, log, opts...)

	return &App{
		DB:         db,
		Dialect:    dialect,
		Logger:     log,
		Users:      service.New[*model.User](users, log),
		Shifts:     service.New[*model.Shift](shifts, log),
		UserShifts: service.New[*model.UserShift](userShifts, log),
		Rosters:    service.New[*model.Roster](rosters, log),
		IcsFiles:   service.NewIcsFile(icsFiles, storage, log),
	}
}
