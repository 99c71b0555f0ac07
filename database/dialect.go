package database

import (
	"fmt"
	"strconv"
)

// Supported database/sql driver names.
const (
	DriverPgx    = "pgx"
	DriverSQLite = "sqlite"
)

// Dialect describes the SQL differences between supported engines.
type Dialect struct {
	name     string
	goose    string
	dir      string
	numbered bool
}

var (
	// Postgres uses $n placeholders.
	Postgres = Dialect{name: DriverPgx, goose: "postgres", dir: "migrations/postgres", numbered: true}
	// SQLite uses ? placeholders.
	SQLite = Dialect{name: DriverSQLite, goose: "sqlite3", dir: "migrations/sqlite"}
)

// DialectFor returns the dialect for a driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case DriverPgx, "postgres":
		return Postgres, nil
	case DriverSQLite, "sqlite3":
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Name returns the database/sql driver name.
func (d Dialect) Name() string {
	return d.name
}

// Placeholder returns the bind parameter for the n-th argument, starting at 1.
func (d Dialect) Placeholder(n int) string {
	if d.numbered {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}
