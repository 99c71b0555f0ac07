package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/roster-server/database"
	"github.com/dtroode/roster-server/internal/model"
	"github.com/dtroode/roster-server/internal/testutil"
)

const calendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nEND:VCALENDAR\r\n"

// memStorage keeps uploaded objects in memory.
type memStorage struct {
	objects map[string][]byte
	types   map[string]string
}

func newMemStorage() *memStorage {
	return &memStorage{objects: map[string][]byte{}, types: map[string]string{}}
}

func (s *memStorage) Upload(_ context.Context, key string, r io.Reader, _ int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.objects[key] = data
	s.types[key] = contentType
	return nil
}

func (s *memStorage) Download(_ context.Context, key string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.objects[key])), nil
}

func (s *memStorage) Delete(_ context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

func (s *memStorage) Exists(_ context.Context, key string) (bool, error) {
	_, ok := s.objects[key]
	return ok, nil
}

func newTestApp(t *testing.T, storage model.Storage, migrate bool) *App {
	t.Helper()
	ctx := context.Background()

	db, dialect, err := database.Open(ctx, database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	if migrate {
		require.NoError(t, database.Migrate(ctx, db, dialect, testutil.MakeNoopLogger()))
	}

	return NewApp(db, dialect, testutil.MakeNoopLogger(), storage)
}

func run(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func seedUser(t *testing.T, app *App, name string) *model.User {
	t.Helper()
	password := "s3cret"
	user, err := app.Users.Add(context.Background(), &model.User{
		DomainEntity: model.DomainEntity{DateCreated: time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)},
		Username:     name,
		Email:        name + "@example.com",
		Phone:        "555-0100",
		Password:     &password,
	})
	require.NoError(t, err)
	return user
}

func writeCalendar(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(calendar), 0o600))
	return p
}

func TestRoot_RejectsUnknownOutput(t *testing.T) {
	app := newTestApp(t, nil, true)

	_, err := run(t, app, "users", "list", "--output", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestMigrateUp(t *testing.T) {
	app := newTestApp(t, nil, false)

	_, err := run(t, app, "migrate", "up")
	require.NoError(t, err)

	exists, err := app.Users.HasEntity(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUsers(t *testing.T) {
	app := newTestApp(t, nil, true)
	seedUser(t, app, "jdoe")
	seedUser(t, app, "asmith")

	t.Run("list hides passwords", func(t *testing.T) {
		out, err := run(t, app, "users", "list")
		require.NoError(t, err)

		var users []map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &users))
		require.Len(t, users, 2)
		assert.Equal(t, "jdoe", users[0]["username"])
		assert.Equal(t, "asmith", users[1]["username"])
		for _, u := range users {
			assert.NotContains(t, u, "password")
		}
	})

	t.Run("get as yaml", func(t *testing.T) {
		out, err := run(t, app, "users", "get", "1", "-o", "yaml")
		require.NoError(t, err)
		assert.Contains(t, out, "username: jdoe")
		assert.Contains(t, out, "email: jdoe@example.com")
		assert.NotContains(t, out, "s3cret")
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := run(t, app, "users", "get", "42")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("get invalid id", func(t *testing.T) {
		_, err := run(t, app, "users", "get", "abc")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid id")
	})

	t.Run("get out of range id", func(t *testing.T) {
		_, err := run(t, app, "users", "get", "0")
		assert.ErrorIs(t, err, model.ErrOutOfRange)
	})
}

func TestShiftsAndRosters(t *testing.T) {
	app := newTestApp(t, nil, true)
	ctx := context.Background()
	start := time.Date(2024, time.May, 6, 8, 0, 0, 0, time.UTC)

	_, err := app.Shifts.Add(ctx, &model.Shift{StartDateTime: start, EndDateTime: start.Add(8 * time.Hour), UserID: 1})
	require.NoError(t, err)
	_, err = app.Rosters.Add(ctx, &model.Roster{StartDateTime: start, EndDateTime: start.Add(7 * 24 * time.Hour)})
	require.NoError(t, err)

	out, err := run(t, app, "shifts", "list")
	require.NoError(t, err)
	var shifts []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &shifts))
	require.Len(t, shifts, 1)
	assert.Equal(t, float64(1), shifts[0]["userId"])
	assert.Nil(t, shifts[0]["user"])

	out, err = run(t, app, "rosters", "list")
	require.NoError(t, err)
	var rosters []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rosters))
	require.Len(t, rosters, 1)
	assert.Equal(t, false, rosters[0]["completed"])
	assert.Equal(t, []any{}, rosters[0]["users"])
}

func TestIcs(t *testing.T) {
	storage := newMemStorage()
	app := newTestApp(t, storage, true)
	file := writeCalendar(t, "team.ics")

	out, err := run(t, app, "ics", "import", file, "--description", "june", "--created-by", "3")
	require.NoError(t, err)

	var imported map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &imported))
	assert.Equal(t, float64(1), imported["id"])
	assert.Equal(t, "team.ics", imported["fileName"])
	assert.Equal(t, "june", imported["description"])
	assert.Equal(t, model.DefaultContentType, imported["contentType"])
	assert.Equal(t, float64(len(calendar)), imported["fileSize"])
	assert.Equal(t, float64(3), imported["createdByUserId"])
	assert.Equal(t, "team.ics", imported["originalFileName"])

	t.Run("list", func(t *testing.T) {
		out, err := run(t, app, "ics", "list")
		require.NoError(t, err)

		var files []map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &files))
		require.Len(t, files, 1)
		assert.Equal(t, "team.ics", files[0]["fileName"])
	})

	t.Run("get", func(t *testing.T) {
		out, err := run(t, app, "ics", "get", "1", "-o", "yaml")
		require.NoError(t, err)
		assert.Contains(t, out, "fileName: team.ics")
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := run(t, app, "ics", "get", "8")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("publish", func(t *testing.T) {
		out, err := run(t, app, "ics", "publish", "1")
		require.NoError(t, err)

		var published map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &published))
		key, _ := published["key"].(string)
		assert.True(t, strings.HasPrefix(key, "calendars/"))
		assert.Equal(t, []byte(calendar), storage.objects[key])
		assert.Equal(t, model.DefaultContentType, storage.types[key])
	})

	t.Run("import rejects other content", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "notes.txt")
		require.NoError(t, os.WriteFile(p, []byte("hello"), 0o600))

		_, err := run(t, app, "ics", "import", p)
		assert.ErrorIs(t, err, model.ErrInvalidCalendar)
	})

	t.Run("import missing file", func(t *testing.T) {
		_, err := run(t, app, "ics", "import", filepath.Join(t.TempDir(), "absent.ics"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open calendar")
	})
}

func TestIcsPublish_WithoutStorage(t *testing.T) {
	app := newTestApp(t, nil, true)

	_, err := run(t, app, "ics", "publish", "1")
	assert.ErrorIs(t, err, model.ErrStorageUnavailable)
}

func TestVersion(t *testing.T) {
	app := newTestApp(t, nil, true)
	app.Build = BuildInfo{Version: "1.2.3", Date: "2024-05-01", Commit: "abc123"}

	out, err := run(t, app, "version", "-o", "yaml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "version: 1.2.3\n"))
	assert.Contains(t, out, "commit: abc123")
}
