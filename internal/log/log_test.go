package log

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) string {
	t.Helper()
	Close()
	p := filepath.Join(t.TempDir(), "log", "tag-log.db")
	require.NoError(t, Open(p))
	t.Cleanup(Close)
	SetProject("/test/project")
	return p
}

func queryDB(t *testing.T, p string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", p)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLogger(t *testing.T) {
	t.Run("open and close", func(t *testing.T) {
		p := openTemp(t)
		assert.FileExists(t, p)
		assert.Equal(t, p, DBPath())

		Close()
		assert.Empty(t, DBPath())
	})

	t.Run("log entry", func(t *testing.T) {
		p := openTemp(t)

		Log(Entry{
			Source:  "tag:add",
			User:    "tester",
			Action:  "add",
			Path:    "notes.txt",
			Tags:    []string{"work", "home"},
			Success: true,
		})

		db := queryDB(t, p)
		var count int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM log").Scan(&count))
		assert.Equal(t, 1, count)

		var source, user, action, path, tags, project string
		var success int
		err := db.QueryRow("SELECT source, user, action, path, tags, project, success FROM log WHERE id = 1").
			Scan(&source, &user, &action, &path, &tags, &project, &success)
		require.NoError(t, err)
		assert.Equal(t, "tag:add", source)
		assert.Equal(t, "tester", user)
		assert.Equal(t, "add", action)
		assert.Equal(t, "notes.txt", path)
		assert.Equal(t, "work,home", tags)
		assert.Equal(t, hash("/test/project"), project)
		assert.Equal(t, 1, success)
	})

	t.Run("log error entry", func(t *testing.T) {
		p := openTemp(t)

		Log(Entry{
			Source:  "tag:remove",
			Action:  "remove",
			Path:    "missing.txt",
			Success: false,
			Error:   "no such file or directory",
		})

		var success int
		var errMsg string
		err := queryDB(t, p).QueryRow("SELECT success, error FROM log ORDER BY id DESC LIMIT 1").
			Scan(&success, &errMsg)
		require.NoError(t, err)
		assert.Equal(t, 0, success)
		assert.Equal(t, "no such file or directory", errMsg)
	})

	t.Run("log without logger is noop", func(t *testing.T) {
		Close()
		Log(Entry{Source: "tag:list", Action: "list", Success: true})
	})

	t.Run("open is idempotent", func(t *testing.T) {
		p := openTemp(t)
		require.NoError(t, Open(filepath.Join(t.TempDir(), "other.db")))
		assert.Equal(t, p, DBPath(), "second open keeps the first database")
	})
}

func TestHash(t *testing.T) {
	h1 := hash("/home/user/project")
	h2 := hash("/home/user/project")
	h3 := hash("/home/user/other")

	assert.Equal(t, h1, h2, "same input should produce same hash")
	assert.NotEqual(t, h1, h3, "different input should produce different hash")
	assert.Len(t, h1, 16, "BLAKE2b-64 should produce 16 hex chars")
}

func TestBuilder(t *testing.T) {
	t.Run("fluent API success", func(t *testing.T) {
		p := openTemp(t)

		Event("tag:set", "set").
			Path("a.txt").
			Tags([]string{"x"}).
			Write(nil)

		var source, action, path, tags, user string
		var success int
		err := queryDB(t, p).QueryRow("SELECT source, action, path, tags, COALESCE(user, ''), success FROM log ORDER BY id DESC LIMIT 1").
			Scan(&source, &action, &path, &tags, &user, &success)
		require.NoError(t, err)
		assert.Equal(t, "tag:set", source)
		assert.Equal(t, "set", action)
		assert.Equal(t, "a.txt", path)
		assert.Equal(t, "x", tags)
		assert.Equal(t, currentUser(), user)
		assert.Equal(t, 1, success)
	})

	t.Run("fluent API with error", func(t *testing.T) {
		p := openTemp(t)

		testErr := errors.New("boom")
		Event("tag:add", "add").Path("a.txt").Write(testErr)

		var success int
		var errMsg string
		err := queryDB(t, p).QueryRow("SELECT success, error FROM log ORDER BY id DESC LIMIT 1").
			Scan(&success, &errMsg)
		require.NoError(t, err)
		assert.Equal(t, 0, success)
		assert.Equal(t, "boom", errMsg)
	})

	t.Run("fluent API with Detail", func(t *testing.T) {
		p := openTemp(t)

		Event("tag:match", "match").
			Detail("query", "work").
			Detail("matched", 42).
			Write(nil)

		var detail string
		err := queryDB(t, p).QueryRow("SELECT detail FROM log ORDER BY id DESC LIMIT 1").Scan(&detail)
		require.NoError(t, err)
		assert.Contains(t, detail, "work")
		assert.Contains(t, detail, "42")
	})
}
