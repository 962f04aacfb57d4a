// sqlite_ops.go implements the SQLite sidecar attribute store.
//
// Rows are keyed by the absolute, symlink-resolved path so that "a",
// "./a" and a link to a all address the same row, the same way extended
// attributes follow the file. Operations on paths that do not exist fail
// with fs.ErrNotExist just as the xattr calls would.
//
// Design: WAL mode with a busy timeout, as for any small local database
// touched by short-lived CLI processes. Each Set is one upsert statement, so
// a value is replaced whole or not at all.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Register sqlite driver
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens (creating if needed) the database at path and applies
// the schema. The caller should call Close on the returned store.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("open sqlite store: empty database path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	// WAL lets a concurrent reader (another tag process) proceed while a
	// write is in flight.
	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	// Busy timeout: how long to wait when another process holds the lock.
	if _, err := db.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	if err := execSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string { return s.path }

// Get returns the stored value for path and key.
func (s *SQLiteStore) Get(ctx context.Context, path, key string) ([]byte, error) {
	p, err := resolve(path)
	if err != nil {
		return nil, err
	}

	var value []byte
	err = s.db.QueryRowContext(ctx, `SELECT value FROM attrs WHERE path = ? AND key = ?`, p, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get %s: %w", path, ErrNoAttribute)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	return value, nil
}

// Set replaces the value for path and key.
func (s *SQLiteStore) Set(ctx context.Context, path, key string, value []byte) error {
	p, err := resolve(path)
	if err != nil {
		return err
	}
	if value == nil {
		value = []byte{}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO attrs (path, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (path, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, p, key, value, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	return nil
}

// Delete removes the value for path and key.
func (s *SQLiteStore) Delete(ctx context.Context, path, key string) error {
	p, err := resolve(path)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM attrs WHERE path = ? AND key = ?`, p, key)
	if err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("delete %s: %w", path, ErrNoAttribute)
	}
	return nil
}

// Close checkpoints the WAL and closes the database. A failed checkpoint
// does not stop the close.
func (s *SQLiteStore) Close() error {
	cpErr := s.Checkpoint(context.Background())
	if err := s.db.Close(); err != nil {
		return err
	}
	return cpErr
}

// resolve returns the canonical row key for a filesystem path.
func resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return filepath.EvalSymlinks(abs)
}
