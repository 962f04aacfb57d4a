// prune.go removes sidecar rows for files that no longer exist.
//
// Extended attributes disappear with their file; rows in the sidecar
// database do not. Prune is the SQLite store's equivalent of that cleanup
// and must be run deliberately, never as part of a tag operation.
//
// Design: Only paths whose stat fails with fs.ErrNotExist are removed. A
// path that cannot be checked (permissions, unmounted volume) is kept, so
// an unplugged disk does not lose its tags.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Prune deletes every row whose path no longer exists and returns those
// paths. With dryRun set nothing is deleted.
func (s *SQLiteStore) Prune(ctx context.Context, dryRun bool) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT path FROM attrs ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("list paths: %w", err)
	}
	var gone []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan path: %w", err)
		}
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			gone = append(gone, p)
		}
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if dryRun || len(gone) == 0 {
		return gone, nil
	}

	err = s.tx(ctx, func(tx *sql.Tx) error {
		for _, p := range gone {
			if _, err := tx.ExecContext(ctx, `DELETE FROM attrs WHERE path = ?`, p); err != nil {
				return fmt.Errorf("prune %s: %w", p, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return gone, nil
}

// tx runs fn in a transaction, committing on success.
func (s *SQLiteStore) tx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
