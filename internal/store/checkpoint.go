// checkpoint.go implements WAL checkpoint operations for SQLite.
//
// Design: TRUNCATE mode fully flushes the WAL and removes the -wal/-shm
// files, so a tag run leaves only the database file behind next to the
// user's config.

package store

import (
	"context"
	"fmt"
)

// Checkpoint writes all WAL data back to the main database file and truncates
// the WAL. Close calls it before closing the database.
func (s *SQLiteStore) Checkpoint(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `PRAGMA wal_checkpoint(TRUNCATE)`); err != nil {
		return fmt.Errorf("WAL checkpoint: %w", err)
	}
	return nil
}
