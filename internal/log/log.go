// Package log records an audit trail of tag operations.
//
// Entries are stored in $TAG_HOME/log/tag-log.db and describe which paths
// were tagged, untagged or queried, by whom, and whether it worked.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("tag:add", "add").
//		Path(p).
//		Tags(tagset.Names(incoming)).
//		Write(err)
//
//	log.Event("tag:match", "match").
//		Detail("visited", visited).
//		Detail("matched", matched).
//		Write(nil)
//
// The source parameter follows the format "tag:{operation}".
package log

import (
	"database/sql"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source string   // e.g. "tag:add", "tag:list"
	User   string   // login name of the caller
	Action string   // verb: set, add, remove, list, match
	Path   string   // path the operation touched
	Tags   []string // tag names from the command line

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write]
// to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			User:   currentUser(),
			Start:  time.Now().Unix(),
		},
	}
}

// Path sets the file or directory this operation affects.
func (b *Builder) Path(path string) *Builder {
	b.entry.Path = path
	return b
}

// Tags records the tag names supplied to the operation.
func (b *Builder) Tags(names []string) *Builder {
	b.entry.Tags = names
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
//
// Use for operation-specific data that doesn't fit standard fields, such as
// visit and match counts.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry to the database, deriving success/failure from err.
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger at path. Safe to call multiple times;
// only the first call opens a database.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db, path: path}
	return nil
}

// SetProject sets the project identifier for subsequent log entries.
// The dir should be the absolute working directory of the invocation.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// DBPath returns the path of the open log database, or "" when closed.
func DBPath() string {
	mu.Lock()
	defer mu.Unlock()
	if global == nil {
		return ""
	}
	return global.path
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}

func currentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}

func joinTags(names []string) string {
	return strings.Join(names, ",")
}
