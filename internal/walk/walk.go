// Package walk enumerates the paths that list and match operate on.
//
// Entries come back in the order the filesystem returns them. Nothing is
// sorted, so output order for a directory follows the directory itself.
// Symlinks are followed when a path is stat'ed; a link that points at one of
// its own ancestors is walked until the OS refuses the path.
package walk

import (
	"io/fs"
	"os"
	"strings"
)

// Visitor receives each path the walker reaches.
type Visitor interface {
	Visit(path string, info fs.FileInfo) error
}

// VisitorFunc adapts a function to Visitor.
type VisitorFunc func(path string, info fs.FileInfo) error

// Visit calls f.
func (f VisitorFunc) Visit(path string, info fs.FileInfo) error { return f(path, info) }

// Walker drives a Visitor over a path and, when Recursive, everything below it.
type Walker struct {
	Recursive bool
	Hidden    bool

	// OnError receives per-path failures. Walking continues after it returns.
	OnError func(path string, err error)
}

// Walk visits root, then its descendants depth-first with each parent
// before its children.
func (w *Walker) Walk(root string, v Visitor) {
	info, err := os.Stat(root)
	if err != nil {
		w.report(root, err)
		return
	}
	if err := v.Visit(root, info); err != nil {
		w.report(root, err)
	}
	if !info.IsDir() || !w.Recursive {
		return
	}

	names, err := Entries(root, w.Hidden)
	if err != nil {
		w.report(root, err)
		return
	}
	for _, name := range names {
		w.Walk(Join(root, name), v)
	}
}

func (w *Walker) report(path string, err error) {
	if w.OnError != nil {
		w.OnError(path, err)
	}
}

// Entries returns the names in dir in native order. Dot-prefixed names are
// dropped unless hidden is set.
func Entries(dir string, hidden bool) ([]string, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// ReadDir on an *os.File does not sort, unlike os.ReadDir.
	ents, err := f.ReadDir(-1)
	names := make([]string, 0, len(ents))
	for _, e := range ents {
		name := e.Name()
		if name == "." || name == ".." {
			continue
		}
		if !hidden && strings.HasPrefix(name, ".") {
			continue
		}
		names = append(names, name)
	}
	return names, err
}

// Join appends name to dir with a single slash.
func Join(dir, name string) string {
	if strings.HasSuffix(dir, "/") {
		return dir + name
	}
	return dir + "/" + name
}
