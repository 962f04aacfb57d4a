// Package tag drives the tag operations over the paths named on the
// command line.
//
// Each path is handled independently: its blob is read from the store,
// decoded, changed or queried with the tagset algebra, and written back
// whole. A failure on one path is reported and the run moves on to the
// next; Run returns ErrFailed once every path has been tried.
package tag

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/tag/internal/codec"
	"github.com/jpl-au/tag/internal/format"
	"github.com/jpl-au/tag/internal/log"
	"github.com/jpl-au/tag/internal/store"
	"github.com/jpl-au/tag/internal/tagset"
)

// ErrFailed is returned by Run when at least one path failed.
var ErrFailed = errors.New("one or more paths failed")

// Operation selects what Run does with each path.
type Operation int

const (
	List Operation = iota
	Set
	Add
	Remove
	Match
)

var opNames = [...]string{"list", "set", "add", "remove", "match"}

func (o Operation) String() string {
	if o < List || o > Match {
		return "unknown"
	}
	return opNames[o]
}

// Mutates reports whether o writes to the store.
func (o Operation) Mutates() bool {
	return o == Set || o == Add || o == Remove
}

// Options is the parsed invocation. It is not modified after New.
type Options struct {
	Op        Operation
	Tags      []tagset.Tag // argument to set, add, remove or match
	Display   format.Options
	Recursive bool // list and match only
	Hidden    bool
}

// Tagger runs one Operation against a store.
type Tagger struct {
	store    store.Store
	key      string
	opts     Options
	out      io.Writer
	errOut   io.Writer
	failures int
}

// New returns a Tagger writing results to stdout and failures to stderr.
func New(s store.Store, key string, opts Options) *Tagger {
	return &Tagger{
		store:  s,
		key:    key,
		opts:   opts,
		out:    os.Stdout,
		errOut: os.Stderr,
	}
}

// SetOutput redirects results and failure reports.
func (t *Tagger) SetOutput(out, errOut io.Writer) {
	t.out = out
	t.errOut = errOut
}

// Failures returns how many paths have failed so far.
func (t *Tagger) Failures() int { return t.failures }

// Run applies the operation to paths. Empty paths are skipped. With no
// paths, list and match use the entries of the working directory; set, add
// and remove do nothing.
func (t *Tagger) Run(ctx context.Context, paths []string) error {
	if t.opts.Op.Mutates() {
		for _, p := range paths {
			if p == "" {
				continue
			}
			if err := t.mutate(ctx, p); err != nil {
				t.report(p, err)
			}
		}
	} else {
		t.query(ctx, paths)
	}

	if t.failures > 0 {
		return fmt.Errorf("%w: %d", ErrFailed, t.failures)
	}
	return nil
}

func (t *Tagger) report(path string, err error) {
	t.failures++
	fmt.Fprintf(t.errOut, "tag: %s: %v\n", path, err)
}

// mutate runs set, add or remove on one path and logs the outcome.
func (t *Tagger) mutate(ctx context.Context, path string) error {
	var err error
	switch t.opts.Op {
	case Set:
		err = t.Set(ctx, path)
	case Add:
		err = t.Add(ctx, path)
	case Remove:
		err = t.Remove(ctx, path)
	}
	op := t.opts.Op.String()
	log.Event("tag:"+op, op).
		Path(path).
		Tags(tagset.Names(t.opts.Tags)).
		Write(err)
	return err
}

// Set replaces the tags on path with the requested list.
func (t *Tagger) Set(ctx context.Context, path string) error {
	return t.write(ctx, path, t.opts.Tags)
}

// Add merges the requested tags into those already on path.
func (t *Tagger) Add(ctx context.Context, path string) error {
	existing, err := t.Tags(ctx, path)
	if err != nil {
		return err
	}
	return t.write(ctx, path, tagset.Merge(existing, t.opts.Tags))
}

// Remove drops the requested tags from path. The wildcard removes the
// attribute outright without decoding it.
func (t *Tagger) Remove(ctx context.Context, path string) error {
	if tagset.HasWildcard(t.opts.Tags) {
		return t.clear(ctx, path)
	}

	existing, err := t.Tags(ctx, path)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		return nil
	}
	remaining, _ := tagset.Remove(existing, t.opts.Tags)
	return t.write(ctx, path, remaining)
}

// Tags reads and decodes the tags on path. A path without the attribute
// has no tags.
func (t *Tagger) Tags(ctx context.Context, path string) ([]tagset.Tag, error) {
	blob, err := t.store.Get(ctx, path, t.key)
	if errors.Is(err, store.ErrNoAttribute) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return codec.Decode(blob)
}

// write encodes tags and replaces the attribute, or deletes it when there
// is nothing to store.
func (t *Tagger) write(ctx context.Context, path string, tags []tagset.Tag) error {
	if len(codec.Strings(tags)) == 0 {
		return t.clear(ctx, path)
	}
	blob, err := codec.Encode(tags)
	if err != nil {
		return err
	}
	return t.store.Set(ctx, path, t.key, blob)
}

// clear deletes the attribute. An already absent attribute is success.
func (t *Tagger) clear(ctx context.Context, path string) error {
	err := t.store.Delete(ctx, path, t.key)
	if errors.Is(err, store.ErrNoAttribute) {
		return nil
	}
	return err
}
