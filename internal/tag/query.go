// query.go implements list and match, the read-only operations that walk
// directories.

package tag

import (
	"context"
	"io/fs"

	"github.com/jpl-au/tag/internal/format"
	"github.com/jpl-au/tag/internal/log"
	"github.com/jpl-au/tag/internal/tagset"
	"github.com/jpl-au/tag/internal/walk"
)

// query walks paths for list or match, then logs one summary entry.
func (t *Tagger) query(ctx context.Context, paths []string) {
	if len(paths) == 0 {
		names, err := walk.Entries(".", t.opts.Hidden)
		if err != nil {
			t.report(".", err)
		}
		paths = names
	}

	w := &walk.Walker{
		Recursive: t.opts.Recursive,
		Hidden:    t.opts.Hidden,
		OnError:   t.report,
	}

	var visited, printed int
	v := walk.VisitorFunc(func(path string, info fs.FileInfo) error {
		visited++
		ok, err := t.visit(ctx, path, info)
		if ok {
			printed++
		}
		return err
	})

	before := t.failures
	for _, p := range paths {
		if p == "" {
			continue
		}
		w.Walk(p, v)
	}

	op := t.opts.Op.String()
	log.Event("tag:"+op, op).
		Tags(tagset.Names(t.opts.Tags)).
		Detail("paths", len(paths)).
		Detail("visited", visited).
		Detail("printed", printed).
		Detail("failed", t.failures-before).
		Write(nil)
}

// visit prints path when the operation selects it. A path whose tags cannot
// be read is reported and treated as untagged, so list still shows it and
// match can still select it as untagged.
func (t *Tagger) visit(ctx context.Context, path string, info fs.FileInfo) (bool, error) {
	tags, readErr := t.Tags(ctx, path)
	if readErr != nil {
		tags = nil
	}

	if t.opts.Op == Match && !tagset.Match(tags, t.opts.Tags) {
		return false, readErr
	}
	if err := format.Path(t.out, path, info.IsDir(), tags, t.opts.Display); err != nil {
		return false, err
	}
	return true, readErr
}
