// Package format renders a path and its tags for CLI display.
//
// One call to Path produces one record: the name field, the tags either
// comma separated on the same line or one per line (garrulous), and a single
// terminator. The terminator is a newline, or NUL for consumption by xargs -0.
package format

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/jpl-au/tag/internal/tagset"
)

// NameWidth is the column the name field is padded to when tags follow it
// on the same line.
const NameWidth = 31

// Options selects what Path prints.
type Options struct {
	Name      bool // print the path
	Tags      bool // print the tags
	Garrulous bool // one tag per line
	Slash     bool // append "/" to directory names
	Nul       bool // NUL instead of newline
	Color     bool // colorize tag names
}

// Terminator returns the record terminator for o.
func (o Options) Terminator() byte {
	if o.Nul {
		return 0
	}
	return '\n'
}

// Background colors for each tag color. Gray, purple and orange have no
// basic ANSI background so they use the 256-color palette.
var palette = map[tagset.Color]*color.Color{
	tagset.None:   color.New(color.Reset),
	tagset.Gray:   color.New(48, 5, 241),
	tagset.Green:  color.New(color.BgGreen),
	tagset.Purple: color.New(48, 5, 129),
	tagset.Blue:   color.New(color.BgBlue),
	tagset.Yellow: color.New(color.BgYellow),
	tagset.Red:    color.New(color.BgRed),
	tagset.Orange: color.New(48, 5, 208),
}

func init() {
	// Whether to color is decided per call, not by color.NoColor's TTY check.
	for _, c := range palette {
		c.EnableColor()
	}
}

// Tag returns the display form of t.
func Tag(t tagset.Tag, colorize bool) string {
	if !colorize {
		return t.Name
	}
	c, ok := palette[t.Color]
	if !ok {
		c = palette[tagset.None]
	}
	return c.Sprint(t.Name)
}

// Path writes one record for path. tags is not modified; a sorted copy is
// printed.
func Path(w io.Writer, path string, isDir bool, tags []tagset.Tag, opts Options) error {
	var b strings.Builder
	term := opts.Terminator()

	name := ""
	if opts.Name {
		name = path
		if opts.Slash && isDir {
			name += "/"
		}
	}
	printTags := opts.Tags && len(tags) > 0

	if opts.Name {
		if printTags && !opts.Garrulous {
			fmt.Fprintf(&b, "%-*s", NameWidth, name)
		} else {
			b.WriteString(name)
		}
	}

	if printTags {
		sorted := slices.Clone(tags)
		tagset.Sort(sorted)

		first, sep := "", ","
		if opts.Garrulous {
			first, sep = "", ""
			if opts.Name {
				first, sep = "    ", "    "
			}
		} else if opts.Name {
			first = "\t"
		}

		for i, t := range sorted {
			s := sep
			if i == 0 {
				s = first
			}
			if opts.Garrulous && (i > 0 || opts.Name) {
				b.WriteByte(term)
			}
			b.WriteString(s)
			b.WriteString(Tag(t, opts.Color))
		}
	}

	if opts.Name || printTags {
		b.WriteByte(term)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
