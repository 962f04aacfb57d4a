/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// flags.go defines the CLI flag table and the custom flag values behind it.
//
// Separated from root.go to isolate flag semantics from command execution.
//
// Design: Toggle pairs (-n/-N, -t/-T, -g/-G, -c/-C) share one setting, so
// whichever of the pair appears last on the command line wins. A setting
// also records whether any flag touched it; untouched settings fall back
// to the config file. Operation flags share one selection and refuse a
// second assignment, which pflag reports as a parse error before any path
// is read.

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jpl-au/tag/internal/config"
	"github.com/jpl-au/tag/internal/format"
	"github.com/jpl-au/tag/internal/tag"
	"github.com/jpl-au/tag/internal/tagset"
	"github.com/jpl-au/tag/internal/validate"
	"github.com/spf13/pflag"
)

// ErrOperationRespecified is returned when more than one operation flag is
// given.
var ErrOperationRespecified = errors.New("operation respecified")

// setting is a boolean that remembers whether a flag assigned it.
type setting struct {
	value bool
	set   bool
}

// or returns the flag value if one was given, otherwise def.
func (s setting) or(def bool) bool {
	if s.set {
		return s.value
	}
	return def
}

// toggleValue is one side of a toggle pair. Setting it stores on.
type toggleValue struct {
	s  *setting
	on bool
}

func (v *toggleValue) Set(string) error {
	v.s.value = v.on
	v.s.set = true
	return nil
}

func (v *toggleValue) String() string { return strconv.FormatBool(v.s.value) }
func (v *toggleValue) Type() string   { return "bool" }

// selection is the chosen operation and its tag argument.
type selection struct {
	op   tag.Operation
	arg  string
	flag string
	set  bool
}

// opValue selects an operation. Only the first operation flag is accepted.
type opValue struct {
	sel  *selection
	op   tag.Operation
	name string
}

func (v *opValue) Set(s string) error {
	if v.sel.set {
		return fmt.Errorf("%w: --%s after --%s", ErrOperationRespecified, v.name, v.sel.flag)
	}
	if v.op == tag.List {
		// --list takes no tags; drop pflag's NoOptDefVal.
		s = ""
	}
	*v.sel = selection{op: v.op, arg: s, flag: v.name, set: true}
	return nil
}

func (v *opValue) String() string { return "" }

func (v *opValue) Type() string {
	if v.op == tag.List {
		return "bool"
	}
	return "tags"
}

// invocation is everything the flags can say about one run.
type invocation struct {
	op selection

	name      setting
	tags      setting
	garrulous setting
	color     setting
	slash     setting
	nul       setting
	hidden    setting
	recursive setting

	guide  string
	info   bool
	prune  bool
	dryRun bool
}

// bind registers the flag table on fs.
func (inv *invocation) bind(fs *pflag.FlagSet) {
	op := func(op tag.Operation, name, short, usage string) {
		f := fs.VarPF(&opValue{sel: &inv.op, op: op, name: name}, name, short, usage)
		if op == tag.List {
			f.NoOptDefVal = "true"
		}
	}
	op(tag.Set, "set", "s", "Replace the tags on each path")
	op(tag.Add, "add", "a", "Add tags to each path")
	op(tag.Remove, "remove", "r", "Remove tags from each path (* removes all)")
	op(tag.Match, "match", "m", "Print paths carrying all of the tags (* for any, '' for none)")
	op(tag.List, "list", "l", "List paths and their tags (default)")

	toggle := func(s *setting, on bool, name, short, usage string) {
		f := fs.VarPF(&toggleValue{s: s, on: on}, name, short, usage)
		f.NoOptDefVal = "true"
	}
	toggle(&inv.name, true, "name", "n", "Show path names")
	toggle(&inv.name, false, "no-name", "N", "Hide path names")
	toggle(&inv.tags, true, "tags", "t", "Show tags")
	toggle(&inv.tags, false, "no-tags", "T", "Hide tags")
	toggle(&inv.garrulous, true, "garrulous", "g", "Show tags one per line")
	toggle(&inv.garrulous, false, "no-garrulous", "G", "Show tags comma separated")
	toggle(&inv.color, true, "color", "c", "Colorize tags")
	toggle(&inv.color, false, "no-color", "C", "Do not colorize tags")
	toggle(&inv.slash, true, "slash", "p", "Append / to directory names")
	toggle(&inv.nul, true, "nul", "0", "Terminate records with NUL")
	toggle(&inv.hidden, true, "all", "A", "Include dot files when walking")
	toggle(&inv.recursive, true, "recursive", "R", "Descend into directories (list and match)")

	fs.StringVar(&inv.guide, "guide", "", "Show the usage guide, or a topic with --guide=TOPIC")
	fs.Lookup("guide").NoOptDefVal = "guide"
	fs.BoolVar(&inv.info, "info", false, "Show build information and effective configuration")
	fs.BoolVar(&inv.prune, "prune", false, "Remove sqlite store entries for files that no longer exist")
	fs.BoolVar(&inv.dryRun, "dry-run", false, "With --prune, list entries without removing them")
}

// options resolves flags against cfg into the Tagger's immutable options.
// colorOut is the stream auto color mode checks for a terminal.
func (inv *invocation) options(cfg *config.Config, colorOut *os.File) (tag.Options, error) {
	op := tag.List
	if inv.op.set {
		op = inv.op.op
	}

	var tags []tagset.Tag
	if op != tag.List {
		tags = tagset.ParseList(inv.op.arg)
	}
	if op == tag.Set || op == tag.Add {
		if err := validate.Tags(tags); err != nil {
			return tag.Options{}, err
		}
	}

	return tag.Options{
		Op:   op,
		Tags: tags,
		Display: format.Options{
			Name:      inv.name.or(cfg.ShowName()),
			Tags:      inv.tags.or(cfg.ShowTags()),
			Garrulous: inv.garrulous.or(cfg.Garrulous()),
			Slash:     inv.slash.or(cfg.Slash()),
			Nul:       inv.nul.or(cfg.Nul()),
			Color:     inv.color.or(cfg.Color(colorOut)),
		},
		Recursive: inv.recursive.or(cfg.Recursive()),
		Hidden:    inv.hidden.or(cfg.Hidden()),
	}, nil
}

var inv invocation

// out and errOut are the output writers for the command. Tests can replace
// them to capture output.
var (
	out    io.Writer = os.Stdout
	errOut io.Writer = os.Stderr
)

// Out returns the output writer.
func Out() io.Writer { return out }

// SetOut sets the output writers (for testing).
func SetOut(stdout, stderr io.Writer) {
	out = stdout
	errOut = stderr
}

func init() {
	inv.bind(rootCmd.Flags())
}
