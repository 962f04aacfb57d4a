/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// tag has no subcommands: the operation is chosen by flag and every
// positional argument is a path.
//
// Design: Per-path failures are printed by the Tagger as they happen and
// surface here only as tag.ErrFailed, which sets the exit status without
// printing anything further. Every other error (bad flags, bad tag names,
// config or store failures) is fatal before any path is touched.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/charmbracelet/glamour"
	"github.com/jpl-au/tag/guide"
	"github.com/jpl-au/tag/internal/config"
	"github.com/jpl-au/tag/internal/log"
	"github.com/jpl-au/tag/internal/store"
	"github.com/jpl-au/tag/internal/tag"
	"github.com/jpl-au/tag/internal/version"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "tag [flags] [PATH...]",
	Short: "Manipulate and query tags on files",
	Long: `Attach colored tags to files and directories, then list, add, remove,
set or search by them. Tags are stored in the Finder tag extended attribute.

Tag lists are comma separated; each tag is name or name:color.
Run 'tag --guide' for the full guide.`,
	Version:       version.Short(),
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func run(c *cobra.Command, args []string) error {
	if inv.guide != "" {
		return showGuide(inv.guide)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if inv.info {
		return showInfo(cfg)
	}

	opts, err := inv.options(cfg, os.Stdout)
	if err != nil {
		return err
	}

	s, err := store.Open(cfg.Backend(), cfg.StorePath())
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Backend(), err)
	}
	defer func() {
		if closeErr := s.Close(); closeErr != nil {
			fmt.Fprintf(errOut, "warning: closing store: %v\n", closeErr)
		}
	}()

	if cfg.LogEnabled() {
		openLog()
	}

	if inv.prune {
		return prune(c.Context(), s)
	}

	t := tag.New(s, cfg.Key(), opts)
	t.SetOutput(out, errOut)
	return t.Run(c.Context(), args)
}

// openLog initialises the audit logger (warn if it fails, but continue).
func openLog() {
	if err := log.Open(config.LogPath()); err != nil {
		fmt.Fprintf(errOut, "warning: audit log unavailable: %v\n", err)
		return
	}
	if wd, err := os.Getwd(); err == nil {
		log.SetProject(wd)
	}
}

// prune drops sidecar rows for deleted files.
func prune(ctx context.Context, s store.Store) error {
	db, ok := s.(*store.SQLiteStore)
	if !ok {
		return errors.New("--prune only applies to the sqlite store (set store.backend or TAG_STORE)")
	}

	paths, err := db.Prune(ctx, inv.dryRun)
	log.Event("tag:prune", "prune").
		Detail("dry_run", inv.dryRun).
		Detail("count", len(paths)).
		Write(err)
	if err != nil {
		return err
	}

	verb := "pruned"
	if inv.dryRun {
		verb = "would prune"
	}
	for _, p := range paths {
		fmt.Fprintf(out, "%s: %s\n", verb, p)
	}
	return nil
}

// showGuide renders a guide page, as markdown on a terminal and raw
// otherwise.
func showGuide(name string) error {
	if name == "guide" {
		name = ""
	}
	content, err := guide.Get(name)
	if err != nil {
		return err
	}

	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		rendered, err := glamour.Render(content, "dark")
		if err == nil {
			fmt.Fprint(out, rendered)
			return nil
		}
	}

	fmt.Fprint(out, content)
	return nil
}

// showInfo prints build information and the effective configuration.
func showInfo(cfg *config.Config) error {
	fmt.Fprint(out, version.Get().String())
	fmt.Fprintf(out, "Config File:  %s\n", cfg.Path())
	fmt.Fprintf(out, "Audit Log:    %s\n\n", config.LogPath())

	all := cfg.All()
	keys := config.ValidKeys()
	slices.Sort(keys)
	for _, k := range keys {
		src := "default"
		if cfg.IsSet(k) {
			src = "set"
		}
		fmt.Fprintf(out, "%-18s %-8s %s\n", k, src, all[k])
	}
	return nil
}

// Execute runs the root command and handles process lifecycle.
// Exit code 1 indicates that the invocation was rejected or at least one
// path failed.
func Execute() {
	err := rootCmd.Execute()
	log.Close()

	if err != nil {
		if !errors.Is(err, tag.ErrFailed) {
			fmt.Fprintf(errOut, "tag: %v\n", err)
		}
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing.
func RootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.SetVersionTemplate("tag v{{.Version}}\n")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w\nRun 'tag --help' for usage.", err)
	})
}
