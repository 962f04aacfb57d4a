// Package config provides reading of tag configuration.
// Supports both global ($TAG_HOME/config.yaml, default ~/.tag/config.yaml)
// and local (.tag/config.yaml in the working directory).
// Reading: uses local if it exists, otherwise global. Environment variables
// override either; command-line flags override everything.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jpl-au/tag/internal/store"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Environment variables read by Load.
const (
	EnvHome  = "TAG_HOME"
	EnvStore = "TAG_STORE"
)

// Color modes for display.color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in $TAG_HOME/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is directory-specific config in .tag/config.yaml
	ScopeLocal
)

// Display holds output defaults.
type Display struct {
	Name      *bool  `yaml:"name,omitempty"`
	Tags      *bool  `yaml:"tags,omitempty"`
	Garrulous *bool  `yaml:"garrulous,omitempty"`
	Slash     *bool  `yaml:"slash,omitempty"`
	Nul       *bool  `yaml:"nul,omitempty"`
	Color     string `yaml:"color,omitempty"`
}

// Walk holds traversal defaults for list and match.
type Walk struct {
	Hidden    *bool `yaml:"hidden,omitempty"`
	Recursive *bool `yaml:"recursive,omitempty"`
}

// Store selects where tags are kept.
type Store struct {
	Backend string `yaml:"backend,omitempty"`
	Path    string `yaml:"path,omitempty"`
	Key     string `yaml:"key,omitempty"`
}

// Log holds audit log options.
type Log struct {
	Enabled *bool `yaml:"enabled,omitempty"`
}

// Config contains configuration for tag.
type Config struct {
	Display Display `yaml:"display,omitempty"`
	Walk    Walk    `yaml:"walk,omitempty"`
	Store   Store   `yaml:"store,omitempty"`
	Log     Log     `yaml:"log,omitempty"`

	// path is the file this config was loaded from
	path  string
	scope Scope
}

// Validate checks that all configured values are acceptable.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	switch c.Display.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: display.color must be auto, always or never, got %q",
			ErrInvalidValue, c.Display.Color)
	}
	if c.Store.Backend != "" && !slices.Contains(store.Backends(), c.Store.Backend) {
		return fmt.Errorf("%w: store.backend must be one of %v, got %q",
			ErrInvalidValue, store.Backends(), c.Store.Backend)
	}
	if strings.ContainsRune(c.Store.Key, 0) {
		return fmt.Errorf("%w: store.key must not contain NUL", ErrInvalidValue)
	}
	return nil
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// ShowName returns whether paths are printed (defaults to true).
func (c *Config) ShowName() bool { return boolOr(c.Display.Name, true) }

// ShowTags returns whether tags are printed (defaults to true).
func (c *Config) ShowTags() bool { return boolOr(c.Display.Tags, true) }

// Garrulous returns whether tags are printed one per line (defaults to false).
func (c *Config) Garrulous() bool { return boolOr(c.Display.Garrulous, false) }

// Slash returns whether directories get a trailing "/" (defaults to false).
func (c *Config) Slash() bool { return boolOr(c.Display.Slash, false) }

// Nul returns whether records end in NUL instead of newline (defaults to false).
func (c *Config) Nul() bool { return boolOr(c.Display.Nul, false) }

// ColorMode returns display.color (defaults to auto).
func (c *Config) ColorMode() string {
	if c.Display.Color == "" {
		return ColorAuto
	}
	return c.Display.Color
}

// Color resolves ColorMode for output written to f. Auto colors only when f
// is a terminal.
func (c *Config) Color(f *os.File) bool {
	switch c.ColorMode() {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// Hidden returns whether dot-prefixed entries are walked (defaults to false).
func (c *Config) Hidden() bool { return boolOr(c.Walk.Hidden, false) }

// Recursive returns whether list and match descend into directories
// (defaults to false).
func (c *Config) Recursive() bool { return boolOr(c.Walk.Recursive, false) }

// Backend returns the store backend name (defaults to xattr).
func (c *Config) Backend() string {
	if c.Store.Backend == "" {
		return store.BackendXattr
	}
	return c.Store.Backend
}

// StorePath returns the SQLite store file (defaults to $TAG_HOME/tags.db).
func (c *Config) StorePath() string {
	if c.Store.Path == "" {
		return filepath.Join(Home(), "tags.db")
	}
	return c.Store.Path
}

// Key returns the attribute key tags are stored under.
func (c *Config) Key() string {
	if c.Store.Key == "" {
		return store.DefaultKey
	}
	return c.Store.Key
}

// LogEnabled returns whether the audit log is written (defaults to true).
func (c *Config) LogEnabled() bool { return boolOr(c.Log.Enabled, true) }

// LogPath returns the audit log database path.
func LogPath() string {
	return filepath.Join(Home(), "log", "tag-log.db")
}

// Home returns the tag home directory: $TAG_HOME, else ~/.tag.
func Home() string {
	if h := os.Getenv(EnvHome); h != "" {
		return h
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fall back to the working directory so tag still runs in
		// environments without a home (containers, etc.)
		return ".tag"
	}
	return filepath.Join(home, ".tag")
}

// LocalPath returns the path to the local config file.
func LocalPath() string {
	return filepath.Join(".tag", "config.yaml")
}

// GlobalPath returns the path to the global config file.
func GlobalPath() string {
	return filepath.Join(Home(), "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
// Environment overrides are applied to the result.
func Load() (*Config, error) {
	scope := ScopeGlobal
	if _, err := os.Stat(LocalPath()); err == nil {
		scope = ScopeLocal
	}
	cfg, err := LoadScope(scope)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadScope reads configuration from a specific scope without environment
// overrides.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Path returns the file this config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// applyEnv overrides file values from the environment.
func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvStore); v != "" {
		if err := c.Set("store.backend", v); err != nil {
			return fmt.Errorf("%s: %w", EnvStore, err)
		}
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	if scope == ScopeLocal {
		return LocalPath()
	}
	return GlobalPath()
}
