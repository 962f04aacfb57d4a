// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic. Keys are dotted YAML paths (e.g., "display.color") and are
// used for environment overrides and the --info listing.
//
// Design: Pointers are used for optional fields so we can distinguish between
// "not set" (nil) and "explicitly set to false". Defaults apply only when the
// user hasn't set a value.

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jpl-au/tag/internal/store"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"display.name", "display.tags", "display.garrulous",
		"display.slash", "display.nul", "display.color",
		"walk.hidden", "walk.recursive",
		"store.backend", "store.path", "store.key",
		"log.enabled",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// boolField returns the pointer backing a boolean key, or nil.
func (c *Config) boolField(key string) **bool {
	switch key {
	case "display.name":
		return &c.Display.Name
	case "display.tags":
		return &c.Display.Tags
	case "display.garrulous":
		return &c.Display.Garrulous
	case "display.slash":
		return &c.Display.Slash
	case "display.nul":
		return &c.Display.Nul
	case "walk.hidden":
		return &c.Walk.Hidden
	case "walk.recursive":
		return &c.Walk.Recursive
	case "log.enabled":
		return &c.Log.Enabled
	}
	return nil
}

// Get returns the effective value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "display.name":
		return strconv.FormatBool(c.ShowName()), nil
	case "display.tags":
		return strconv.FormatBool(c.ShowTags()), nil
	case "display.garrulous":
		return strconv.FormatBool(c.Garrulous()), nil
	case "display.slash":
		return strconv.FormatBool(c.Slash()), nil
	case "display.nul":
		return strconv.FormatBool(c.Nul()), nil
	case "display.color":
		return c.ColorMode(), nil
	case "walk.hidden":
		return strconv.FormatBool(c.Hidden()), nil
	case "walk.recursive":
		return strconv.FormatBool(c.Recursive()), nil
	case "store.backend":
		return c.Backend(), nil
	case "store.path":
		return c.StorePath(), nil
	case "store.key":
		return c.Key(), nil
	case "log.enabled":
		return strconv.FormatBool(c.LogEnabled()), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	if f := c.boolField(key); f != nil {
		v := strings.ToLower(value)
		if v != "true" && v != "false" {
			return fmt.Errorf("%w: %s must be true or false", ErrInvalidValue, key)
		}
		b := v == "true"
		*f = &b
		return nil
	}

	switch key {
	case "display.color":
		v := strings.ToLower(value)
		if v != ColorAuto && v != ColorAlways && v != ColorNever {
			return fmt.Errorf("%w: display.color must be auto, always or never", ErrInvalidValue)
		}
		c.Display.Color = v
	case "store.backend":
		v := strings.ToLower(value)
		if !slices.Contains(store.Backends(), v) {
			return fmt.Errorf("%w: store.backend must be one of %v", ErrInvalidValue, store.Backends())
		}
		c.Store.Backend = v
	case "store.path":
		if value == "" {
			return fmt.Errorf("%w: store.path must not be empty", ErrInvalidValue)
		}
		c.Store.Path = value
	case "store.key":
		if value == "" || strings.ContainsRune(value, 0) {
			return fmt.Errorf("%w: store.key must be non-empty and contain no NUL", ErrInvalidValue)
		}
		c.Store.Key = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all effective configuration values as a map.
func (c *Config) All() map[string]string {
	m := make(map[string]string, len(ValidKeys()))
	for _, k := range ValidKeys() {
		v, _ := c.Get(k)
		m[k] = v
	}
	return m
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	if f := c.boolField(key); f != nil {
		return *f != nil
	}
	switch key {
	case "display.color":
		return c.Display.Color != ""
	case "store.backend":
		return c.Store.Backend != ""
	case "store.path":
		return c.Store.Path != ""
	case "store.key":
		return c.Store.Key != ""
	default:
		return false
	}
}
