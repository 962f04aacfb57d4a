// Package guide provides the embedded usage pages shown by tag --guide.
package guide

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed *.md
var files embed.FS

// Get returns the content of a guide page by name. If name is empty the
// default "guide" page is returned.
func Get(name string) (string, error) {
	if name == "" {
		name = "guide"
	}
	data, err := files.ReadFile(name + ".md")
	if err != nil {
		names, _ := List()
		return "", fmt.Errorf("guide page %q: %w\n\nAvailable: %s", name, fs.ErrNotExist, strings.Join(names, ", "))
	}
	return string(data), nil
}

// List returns the available topic names (without the .md suffix). The
// default page is not listed.
func List() ([]string, error) {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if name != "guide.md" {
			names = append(names, strings.TrimSuffix(name, ".md"))
		}
	}
	return names, nil
}
