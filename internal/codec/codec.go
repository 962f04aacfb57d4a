// Package codec converts tag sets to and from the blob stored in a path's
// tag attribute.
//
// The blob is a binary property list (bplist00) holding an array of
// strings, one per tag, each formatted as the tag name, a newline, and the
// decimal color code. This is the format Finder writes for
// com.apple.metadata:_kMDItemUserTags, so blobs written here can be read by
// other tools that understand that attribute.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jpl-au/tag/internal/tagset"
	"howett.net/plist"
)

// MinBlobLen is the length of the binary plist magic. Blobs no longer than
// this cannot hold a container and decode to an empty set.
const MinBlobLen = 8

// ErrMalformed is returned when a blob is long enough to parse but is not a
// binary plist array of strings.
var ErrMalformed = errors.New("malformed tag data")

var magic = []byte("bplist")

// Strings formats tags as they are stored. Tags with an empty name are
// skipped and byte-identical records are written once. Records that share a
// name but differ in color are both kept.
func Strings(tags []tagset.Tag) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		if t.Name == "" {
			continue
		}
		s := t.Name + "\n" + strconv.Itoa(int(t.Color))
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// Encode serialises tags in input order.
func Encode(tags []tagset.Tag) ([]byte, error) {
	b, err := plist.Marshal(Strings(tags), plist.BinaryFormat)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}
	return b, nil
}

// Decode parses a stored blob. A nil or too-short blob is an empty set, not
// an error.
func Decode(blob []byte) (tags []tagset.Tag, err error) {
	if len(blob) <= MinBlobLen {
		return nil, nil
	}
	if !bytes.HasPrefix(blob, magic) {
		return nil, fmt.Errorf("%w: not a binary property list", ErrMalformed)
	}

	// The plist decoder recovers its own panics, but a corrupt attribute
	// must never take the process down.
	defer func() {
		if r := recover(); r != nil {
			tags, err = nil, fmt.Errorf("%w: %v", ErrMalformed, r)
		}
	}()

	var entries []string
	if _, err := plist.Unmarshal(blob, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	tags = make([]tagset.Tag, 0, len(entries))
	for _, e := range entries {
		tags = append(tags, parseEntry(e))
	}
	return tags, nil
}

// parseEntry splits "name\ncolor". A missing or unreadable color is None.
func parseEntry(s string) tagset.Tag {
	name, code, _ := strings.Cut(s, "\n")
	n, err := strconv.Atoi(code)
	if err != nil {
		return tagset.Tag{Name: name}
	}
	return tagset.Tag{Name: name, Color: tagset.ColorFromCode(n)}
}
