// Package tagset defines the tag record type and the set operations used by
// add, remove and match.
//
// A tag is a name plus one of eight Finder-style colors. Identity for search
// and display is the name alone, compared byte-wise and case-sensitively.
// The color rides along with the name but never takes part in ordering.
package tagset

import (
	"strings"
)

// Color is a tag label color. The numeric values are the codes stored in
// the encoded blob, so they must not be reordered.
type Color int

const (
	None Color = iota
	Gray
	Green
	Purple
	Blue
	Yellow
	Red
	Orange
)

// Wildcard is the tag name meaning "all tags" for remove and "any tags" for match.
const Wildcard = "*"

var colorNames = [...]string{"none", "gray", "green", "purple", "blue", "yellow", "red", "orange"}

// String returns the lower-case color word.
func (c Color) String() string {
	if c < None || c > Orange {
		return colorNames[None]
	}
	return colorNames[c]
}

// ColorFromCode maps a stored color code to a Color. Codes outside 0..7
// are treated as None.
func ColorFromCode(code int) Color {
	if code < int(None) || code > int(Orange) {
		return None
	}
	return Color(code)
}

// ParseColor converts a color spec to a Color. A single digit 1-7 selects
// Gray..Orange positionally; a color word is matched case-insensitively.
// Anything else is None.
func ParseColor(s string) Color {
	if len(s) == 1 && s[0] >= '1' && s[0] <= '7' {
		return Color(s[0] - '0')
	}
	for i := Gray; i <= Orange; i++ {
		if strings.EqualFold(s, colorNames[i]) {
			return i
		}
	}
	return None
}

// Tag is a single named, colored label.
type Tag struct {
	Name  string
	Color Color
}

// String returns the tag in "name:color" form, or just the name when it
// has no color.
func (t Tag) String() string {
	if t.Color == None {
		return t.Name
	}
	return t.Name + ":" + t.Color.String()
}

// Parse converts one token of the form "name" or "name:color". Without an
// explicit color the name itself is tried as a color spec, so "red" is a
// red tag named "red".
func Parse(token string) Tag {
	name, spec, ok := strings.Cut(token, ":")
	if !ok {
		spec = name
	}
	return Tag{Name: name, Color: ParseColor(spec)}
}

// ParseList splits a comma-separated tag argument. Empty tokens and tokens
// with an empty name are dropped.
func ParseList(arg string) []Tag {
	var tags []Tag
	for _, tok := range strings.Split(arg, ",") {
		if tok == "" {
			continue
		}
		t := Parse(tok)
		if t.Name == "" {
			continue
		}
		tags = append(tags, t)
	}
	return tags
}

// HasWildcard reports whether any tag is the wildcard.
func HasWildcard(tags []Tag) bool {
	for _, t := range tags {
		if t.Name == Wildcard {
			return true
		}
	}
	return false
}

// Names returns the tag names in order.
func Names(tags []Tag) []string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return names
}
