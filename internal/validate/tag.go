// tag.go implements tag name validation.

package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jpl-au/tag/internal/tagset"
)

// Tag validates a single tag name.
//
// Validation rules:
//   - Empty names rejected (they are never stored)
//   - Newlines rejected (the stored record is "name\ncolor")
//   - Null bytes rejected
//   - Invalid UTF-8 rejected (the plist encoder would replace it with U+FFFD)
func Tag(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty tag", ErrInvalidTag)
	}
	if strings.ContainsRune(name, '\n') {
		return fmt.Errorf("%w: newline in tag %q", ErrInvalidTag, name)
	}
	if strings.ContainsRune(name, 0) {
		return fmt.Errorf("%w: null byte in tag %q", ErrInvalidTag, name)
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("%w: invalid UTF-8 in tag %q", ErrInvalidTag, name)
	}
	return nil
}

// Tags validates every tag in a parsed tag list.
func Tags(tags []tagset.Tag) error {
	for _, t := range tags {
		if err := Tag(t.Name); err != nil {
			return err
		}
	}
	return nil
}
