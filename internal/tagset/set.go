// set.go implements the tag-set algebra: sorting, merge, remove and match.
//
// Binary search only happens through Sorted, which always holds its own
// sorted copy. Callers never have to remember to sort first.

package tagset

import (
	"slices"
	"sort"
	"strings"
)

func compare(a, b Tag) int {
	return strings.Compare(a.Name, b.Name)
}

// Sort orders tags by name in place. Records with equal names keep their
// relative order.
func Sort(tags []Tag) {
	slices.SortStableFunc(tags, compare)
}

// Sorted is a name-ordered copy of a tag set that supports lookup by name.
type Sorted struct {
	tags []Tag
}

// NewSorted copies and sorts tags.
func NewSorted(tags []Tag) Sorted {
	s := Sorted{tags: slices.Clone(tags)}
	Sort(s.tags)
	return s
}

// Len returns the number of records.
func (s Sorted) Len() int { return len(s.tags) }

// Tags returns the sorted records. The slice is shared with s.
func (s Sorted) Tags() []Tag { return s.tags }

// Find returns the index of the first record named name.
func (s Sorted) Find(name string) (int, bool) {
	i := sort.Search(len(s.tags), func(i int) bool {
		return s.tags[i].Name >= name
	})
	return i, i < len(s.tags) && s.tags[i].Name == name
}

// Contains reports whether a record named name exists.
func (s Sorted) Contains(name string) bool {
	_, ok := s.Find(name)
	return ok
}

// Merge appends incoming to existing and sorts the result. Duplicates are
// kept; the codec only collapses byte-identical records on encode.
func Merge(existing, incoming []Tag) []Tag {
	merged := make([]Tag, 0, len(existing)+len(incoming))
	merged = append(merged, existing...)
	merged = append(merged, incoming...)
	Sort(merged)
	return merged
}

// Remove drops one existing record per name in toRemove. When toRemove
// holds the wildcard, all is true and the caller should delete the whole
// attribute instead of re-encoding. remaining is sorted by name.
//
// When several records share a name only the first one in sorted order is
// removed per matching request, so "a,a" removes two records named "a".
func Remove(existing, toRemove []Tag) (remaining []Tag, all bool) {
	if HasWildcard(toRemove) {
		return nil, true
	}
	if len(existing) == 0 {
		return nil, false
	}

	s := NewSorted(existing)
	removed := make([]bool, s.Len())
	for _, t := range toRemove {
		i, ok := s.Find(t.Name)
		if !ok {
			continue
		}
		for ; i < s.Len() && s.tags[i].Name == t.Name; i++ {
			if !removed[i] {
				removed[i] = true
				break
			}
		}
	}

	remaining = make([]Tag, 0, s.Len())
	for i, t := range s.tags {
		if !removed[i] {
			remaining = append(remaining, t)
		}
	}
	return remaining, false
}

// Match reports whether existing satisfies query. The wildcard matches any
// tagged path, an empty query matches untagged paths, and otherwise every
// query name must be present.
func Match(existing, query []Tag) bool {
	if HasWildcard(query) {
		return len(existing) > 0
	}
	if len(query) == 0 {
		return len(existing) == 0
	}

	s := NewSorted(existing)
	for _, t := range query {
		if !s.Contains(t.Name) {
			return false
		}
	}
	return true
}
