package storage

import "sort"

// Set is a set of unique strings
type Set map[string]struct{}

// NewSet creates a set holding the given members
func NewSet(members ...string) Set {
	s := make(Set, len(members))
	for _, m := range members {
		s[m] = struct{}{}
	}
	return s
}

// Has reports membership
func (s Set) Has(member string) bool {
	_, ok := s[member]
	return ok
}

// Len returns the number of members
func (s Set) Len() int { return len(s) }

// Clone returns an independent copy
func (s Set) Clone() Set {
	c := make(Set, len(s))
	for m := range s {
		c[m] = struct{}{}
	}
	return c
}

// Sorted returns the members in ascending order, never nil
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for m := range s {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Toggle returns a copy of s with member flipped
func (s Set) Toggle(member string) Set {
	next := s.Clone()
	if next.Has(member) {
		delete(next, member)
	} else {
		next[member] = struct{}{}
	}
	return next
}
