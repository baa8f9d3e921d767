// Package caps describes stream capabilities: ordered lists of structures
// whose fields hold fixed values, lists or ranges. It provides the
// intersection and fixation operations needed to negotiate a format between
// two pipeline stages.
package caps

import "strings"

// Caps is an ordered list of structures. Earlier structures are preferred.
// A nil or empty Caps accepts nothing.
type Caps []Structure

// New returns caps holding the given structures.
func New(structures ...Structure) Caps {
	return append(Caps(nil), structures...)
}

// IsEmpty reports whether c accepts no format.
func (c Caps) IsEmpty() bool {
	return len(c) == 0
}

// IsFixed reports whether c describes exactly one format.
func (c Caps) IsFixed() bool {
	return len(c) == 1 && c[0].IsFixed()
}

// Copy returns a copy of c whose structures can be modified freely.
func (c Caps) Copy() Caps {
	if c == nil {
		return nil
	}
	out := make(Caps, len(c))
	for i, s := range c {
		out[i] = s.Copy()
	}
	return out
}

// Fixate keeps the first structure of c and reduces it to fixed values.
// Empty caps stay empty.
func (c Caps) Fixate() Caps {
	if c.IsEmpty() {
		return nil
	}
	return Caps{c[0].Fixate()}
}

func (c Caps) contains(s Structure) bool {
	str := s.String()
	for _, cs := range c {
		if cs.String() == str {
			return true
		}
	}
	return false
}

// IntersectFirst returns the formats accepted by both a and b. The result
// follows the order of a: for every structure of a, in order, its
// intersections with the structures of b are appended. b only restricts
// the result, it never reorders it.
func IntersectFirst(a, b Caps) Caps {
	var out Caps
	for _, sa := range a {
		for _, sb := range b {
			s, ok := sa.Intersect(sb)
			if !ok || out.contains(s) {
				continue
			}
			out = append(out, s)
		}
	}
	return out
}

// CanIntersect reports whether a and b have at least one format in common.
func CanIntersect(a, b Caps) bool {
	for _, sa := range a {
		for _, sb := range b {
			if _, ok := sa.Intersect(sb); ok {
				return true
			}
		}
	}
	return false
}

// String formats c as a caps string. Empty caps format as "EMPTY".
func (c Caps) String() string {
	if c.IsEmpty() {
		return "EMPTY"
	}
	items := make([]string, len(c))
	for i, s := range c {
		items[i] = s.String()
	}
	return strings.Join(items, "; ")
}
