package caps

import (
	"strings"
)

// MediaVideoRaw is the structure name of uncompressed video.
const MediaVideoRaw = "video/x-raw"

// Well-known field names of raw video structures.
const (
	FieldFormat    = "format"
	FieldWidth     = "width"
	FieldHeight    = "height"
	FieldFrameRate = "framerate"
)

// Field is a named structure value.
type Field struct {
	Name  string
	Value Value
}

// Structure is a named, ordered set of fields describing one family of
// acceptable stream formats.
type Structure struct {
	Name   string
	fields []Field
}

// NewStructure creates a structure. Later fields replace earlier fields with
// the same name.
func NewStructure(name string, fields ...Field) Structure {
	s := Structure{Name: name}
	for _, f := range fields {
		s.Set(f.Name, f.Value)
	}
	return s
}

// Fields returns a copy of the structure's fields in order.
func (s Structure) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// Get returns the value of the named field.
func (s Structure) Get(name string) (Value, bool) {
	for _, f := range s.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Set replaces the named field, or appends it when missing.
func (s *Structure) Set(name string, v Value) {
	for i := range s.fields {
		if s.fields[i].Name == name {
			s.fields[i].Value = v
			return
		}
	}
	s.fields = append(s.fields, Field{Name: name, Value: v})
}

// Remove deletes the named field if present.
func (s *Structure) Remove(name string) {
	for i := range s.fields {
		if s.fields[i].Name == name {
			s.fields = append(s.fields[:i:i], s.fields[i+1:]...)
			return
		}
	}
}

// Merge sets every field of o on s, overriding values s already has.
func (s *Structure) Merge(o Structure) {
	for _, f := range o.fields {
		s.Set(f.Name, f.Value)
	}
}

// Copy returns a deep enough copy of s that setting fields on it doesn't
// affect s. Values are immutable and shared.
func (s Structure) Copy() Structure {
	return Structure{Name: s.Name, fields: s.Fields()}
}

// Str returns the named field when it is a fixed string.
func (s Structure) Str(name string) (string, bool) {
	v, ok := s.Get(name)
	if !ok {
		return "", false
	}
	switch v := v.(type) {
	case String:
		return string(v), true
	case StringList:
		if len(v) == 1 {
			return v[0], true
		}
	}
	return "", false
}

// Int returns the named field when it is a fixed integer.
func (s Structure) Int(name string) (int, bool) {
	v, ok := s.Get(name)
	if !ok {
		return 0, false
	}
	switch v := v.(type) {
	case Int:
		return int(v), true
	case IntList:
		if len(v) == 1 {
			return v[0], true
		}
	case IntRange:
		if v.Fixed() {
			return v.Min, true
		}
	}
	return 0, false
}

// Fraction returns the named field when it is a fixed fraction.
func (s Structure) Fraction(name string) (Fraction, bool) {
	v, ok := s.Get(name)
	if !ok {
		return Fraction{}, false
	}
	switch v := v.(type) {
	case Fraction:
		return v, true
	case FractionRange:
		if v.Fixed() {
			return v.Min, true
		}
	}
	return Fraction{}, false
}

// IsFixed reports whether every field of s has exactly one value.
func (s Structure) IsFixed() bool {
	for _, f := range s.fields {
		if !f.Value.Fixed() {
			return false
		}
	}
	return true
}

// Fixate returns a copy of s with every field reduced to a single value.
func (s Structure) Fixate() Structure {
	out := s.Copy()
	for i := range out.fields {
		out.fields[i].Value = fixate(out.fields[i].Value)
	}
	return out
}

// Intersect returns the structure accepted by both s and o. Fields present
// on one side only are carried over unchanged.
func (s Structure) Intersect(o Structure) (Structure, bool) {
	if s.Name != o.Name {
		return Structure{}, false
	}

	out := Structure{Name: s.Name}
	for _, f := range s.fields {
		ov, ok := o.Get(f.Name)
		if !ok {
			out.fields = append(out.fields, f)
			continue
		}
		v, ok := intersectValues(f.Value, ov)
		if !ok {
			return Structure{}, false
		}
		out.fields = append(out.fields, Field{Name: f.Name, Value: v})
	}
	for _, f := range o.fields {
		if _, ok := s.Get(f.Name); !ok {
			out.fields = append(out.fields, f)
		}
	}
	return out, true
}

// String formats s the way it would be written in a caps string, e.g.
// "video/x-raw, format=(string)BGRx, width=(int)640".
func (s Structure) String() string {
	var b strings.Builder
	b.WriteString(s.Name)
	for _, f := range s.fields {
		b.WriteString(", ")
		b.WriteString(f.Name)
		b.WriteString("=(")
		b.WriteString(f.Value.typeName())
		b.WriteString(")")
		b.WriteString(f.Value.String())
	}
	return b.String()
}
