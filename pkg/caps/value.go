package caps

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is the value of a single structure field. A value is either fixed
// (String, Int, Fraction) or describes a set of acceptable values
// (StringList, IntList, IntRange, FractionRange).
type Value interface {
	// Fixed reports whether the value names exactly one value.
	Fixed() bool
	String() string
	typeName() string
}

// String is a fixed string value.
type String string

func (s String) Fixed() bool { return true }
func (s String) String() string { return quoteIfNeeded(string(s)) }
func (String) typeName() string { return "string" }

// StringList is an ordered set of acceptable strings. Order expresses
// preference, first being the most preferred.
type StringList []string

func (l StringList) Fixed() bool { return len(l) == 1 }
func (StringList) typeName() string { return "string" }

func (l StringList) String() string {
	items := make([]string, len(l))
	for i, s := range l {
		items[i] = quoteIfNeeded(s)
	}
	return "{ " + strings.Join(items, ", ") + " }"
}

// Int is a fixed integer value.
type Int int

func (i Int) Fixed() bool { return true }
func (i Int) String() string { return strconv.Itoa(int(i)) }
func (Int) typeName() string { return "int" }

// IntList is an ordered set of acceptable integers.
type IntList []int

func (l IntList) Fixed() bool { return len(l) == 1 }
func (IntList) typeName() string { return "int" }

func (l IntList) String() string {
	items := make([]string, len(l))
	for i, v := range l {
		items[i] = strconv.Itoa(v)
	}
	return "{ " + strings.Join(items, ", ") + " }"
}

// IntRange is an inclusive integer range.
type IntRange struct {
	Min, Max int
}

func (r IntRange) Fixed() bool { return r.Min == r.Max }
func (IntRange) typeName() string { return "int" }

func (r IntRange) String() string {
	return fmt.Sprintf("[ %d, %d ]", r.Min, r.Max)
}

// Fraction is a fixed rational value, e.g. a frame rate of 30000/1001.
type Fraction struct {
	Num, Den int
}

func (f Fraction) Fixed() bool { return true }
func (Fraction) typeName() string { return "fraction" }

func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.Num, f.Den)
}

// Compare returns -1, 0 or 1 when f is less than, equal to or greater
// than o. Denominators are expected to be positive.
func (f Fraction) Compare(o Fraction) int {
	a := int64(f.Num) * int64(o.Den)
	b := int64(o.Num) * int64(f.Den)
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// FractionRange is an inclusive rational range.
type FractionRange struct {
	Min, Max Fraction
}

func (r FractionRange) Fixed() bool { return r.Min.Compare(r.Max) == 0 }
func (FractionRange) typeName() string { return "fraction" }

func (r FractionRange) String() string {
	return fmt.Sprintf("[ %s, %s ]", r.Min, r.Max)
}

func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " ,;={}[]()\"") {
		return strconv.Quote(s)
	}
	return s
}

// fixate reduces v to a single value. Lists fixate to their first entry and
// ranges to their lower bound.
func fixate(v Value) Value {
	switch v := v.(type) {
	case StringList:
		if len(v) > 0 {
			return String(v[0])
		}
	case IntList:
		if len(v) > 0 {
			return Int(v[0])
		}
	case IntRange:
		return Int(v.Min)
	case FractionRange:
		return v.Min
	}
	return v
}

// intersectValues returns the values accepted by both a and b. The order of
// a is kept when both sides are lists.
func intersectValues(a, b Value) (Value, bool) {
	if a.typeName() != b.typeName() {
		return nil, false
	}

	switch a := a.(type) {
	case String:
		switch b := b.(type) {
		case String:
			return a, a == b
		case StringList:
			return a, b.contains(string(a))
		}
	case StringList:
		switch b := b.(type) {
		case String:
			return b, a.contains(string(b))
		case StringList:
			var out StringList
			for _, s := range a {
				if b.contains(s) {
					out = append(out, s)
				}
			}
			return out.simplify()
		}
	case Int:
		return a, intAccepts(b, int(a))
	case IntList:
		var out IntList
		for _, v := range a {
			if intAccepts(b, v) {
				out = append(out, v)
			}
		}
		return out.simplify()
	case IntRange:
		switch b := b.(type) {
		case Int, IntList:
			return intersectValues(b, a)
		case IntRange:
			r := IntRange{Min: max(a.Min, b.Min), Max: min(a.Max, b.Max)}
			if r.Min > r.Max {
				return nil, false
			}
			if r.Fixed() {
				return Int(r.Min), true
			}
			return r, true
		}
	case Fraction:
		switch b := b.(type) {
		case Fraction:
			return a, a.Compare(b) == 0
		case FractionRange:
			return a, b.contains(a)
		}
	case FractionRange:
		switch b := b.(type) {
		case Fraction:
			return b, a.contains(b)
		case FractionRange:
			lo, hi := a.Min, a.Max
			if b.Min.Compare(lo) > 0 {
				lo = b.Min
			}
			if b.Max.Compare(hi) < 0 {
				hi = b.Max
			}
			switch lo.Compare(hi) {
			case 1:
				return nil, false
			case 0:
				return lo, true
			}
			return FractionRange{Min: lo, Max: hi}, true
		}
	}
	return nil, false
}

func (l StringList) contains(s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}

func (l StringList) simplify() (Value, bool) {
	switch len(l) {
	case 0:
		return nil, false
	case 1:
		return String(l[0]), true
	}
	return l, true
}

func (l IntList) simplify() (Value, bool) {
	switch len(l) {
	case 0:
		return nil, false
	case 1:
		return Int(l[0]), true
	}
	return l, true
}

func intAccepts(v Value, i int) bool {
	switch v := v.(type) {
	case Int:
		return int(v) == i
	case IntList:
		for _, ii := range v {
			if ii == i {
				return true
			}
		}
	case IntRange:
		return v.Min <= i && i <= v.Max
	}
	return false
}

func (r FractionRange) contains(f Fraction) bool {
	return r.Min.Compare(f) <= 0 && f.Compare(r.Max) <= 0
}
