package caps

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var errSyntax = errors.New("caps: syntax error")

// Parse reads a caps string such as
//
//	video/x-raw, format=(string){ BGRx, GRAY8 }, width=(int)[ 1, 1920 ], framerate=30/1
//
// Type annotations are optional. Without one, a value is read as an integer
// when it parses as one, as a fraction when it has the form n/d and as a
// string otherwise. Structures are separated by ';'. "EMPTY" parses to
// empty caps.
func Parse(s string) (Caps, error) {
	if strings.TrimSpace(s) == "EMPTY" {
		return Caps{}, nil
	}

	p := &parser{in: s}
	var c Caps
	for {
		p.skipSpace()
		if p.eof() {
			break
		}
		st, err := p.structure()
		if err != nil {
			return nil, err
		}
		c = append(c, st)

		p.skipSpace()
		if p.eof() {
			break
		}
		if err := p.expect(';'); err != nil {
			return nil, err
		}
	}
	if c.IsEmpty() {
		return nil, fmt.Errorf("%w: no structure in %q", errSyntax, s)
	}
	return c, nil
}

// MustParse is like Parse but panics on malformed input. It is meant for
// caps literals known at compile time.
func MustParse(s string) Caps {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

type parser struct {
	in  string
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.in) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.in[p.pos]
}

func (p *parser) skipSpace() {
	for !p.eof() && (p.in[p.pos] == ' ' || p.in[p.pos] == '\t' || p.in[p.pos] == '\n') {
		p.pos++
	}
}

func (p *parser) expect(c byte) error {
	p.skipSpace()
	if p.peek() != c {
		return p.errorf("expected %q", c)
	}
	p.pos++
	return nil
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w at offset %d: %s", errSyntax, p.pos, fmt.Sprintf(format, args...))
}

const delimiters = " \t\n,;={}[]()\""

func (p *parser) token() string {
	p.skipSpace()
	start := p.pos
	for !p.eof() && !strings.ContainsRune(delimiters, rune(p.in[p.pos])) {
		p.pos++
	}
	return p.in[start:p.pos]
}

func (p *parser) structure() (Structure, error) {
	name := p.token()
	if name == "" {
		return Structure{}, p.errorf("expected structure name")
	}
	st := Structure{Name: name}
	for {
		p.skipSpace()
		if p.peek() != ',' {
			return st, nil
		}
		p.pos++

		field := p.token()
		if field == "" {
			return Structure{}, p.errorf("expected field name")
		}
		if err := p.expect('='); err != nil {
			return Structure{}, err
		}
		v, err := p.value()
		if err != nil {
			return Structure{}, fmt.Errorf("field %s: %w", field, err)
		}
		st.Set(field, v)
	}
}

// scalar is a single unparsed value and whether it was quoted.
type scalar struct {
	text   string
	quoted bool
}

func (p *parser) scalar() (scalar, error) {
	p.skipSpace()
	if p.peek() != '"' {
		t := p.token()
		if t == "" {
			return scalar{}, p.errorf("expected value")
		}
		return scalar{text: t}, nil
	}

	start := p.pos
	p.pos++
	for !p.eof() && p.in[p.pos] != '"' {
		if p.in[p.pos] == '\\' {
			p.pos++
		}
		p.pos++
	}
	if p.eof() {
		return scalar{}, p.errorf("unterminated string")
	}
	p.pos++
	text, err := strconv.Unquote(p.in[start:p.pos])
	if err != nil {
		return scalar{}, p.errorf("bad string: %v", err)
	}
	return scalar{text: text, quoted: true}, nil
}

func (p *parser) value() (Value, error) {
	var typ string
	p.skipSpace()
	if p.peek() == '(' {
		p.pos++
		typ = p.token()
		if err := p.expect(')'); err != nil {
			return nil, err
		}
	}

	p.skipSpace()
	switch p.peek() {
	case '{':
		p.pos++
		var items []scalar
		for {
			sc, err := p.scalar()
			if err != nil {
				return nil, err
			}
			items = append(items, sc)
			p.skipSpace()
			if p.peek() == '}' {
				p.pos++
				return listValue(typ, items)
			}
			if err := p.expect(','); err != nil {
				return nil, err
			}
		}
	case '[':
		p.pos++
		lo, err := p.scalar()
		if err != nil {
			return nil, err
		}
		if err := p.expect(','); err != nil {
			return nil, err
		}
		hi, err := p.scalar()
		if err != nil {
			return nil, err
		}
		if err := p.expect(']'); err != nil {
			return nil, err
		}
		return rangeValue(typ, lo, hi)
	}

	sc, err := p.scalar()
	if err != nil {
		return nil, err
	}
	return scalarValue(typ, sc)
}

func scalarValue(typ string, sc scalar) (Value, error) {
	if typ == "" {
		typ = inferType(sc)
	}
	switch typ {
	case "string", "s":
		return String(sc.text), nil
	case "int", "i":
		i, err := strconv.Atoi(sc.text)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an int", errSyntax, sc.text)
		}
		return Int(i), nil
	case "fraction":
		return parseFraction(sc.text)
	}
	return nil, fmt.Errorf("%w: unknown type %q", errSyntax, typ)
}

func inferType(sc scalar) string {
	if sc.quoted {
		return "string"
	}
	if _, err := strconv.Atoi(sc.text); err == nil {
		return "int"
	}
	if _, err := parseFraction(sc.text); err == nil {
		return "fraction"
	}
	return "string"
}

func parseFraction(s string) (Fraction, error) {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Fraction{}, fmt.Errorf("%w: %q is not a fraction", errSyntax, s)
		}
		return Fraction{Num: n, Den: 1}, nil
	}
	n, err1 := strconv.Atoi(num)
	d, err2 := strconv.Atoi(den)
	if err1 != nil || err2 != nil || d <= 0 {
		return Fraction{}, fmt.Errorf("%w: %q is not a fraction", errSyntax, s)
	}
	return Fraction{Num: n, Den: d}, nil
}

func listValue(typ string, items []scalar) (Value, error) {
	values := make([]Value, len(items))
	for i, sc := range items {
		v, err := scalarValue(typ, sc)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}

	switch values[0].(type) {
	case String:
		out := make(StringList, len(values))
		for i, v := range values {
			s, ok := v.(String)
			if !ok {
				return nil, fmt.Errorf("%w: mixed types in list", errSyntax)
			}
			out[i] = string(s)
		}
		return out, nil
	case Int:
		out := make(IntList, len(values))
		for i, v := range values {
			n, ok := v.(Int)
			if !ok {
				return nil, fmt.Errorf("%w: mixed types in list", errSyntax)
			}
			out[i] = int(n)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: lists of %s are not supported", errSyntax, values[0].typeName())
}

func rangeValue(typ string, lo, hi scalar) (Value, error) {
	if typ == "" && (inferType(lo) == "fraction" || inferType(hi) == "fraction") {
		typ = "fraction"
	}
	if typ == "" {
		typ = inferType(lo)
	}

	switch typ {
	case "int", "i":
		l, err1 := strconv.Atoi(lo.text)
		h, err2 := strconv.Atoi(hi.text)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("%w: bad int range [%s, %s]", errSyntax, lo.text, hi.text)
		}
		if l > h {
			return nil, fmt.Errorf("%w: empty int range [%d, %d]", errSyntax, l, h)
		}
		return IntRange{Min: l, Max: h}, nil
	case "fraction":
		l, err := parseFraction(lo.text)
		if err != nil {
			return nil, err
		}
		h, err := parseFraction(hi.text)
		if err != nil {
			return nil, err
		}
		if l.Compare(h) > 0 {
			return nil, fmt.Errorf("%w: empty fraction range [%s, %s]", errSyntax, l, h)
		}
		return FractionRange{Min: l, Max: h}, nil
	}
	return nil, fmt.Errorf("%w: ranges of %s are not supported", errSyntax, typ)
}
