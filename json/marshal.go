// Package json renders values as JSON and parses JSON text into values.
//
// Rendering escapes strings per RFC 8259 but never escapes the solidus, refuses NaN and the
// infinities, and keeps mapping entries in their stored order so the same value always
// renders to the same bytes. JSON has no procedure syntax, so a procedure renders as the
// string "<procedure>" and parses back as that string: the trip is lossy in that one
// direction.
//
// Parsing maps strings, numbers, arrays, objects, true, false and null onto String,
// Number, List, Mapping, Bool and Null. Malformed input fails with a *SyntaxError holding
// the byte offset of the problem and never yields a partial value.
package json

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"variant.mleku.dev/number"
	"variant.mleku.dev/text"
	"variant.mleku.dev/value"
)

// ErrNonFiniteNumber is matched by a NonFiniteError.
var ErrNonFiniteNumber = errors.New("non-finite number has no JSON form")

// ProcedureSentinel is the JSON string a procedure renders as.
const ProcedureSentinel = "<procedure>"

// NonFiniteError reports a NaN or infinite number met while rendering. Path locates it,
// for example $.key[2].
type NonFiniteError struct {
	Path  string
	Value float64
}

func (e *NonFiniteError) Error() string {
	return fmt.Sprintf("json: cannot render %v at %s: %s", e.Value, e.Path,
		ErrNonFiniteNumber)
}

func (e *NonFiniteError) Is(target error) bool { return target == ErrNonFiniteNumber }

// pathElem is a list index when key is empty and isKey is false, otherwise a mapping key.
type pathElem struct {
	key   string
	index int
	isKey bool
}

type encoder struct {
	prefix, indent string
	pretty         bool
	path           []pathElem
}

// Marshal appends the compact JSON form of v to dst. On error dst is returned as it was
// given.
func Marshal(dst []byte, v value.T) (b []byte, err error) {
	e := &encoder{}
	if b, err = e.append(dst, v, 0); err != nil {
		return dst, err
	}
	return
}

// MarshalIndent is like Marshal but starts every element on a new line beginning with
// prefix followed by one copy of indent per nesting level.
func MarshalIndent(dst []byte, v value.T, prefix, indent string) (b []byte, err error) {
	e := &encoder{prefix: prefix, indent: indent, pretty: true}
	if b, err = e.append(dst, v, 0); err != nil {
		return dst, err
	}
	return
}

// String returns the compact JSON form of v.
func String(v value.T) (s string, err error) {
	var b []byte
	if b, err = Marshal(nil, v); chk.T(err) {
		return
	}
	return string(b), nil
}

func (e *encoder) append(dst []byte, v value.T, depth int) (b []byte, err error) {
	b = dst
	if value.IsNull(v) {
		return append(b, "null"...), nil
	}
	switch x := v.(type) {
	case value.Symbol:
		b = text.QuoteEscaped(b, []byte(x))
	case value.String:
		b = text.QuoteEscaped(b, []byte(x))
	case value.Number:
		if b, err = number.AppendJSON(b, float64(x)); err != nil {
			err = &NonFiniteError{Path: e.pathString(), Value: float64(x)}
			return
		}
	case value.Bool:
		b = strconv.AppendBool(b, bool(x))
	case *value.List:
		b, err = e.appendList(b, x, depth)
	case *value.Mapping:
		b, err = e.appendMapping(b, x, depth)
	case *value.Procedure:
		b = text.Quote(b, []byte(ProcedureSentinel))
	default:
		err = errorf.E("json: unknown value kind %s", v.Kind())
	}
	return
}

func (e *encoder) appendList(dst []byte, l *value.List, depth int) (b []byte, err error) {
	b = append(dst, '[')
	if l.Len() == 0 {
		return append(b, ']'), nil
	}
	l.Each(func(i int, v value.T) bool {
		if i > 0 {
			b = append(b, ',')
		}
		if e.pretty {
			b = text.AppendIndent(b, e.prefix, e.indent, depth+1)
		}
		e.path = append(e.path, pathElem{index: i})
		b, err = e.append(b, v, depth+1)
		e.path = e.path[:len(e.path)-1]
		return err == nil
	})
	if err != nil {
		return
	}
	if e.pretty {
		b = text.AppendIndent(b, e.prefix, e.indent, depth)
	}
	b = append(b, ']')
	return
}

func (e *encoder) appendMapping(dst []byte, m *value.Mapping, depth int) (b []byte,
	err error) {

	b = append(dst, '{')
	if m.Len() == 0 {
		return append(b, '}'), nil
	}
	first := true
	m.Each(func(k string, v value.T) bool {
		if !first {
			b = append(b, ',')
		}
		first = false
		if e.pretty {
			b = text.AppendIndent(b, e.prefix, e.indent, depth+1)
		}
		b = text.QuoteEscaped(b, []byte(k))
		b = append(b, ':')
		if e.pretty {
			b = append(b, ' ')
		}
		e.path = append(e.path, pathElem{key: k, isKey: true})
		b, err = e.append(b, v, depth+1)
		e.path = e.path[:len(e.path)-1]
		return err == nil
	})
	if err != nil {
		return
	}
	if e.pretty {
		b = text.AppendIndent(b, e.prefix, e.indent, depth)
	}
	b = append(b, '}')
	return
}

func (e *encoder) pathString() string {
	var sb strings.Builder
	sb.WriteByte('$')
	for _, p := range e.path {
		switch {
		case !p.isKey:
			sb.WriteByte('[')
			sb.WriteString(strconv.Itoa(p.index))
			sb.WriteByte(']')
		case isIdent(p.key):
			sb.WriteByte('.')
			sb.WriteString(p.key)
		default:
			sb.WriteByte('[')
			sb.Write(text.QuoteEscaped(nil, []byte(p.key)))
			sb.WriteByte(']')
		}
	}
	return sb.String()
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}
