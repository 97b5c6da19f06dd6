package json

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"

	"variant.mleku.dev/number"
	"variant.mleku.dev/text"
	"variant.mleku.dev/value"
)

// ErrMalformed is matched by every SyntaxError.
var ErrMalformed = errors.New("malformed JSON")

// DefaultMaxDepth bounds the nesting of arrays and objects the parser accepts.
const DefaultMaxDepth = 1000

// SyntaxError describes malformed JSON input. Offset is the zero based byte offset of the
// problem; Line and Column are one based and count bytes.
type SyntaxError struct {
	Offset int
	Line   int
	Column int
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("json: %s at offset %d (line %d, column %d)", e.Reason, e.Offset,
		e.Line, e.Column)
}

func (e *SyntaxError) Is(target error) bool { return target == ErrMalformed }

type options struct {
	maxDepth       int
	disallowDupKey bool
}

// Option changes how input is parsed.
type Option func(o *options)

// WithMaxDepth sets the deepest nesting of arrays and objects that is accepted. Values
// below 1 select DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = DefaultMaxDepth
		}
		o.maxDepth = n
	}
}

// DisallowDuplicateKeys makes an object that repeats a key a syntax error. Without it the
// last value wins and the entry keeps the position of the first occurrence.
func DisallowDuplicateKeys() Option {
	return func(o *options) { o.disallowDupKey = true }
}

type decoder struct {
	data  []byte
	pos   int
	depth int
	options
}

func newDecoder(b []byte, opts []Option) *decoder {
	d := &decoder{data: b, options: options{maxDepth: DefaultMaxDepth}}
	for _, opt := range opts {
		opt(&d.options)
	}
	return d
}

// Parse decodes b, which must hold exactly one JSON value with optional surrounding
// whitespace.
func Parse(b []byte, opts ...Option) (v value.T, err error) {
	d := newDecoder(b, opts)
	if v, err = d.value(); err != nil {
		return nil, err
	}
	d.skipSpace()
	if d.pos < len(d.data) {
		return nil, d.errorf(d.pos, "unexpected %s after top-level value",
			describe(d.data[d.pos]))
	}
	return
}

// ParseString is Parse for a string.
func ParseString(s string, opts ...Option) (v value.T, err error) {
	return Parse([]byte(s), opts...)
}

// Unmarshal decodes the first JSON value in b and returns whatever follows it, so that a
// sequence of values can be read one after another.
func Unmarshal(b []byte, opts ...Option) (v value.T, rem []byte, err error) {
	d := newDecoder(b, opts)
	if v, err = d.value(); err != nil {
		return nil, b, err
	}
	return v, d.data[d.pos:], nil
}

func (d *decoder) errorf(offset int, format string, a ...any) *SyntaxError {
	line := 1 + bytes.Count(d.data[:offset], []byte{'\n'})
	col := offset + 1
	if nl := bytes.LastIndexByte(d.data[:offset], '\n'); nl >= 0 {
		col = offset - nl
	}
	return &SyntaxError{
		Offset: offset,
		Line:   line,
		Column: col,
		Reason: fmt.Sprintf(format, a...),
	}
}

func (d *decoder) skipSpace() {
	for d.pos < len(d.data) {
		switch d.data[d.pos] {
		case ' ', '\t', '\n', '\r':
			d.pos++
		default:
			return
		}
	}
}

func (d *decoder) value() (v value.T, err error) {
	d.skipSpace()
	if d.pos >= len(d.data) {
		return nil, d.errorf(d.pos, "unexpected end of input, expected value")
	}
	switch c := d.data[d.pos]; {
	case c == '{':
		return d.object()
	case c == '[':
		return d.array()
	case c == '"':
		var s []byte
		if s, err = d.str(); err != nil {
			return
		}
		return value.String(s), nil
	case c == 't':
		return d.literal("true", value.Bool(true))
	case c == 'f':
		return d.literal("false", value.Bool(false))
	case c == 'n':
		return d.literal("null", value.Null{})
	case c == '-' || (c >= '0' && c <= '9'):
		return d.number()
	default:
		return nil, d.errorf(d.pos, "unexpected %s, expected value", describe(c))
	}
}

func (d *decoder) literal(word string, v value.T) (value.T, error) {
	rest := d.data[d.pos:]
	for i := 0; i < len(word); i++ {
		if i >= len(rest) {
			return nil, d.errorf(d.pos+i, "unexpected end of input in literal %s", word)
		}
		if rest[i] != word[i] {
			return nil, d.errorf(d.pos+i, "invalid literal, expected %s", word)
		}
	}
	d.pos += len(word)
	return v, nil
}

func (d *decoder) number() (v value.T, err error) {
	var f float64
	var rem []byte
	if f, rem, err = number.Parse(d.data[d.pos:]); err != nil {
		var ne *number.Error
		if errors.As(err, &ne) {
			return nil, d.errorf(d.pos+ne.Offset, "%s", ne.Reason)
		}
		return nil, d.errorf(d.pos, "%s", err.Error())
	}
	d.pos = len(d.data) - len(rem)
	return value.Number(f), nil
}

func (d *decoder) str() (s []byte, err error) {
	var rem []byte
	if s, rem, err = text.UnmarshalQuoted(d.data[d.pos:]); err != nil {
		var te *text.Error
		if errors.As(err, &te) {
			return nil, d.errorf(d.pos+te.Offset, "%s", te.Reason)
		}
		return nil, d.errorf(d.pos, "%s", err.Error())
	}
	d.pos = len(d.data) - len(rem)
	return
}

func (d *decoder) enter() error {
	d.depth++
	if d.depth > d.maxDepth {
		return d.errorf(d.pos, "exceeded maximum nesting depth of %d", d.maxDepth)
	}
	return nil
}

func (d *decoder) array() (v value.T, err error) {
	if err = d.enter(); err != nil {
		return
	}
	defer func() { d.depth-- }()
	d.pos++ // [
	var items []value.T
	d.skipSpace()
	if d.pos < len(d.data) && d.data[d.pos] == ']' {
		d.pos++
		return value.NewList(), nil
	}
	for {
		var item value.T
		if item, err = d.value(); err != nil {
			return nil, err
		}
		items = append(items, item)
		d.skipSpace()
		if d.pos >= len(d.data) {
			return nil, d.errorf(d.pos, "unexpected end of input, expected ',' or ']'")
		}
		switch d.data[d.pos] {
		case ',':
			d.pos++
			d.skipSpace()
			if d.pos < len(d.data) && d.data[d.pos] == ']' {
				return nil, d.errorf(d.pos, "trailing comma in array")
			}
		case ']':
			d.pos++
			return value.NewList(items...), nil
		default:
			return nil, d.errorf(d.pos, "unexpected %s in array, expected ',' or ']'",
				describe(d.data[d.pos]))
		}
	}
}

func (d *decoder) object() (v value.T, err error) {
	if err = d.enter(); err != nil {
		return
	}
	defer func() { d.depth-- }()
	d.pos++ // {
	var entries []value.KeyValue
	var seen map[string]struct{}
	if d.disallowDupKey {
		seen = make(map[string]struct{})
	}
	d.skipSpace()
	if d.pos < len(d.data) && d.data[d.pos] == '}' {
		d.pos++
		return value.NewMapping(), nil
	}
	for {
		d.skipSpace()
		if d.pos >= len(d.data) {
			return nil, d.errorf(d.pos, "unexpected end of input, expected object key")
		}
		if d.data[d.pos] != '"' {
			return nil, d.errorf(d.pos, "unexpected %s, expected object key",
				describe(d.data[d.pos]))
		}
		keyAt := d.pos
		var key []byte
		if key, err = d.str(); err != nil {
			return nil, err
		}
		if seen != nil {
			if _, dup := seen[string(key)]; dup {
				return nil, d.errorf(keyAt, "duplicate object key %q", key)
			}
			seen[string(key)] = struct{}{}
		}
		d.skipSpace()
		if d.pos >= len(d.data) {
			return nil, d.errorf(d.pos, "unexpected end of input, expected ':'")
		}
		if d.data[d.pos] != ':' {
			return nil, d.errorf(d.pos, "unexpected %s after object key, expected ':'",
				describe(d.data[d.pos]))
		}
		d.pos++
		var item value.T
		if item, err = d.value(); err != nil {
			return nil, err
		}
		entries = append(entries, value.KV(string(key), item))
		d.skipSpace()
		if d.pos >= len(d.data) {
			return nil, d.errorf(d.pos, "unexpected end of input, expected ',' or '}'")
		}
		switch d.data[d.pos] {
		case ',':
			d.pos++
			d.skipSpace()
			if d.pos < len(d.data) && d.data[d.pos] == '}' {
				return nil, d.errorf(d.pos, "trailing comma in object")
			}
		case '}':
			d.pos++
			return value.NewMapping(entries...), nil
		default:
			return nil, d.errorf(d.pos, "unexpected %s in object, expected ',' or '}'",
				describe(d.data[d.pos]))
		}
	}
}

func describe(c byte) string {
	if c < 0x20 || c >= 0x7f {
		return fmt.Sprintf("byte 0x%02x", c)
	}
	return fmt.Sprintf("character '%c'", c)
}
