// Package printer renders values as human readable text.
//
// Nothing is escaped: symbols and strings print their raw text, lists print in
// parentheses separated by spaces and mappings print as { "key": value, ... }. The output
// is for people, use package json when it has to be read back.
package printer

import (
	"variant.mleku.dev/number"
	"variant.mleku.dev/text"
	"variant.mleku.dev/value"
)

// Procedure is the placeholder printed for a procedure.
const Procedure = "<procedure>"

// Append writes the textual form of v to dst.
func Append(dst []byte, v value.T) (b []byte) {
	b = dst
	if value.IsNull(v) {
		return append(b, "null"...)
	}
	switch x := v.(type) {
	case value.Symbol:
		b = append(b, string(x)...)
	case value.String:
		b = append(b, string(x)...)
	case value.Number:
		b = number.Append(b, float64(x))
	case value.Bool:
		if x {
			b = append(b, "true"...)
		} else {
			b = append(b, "false"...)
		}
	case *value.List:
		b = append(b, '(')
		x.Each(func(i int, e value.T) bool {
			if i > 0 {
				b = append(b, ' ')
			}
			b = Append(b, e)
			return true
		})
		b = append(b, ')')
	case *value.Mapping:
		if x.Len() == 0 {
			return append(b, "{ }"...)
		}
		b = append(b, '{', ' ')
		first := true
		x.Each(func(k string, e value.T) bool {
			if !first {
				b = append(b, ',', ' ')
			}
			first = false
			b = text.Quote(b, []byte(k))
			b = append(b, ':', ' ')
			b = Append(b, e)
			return true
		})
		b = append(b, ' ', '}')
	case *value.Procedure:
		b = append(b, Procedure...)
	}
	return
}

// String returns the textual form of v.
func String(v value.T) string { return string(Append(nil, v)) }
