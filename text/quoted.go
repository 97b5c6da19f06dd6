package text

import (
	"unicode/utf16"
	"unicode/utf8"
)

// Error is a malformed quoted string. Offset counts bytes from the start of the slice given
// to UnmarshalQuoted and points at the offending byte.
type Error struct {
	Offset int
	Reason string
}

func (e *Error) Error() string { return e.Reason }

// UnmarshalQuoted decodes the JSON string literal that starts at b[0], which must be a
// double quote, and returns its unescaped content and the bytes after the closing quote.
//
// The content must be valid UTF-8 and may not hold raw bytes below 0x20. The escapes
// \" \\ \/ \b \f \n \r \t and \uXXXX are understood; a \u surrogate pair is combined into
// one code point and a lone surrogate becomes U+FFFD. The returned content never aliases b.
func UnmarshalQuoted(b []byte) (content, rem []byte, err error) {
	if len(b) == 0 || b[0] != '"' {
		err = &Error{0, "expected '\"' to open string"}
		return
	}
	// fast path, no escapes: find the closing quote and copy once.
	i := 1
	for ; i < len(b); i++ {
		c := b[i]
		if c == '"' {
			if !utf8.Valid(b[1:i]) {
				err = &Error{1 + invalidUTF8(b[1:i]), "invalid UTF-8 in string"}
				return
			}
			content = append(make([]byte, 0, i-1), b[1:i]...)
			rem = b[i+1:]
			return
		}
		if c == '\\' {
			break
		}
		if c < 0x20 {
			err = &Error{i, "invalid control character " + quoteControl(c) + " in string"}
			return
		}
	}
	if i >= len(b) {
		err = &Error{len(b), "unterminated string"}
		return
	}
	content = make([]byte, 0, len(b))
	content = append(content, b[1:i]...)
	start := 1
	for i < len(b) {
		c := b[i]
		switch {
		case c == '"':
			if !utf8.Valid(content) {
				err = &Error{start + invalidUTF8(b[start:i]), "invalid UTF-8 in string"}
				content = nil
				return
			}
			rem = b[i+1:]
			return
		case c < 0x20:
			err = &Error{i, "invalid control character " + quoteControl(c) + " in string"}
			content = nil
			return
		case c != '\\':
			content = append(content, c)
			i++
			continue
		}
		// escape sequence
		if i+1 >= len(b) {
			err = &Error{len(b), "unterminated string"}
			content = nil
			return
		}
		esc := b[i+1]
		switch esc {
		case '"', '\\', '/':
			content = append(content, esc)
		case 'b':
			content = append(content, '\b')
		case 'f':
			content = append(content, '\f')
		case 'n':
			content = append(content, '\n')
		case 'r':
			content = append(content, '\r')
		case 't':
			content = append(content, '\t')
		case 'u':
			var r rune
			var ok bool
			if r, ok = hex4(b[i+2:]); !ok {
				err = &Error{i, "invalid \\u escape in string"}
				content = nil
				return
			}
			i += 6
			if utf16.IsSurrogate(r) {
				if r2, ok2 := lowSurrogate(b[i:]); ok2 && r < 0xdc00 {
					if dec := utf16.DecodeRune(r, r2); dec != utf8.RuneError {
						content = utf8.AppendRune(content, dec)
						i += 6
						continue
					}
				}
				r = utf8.RuneError
			}
			content = utf8.AppendRune(content, r)
			continue
		default:
			err = &Error{i, "invalid escape '\\" + string(rune(esc)) + "' in string"}
			content = nil
			return
		}
		i += 2
	}
	err = &Error{len(b), "unterminated string"}
	content = nil
	return
}

// lowSurrogate reads a \uXXXX escape at the start of b holding a low surrogate.
func lowSurrogate(b []byte) (r rune, ok bool) {
	if len(b) < 6 || b[0] != '\\' || b[1] != 'u' {
		return
	}
	if r, ok = hex4(b[2:]); !ok || r < 0xdc00 || r > 0xdfff {
		return 0, false
	}
	return
}

func hex4(b []byte) (r rune, ok bool) {
	if len(b) < 4 {
		return
	}
	for _, c := range b[:4] {
		switch {
		case c >= '0' && c <= '9':
			r = r<<4 | rune(c-'0')
		case c >= 'a' && c <= 'f':
			r = r<<4 | rune(c-'a'+10)
		case c >= 'A' && c <= 'F':
			r = r<<4 | rune(c-'A'+10)
		default:
			return 0, false
		}
	}
	return r, true
}

func invalidUTF8(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return 0
}

func quoteControl(c byte) string {
	return string([]byte{'\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf]})
}
