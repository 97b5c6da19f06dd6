package text

const hexDigits = "0123456789abcdef"

// Escape appends src to dst with the escaping RFC 8259 requires inside a JSON string:
//
//   - a double quote, 0x22, as \"
//   - a backslash, 0x5C, as \\
//   - backspace, form feed, line feed, carriage return and tab as \b \f \n \r \t
//   - every other byte below 0x20 as \u00XX
//
// The solidus is never escaped and all other bytes, including the bytes of multi byte
// UTF-8 sequences, are copied verbatim.
func Escape(dst, src []byte) []byte {
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '"':
			dst = append(dst, '\\', '"')
		case c == '\\':
			dst = append(dst, '\\', '\\')
		case c == '\b':
			dst = append(dst, '\\', 'b')
		case c == '\f':
			dst = append(dst, '\\', 'f')
		case c == '\n':
			dst = append(dst, '\\', 'n')
		case c == '\r':
			dst = append(dst, '\\', 'r')
		case c == '\t':
			dst = append(dst, '\\', 't')
		case c < 0x20:
			dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
		default:
			dst = append(dst, c)
		}
	}
	return dst
}

// NeedsEscape reports whether Escape would change src.
func NeedsEscape(src []byte) bool {
	for _, c := range src {
		if c < 0x20 || c == '"' || c == '\\' {
			return true
		}
	}
	return false
}
