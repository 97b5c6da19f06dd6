// Package text holds the byte level helpers shared by the renderers: JSON string escaping
// and unescaping and appending delimited content.
package text

// AppendBytesClosure appends a transformed src to dst.
type AppendBytesClosure func(dst, src []byte) []byte

// Noop appends src unchanged.
func Noop(dst, src []byte) []byte { return append(dst, src...) }

// AppendQuote wraps the output of ac in double quotes.
func AppendQuote(dst, src []byte, ac AppendBytesClosure) []byte {
	dst = append(dst, '"')
	dst = ac(dst, src)
	dst = append(dst, '"')
	return dst
}

// Quote wraps src in double quotes without escaping.
func Quote(dst, src []byte) []byte { return AppendQuote(dst, src, Noop) }

// QuoteEscaped wraps src in double quotes with JSON escaping.
func QuoteEscaped(dst, src []byte) []byte { return AppendQuote(dst, src, Escape) }

// AppendIndent starts a new line holding prefix followed by depth copies of indent.
func AppendIndent(dst []byte, prefix, indent string, depth int) []byte {
	dst = append(dst, '\n')
	dst = append(dst, prefix...)
	for range depth {
		dst = append(dst, indent...)
	}
	return dst
}
