package number

import (
	"math"
	"strconv"

	"github.com/pkg/errors"

	"variant.mleku.dev/ints"
)

// Error is a malformed number, Offset counts bytes from the start of the scanned slice.
type Error struct {
	Offset int
	Reason string
}

func (e *Error) Error() string { return e.Reason }

// maxFastDigits is the longest integer literal that is always exact in a float64.
const maxFastDigits = 15

// Scan finds the JSON number at the start of b:
//
//	-? ( 0 | [1-9][0-9]* ) ( . [0-9]+ )? ( [eE] [+-]? [0-9]+ )?
//
// and returns the literal and the bytes following it. It does not look at what follows, the
// caller decides whether that is a valid delimiter.
func Scan(b []byte) (lit, rem []byte, err error) {
	i := 0
	if i < len(b) && b[i] == '-' {
		i++
	}
	switch {
	case i >= len(b):
		return nil, b, &Error{i, "unexpected end of input in number"}
	case b[i] == '0':
		i++
	case isDigit(b[i]):
		for i < len(b) && isDigit(b[i]) {
			i++
		}
	default:
		return nil, b, &Error{i, "expected digit in number, found " + quoteByte(b[i])}
	}
	if i < len(b) && b[i] == '.' {
		i++
		start := i
		for i < len(b) && isDigit(b[i]) {
			i++
		}
		if i == start {
			return nil, b, &Error{i, "expected digit after decimal point"}
		}
	}
	if i < len(b) && (b[i] == 'e' || b[i] == 'E') {
		i++
		if i < len(b) && (b[i] == '+' || b[i] == '-') {
			i++
		}
		start := i
		for i < len(b) && isDigit(b[i]) {
			i++
		}
		if i == start {
			return nil, b, &Error{i, "expected digit in exponent"}
		}
	}
	return b[:i], b[i:], nil
}

// Parse scans a JSON number at the start of b and converts it. Numbers whose magnitude
// exceeds the float64 range are rejected rather than becoming infinities.
func Parse(b []byte) (f float64, rem []byte, err error) {
	var lit []byte
	if lit, rem, err = Scan(b); err != nil {
		return
	}
	digits := lit
	neg := len(digits) > 0 && digits[0] == '-'
	if neg {
		digits = digits[1:]
	}
	if len(digits) <= maxFastDigits && allDigits(digits) {
		n := ints.New(0)
		if _, err = n.Unmarshal(digits); chk.T(err) {
			return 0, b, &Error{0, err.Error()}
		}
		f = float64(n.N)
		if neg {
			f = -f
		}
		return
	}
	if f, err = strconv.ParseFloat(string(lit), 64); err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange) {
			return 0, b, &Error{0, "number out of range: " + string(lit)}
		}
		return 0, b, &Error{0, err.Error()}
	}
	if math.IsInf(f, 0) {
		return 0, b, &Error{0, "number out of range: " + string(lit)}
	}
	return
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func allDigits(b []byte) bool {
	for _, c := range b {
		if !isDigit(c) {
			return false
		}
	}
	return len(b) > 0
}

func quoteByte(c byte) string { return strconv.QuoteRune(rune(c)) }
