// Package number converts float64 values to and from the decimal text used by both the
// textual and the JSON renderings.
//
// Output is always fixed notation, never an exponent, and is the shortest digit string that
// parses back to the same float64. Integral values below 2^53 take a fast path through the
// ints lookup table encoder.
package number

import (
	"math"
	"strconv"

	"github.com/pkg/errors"

	"variant.mleku.dev/ints"
)

// ErrNonFinite is returned when a NaN or infinity is asked to take a JSON form.
var ErrNonFinite = errors.New("number is not finite")

// MaxExact is the magnitude below which every integer is exactly representable.
const MaxExact = 1 << 53

// Append writes the fixed notation form of f to dst. NaN and the infinities are written as
// NaN, +Inf and -Inf.
func Append(dst []byte, f float64) (b []byte) {
	switch {
	case math.IsNaN(f):
		return append(dst, "NaN"...)
	case math.IsInf(f, 1):
		return append(dst, "+Inf"...)
	case math.IsInf(f, -1):
		return append(dst, "-Inf"...)
	}
	return appendFinite(dst, f)
}

// AppendJSON writes f as a JSON number, or fails with ErrNonFinite.
func AppendJSON(dst []byte, f float64) (b []byte, err error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		err = errors.Wrapf(ErrNonFinite, "%v", f)
		return dst, err
	}
	return appendFinite(dst, f), nil
}

func appendFinite(dst []byte, f float64) (b []byte) {
	b = dst
	if f == math.Trunc(f) && math.Abs(f) < MaxExact {
		if math.Signbit(f) {
			b = append(b, '-')
			f = -f
		}
		return ints.Append(b, uint64(f))
	}
	return strconv.AppendFloat(b, f, 'f', -1, 64)
}

// String returns the fixed notation form of f.
func String(f float64) string { return string(Append(nil, f)) }
