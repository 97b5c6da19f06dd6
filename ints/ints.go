// Package ints is an encoder and decoder for unsigned decimal integers in ASCII. The
// encoder works in base 10000 with a lookup table of four digit groups, which beats
// strconv for the integral numbers that make up most JSON documents.
package ints

import (
	_ "embed"
	"io"
)

// run this to regenerate (pointlessly) the base 10 array of 4 places per entry
//go:generate go run ./gen/.

//go:embed base10k.txt
var base10k []byte

const base = 10000

// MaxDigits is the most decimal digits a uint64 can have.
const MaxDigits = 20

// T is an unsigned integer with decimal text codecs.
type T struct {
	N uint64
}

func New[V uint | int | uint64 | uint32 | uint16 | uint8 | int64 | int32 | int16 | int8](n V) *T {
	return &T{uint64(n)}
}

func (n *T) Uint64() uint64 { return n.N }
func (n *T) Int64() int64   { return int64(n.N) }

var powers = []uint64{
	1,
	1_0000,
	1_0000_0000,
	1_0000_0000_0000,
	1_0000_0000_0000_0000,
}

const zero = '0'
const nine = '9'

// Marshal appends the decimal digits of n to dst.
func (n *T) Marshal(dst []byte) (b []byte) { return Append(dst, n.N) }

// Append appends the decimal digits of u to dst.
func Append(dst []byte, u uint64) (b []byte) {
	b = dst
	if u == 0 {
		b = append(b, zero)
		return
	}
	var trimmed bool
	for k := len(powers) - 1; k >= 0; k-- {
		q := u / powers[k]
		if !trimmed && q == 0 {
			continue
		}
		offset := q * 4
		group := base10k[offset : offset+4]
		if !trimmed {
			for i := range group {
				if group[i] != zero {
					group = group[i:]
					break
				}
			}
			trimmed = true
		}
		b = append(b, group...)
		u -= q * powers[k]
	}
	return
}

// Unmarshal reads the run of decimal digits at the start of b and returns what follows.
// There must be at least one digit; a leading zero ends the number, so "012" decodes as 0
// with "12" remaining, which lets a JSON scanner reject it.
func (n *T) Unmarshal(b []byte) (r []byte, err error) {
	if len(b) < 1 {
		err = io.EOF
		return
	}
	if b[0] == zero {
		n.N = 0
		r = b[1:]
		return
	}
	var sLen int
	for ; sLen < len(b) && b[sLen] >= zero && b[sLen] <= nine; sLen++ {
	}
	if sLen == 0 {
		err = errorf.T("no digits at %q", truncate(b))
		return
	}
	if sLen > MaxDigits {
		err = errorf.T("too many digits for uint64: %d", sLen)
		return
	}
	var v uint64
	for _, ch := range b[:sLen] {
		d := uint64(ch - zero)
		if v > (1<<64-1-d)/10 {
			err = errorf.T("integer overflows uint64: %s", b[:sLen])
			return
		}
		v = v*10 + d
	}
	n.N = v
	r = b[sLen:]
	return
}

func truncate(b []byte) []byte {
	if len(b) > 16 {
		return b[:16]
	}
	return b
}
