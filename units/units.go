// Package units names data sizes in bytes, base 10 as used for input limits and base 2 as
// used for cache sizes.
package units

import "strconv"

const (
	Kilobyte = 1000
	Kb       = Kilobyte
	Megabyte = Kilobyte * Kilobyte
	Mb       = Megabyte
	Gigabyte = Megabyte * Kilobyte
	Gb       = Gigabyte

	Kibibyte = 1 << 10
	KiB      = Kibibyte
	Mebibyte = KiB << 10
	MiB      = Mebibyte
)

// Format renders n bytes with the largest base 10 unit that keeps the number at least 1,
// with one decimal place.
func Format(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	var s string
	switch {
	case n >= Gb:
		s = strconv.FormatFloat(float64(n)/Gb, 'f', 1, 64) + " Gb"
	case n >= Mb:
		s = strconv.FormatFloat(float64(n)/Mb, 'f', 1, 64) + " Mb"
	case n >= Kb:
		s = strconv.FormatFloat(float64(n)/Kb, 'f', 1, 64) + " Kb"
	default:
		s = strconv.FormatInt(n, 10) + " b"
	}
	if neg {
		s = "-" + s
	}
	return s
}
