// Package hscode canonicalizes Harmonized System product codes.
package hscode

import "strings"

// CanonicalLength is the number of digits in a canonical HS code.
const CanonicalLength = 8

// fallbackLengths is the prefix chain used when an exact 8-digit match is absent.
var fallbackLengths = []int{8, 6, 4}

// Normalize strips every non-digit character and pads or truncates the result to
// 8 digits. Zero padding is a best-effort canonicalization; it does not produce an
// official subheading, so padded codes should be flagged for review (see WasPadded).
// Input without any digit yields "".
func Normalize(code string) string {
	digits := Significant(code)
	if digits == "" {
		return ""
	}
	if len(digits) >= CanonicalLength {
		return digits[:CanonicalLength]
	}
	return digits + strings.Repeat("0", CanonicalLength-len(digits))
}

// Significant returns the digits of code in order, without padding or truncation.
func Significant(code string) string {
	var b strings.Builder
	b.Grow(len(code))
	for i := 0; i < len(code); i++ {
		if c := code[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// WasPadded reports whether Normalize had to append zeros to reach 8 digits.
func WasPadded(code string) bool {
	n := len(Significant(code))
	return n > 0 && n < CanonicalLength
}

// Valid reports whether code is already in canonical 8-digit form.
func Valid(code string) bool {
	return len(code) == CanonicalLength && Significant(code) == code
}

// Prefixes returns the lookup chain for a canonical code: 8, 6 and 4 digit prefixes.
func Prefixes(code8 string) []string {
	out := make([]string, 0, len(fallbackLengths))
	for _, n := range fallbackLengths {
		if len(code8) >= n {
			out = append(out, code8[:n])
		}
	}
	return out
}

// Chapter returns the 2-digit chapter of a code, or "" if the code is too short.
func Chapter(code8 string) string {
	if len(code8) < 2 {
		return ""
	}
	return code8[:2]
}
