package asm

import "strings"

const base4Alphabet = "abcd"

// ToBase4 formats n as a base-4 numeral, most significant digit first,
// zero-padded to width digits. n must fit within width digits.
func ToBase4(n, width int) string {
	digits := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		digits[i] = base4Alphabet[n&0x3]
		n >>= 2
	}
	return string(digits)
}

// FromBase4 parses a base-4 numeral using the a/b/c/d alphabet, most
// significant digit first.
func FromBase4(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		idx := strings.IndexByte(base4Alphabet, s[i])
		if idx < 0 {
			return 0, false
		}
		n = n<<2 | idx
	}
	return n, true
}
