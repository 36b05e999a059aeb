package bits

// FromHex converts a line of hex digits into a sequence of 4*len(s) bits,
// most significant bit of each digit first. Digits are case-insensitive and
// no separators are allowed.
func FromHex(s string) (Sequence, error) {
	buf := make([]byte, (len(s)+1)/2)
	for i := 0; i < len(s); i++ {
		v, ok := nibble(s[i])
		if !ok {
			return Sequence{}, &InvalidDigitError{Index: i, Char: s[i]}
		}
		if i%2 == 0 {
			buf[i/2] = v << 4
		} else {
			buf[i/2] |= v
		}
	}
	return Sequence{buf: buf, n: 4 * len(s)}, nil
}

func nibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
