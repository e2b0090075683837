package hkid

// SpaceValue is the value of the padding space in a one-letter-prefix body.
const SpaceValue = 36

// ValueOf maps a character to its HKID value: A-Z (either case) to 10-35,
// 0-9 to 0-9 and space to 36. Any other character has no value.
func ValueOf(c rune) (uint, bool) {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	switch {
	case c >= 'A' && c <= 'Z':
		return uint(c-'A') + 10, true
	case c >= '0' && c <= '9':
		return uint(c - '0'), true
	case c == ' ':
		return SpaceValue, true
	}
	return 0, false
}
