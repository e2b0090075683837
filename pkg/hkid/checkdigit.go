package hkid

import "strings"

// Weights are applied to the eight positions of a padded body, left to right.
var Weights = [8]uint{9, 8, 7, 6, 5, 4, 3, 2}

const (
	paddedBodyLen = len(Weights)
	modulus       = 11
)

// CheckDigit returns the check character ('0'-'9' or 'A') for a body of 7 or
// 8 uppercase letters and digits, e.g. "A123456" or "AB123456". It reports
// false when body does not have that shape.
func CheckDigit(body string) (rune, bool) {
	if !bodyPattern.MatchString(body) {
		return 0, false
	}
	return checkCharacter(padBody(body))
}

// padBody left-pads a body with spaces to the weighted width so one- and
// two-letter prefixes occupy the same positions.
func padBody(body string) string {
	if n := paddedBodyLen - len(body); n > 0 {
		return strings.Repeat(" ", n) + body
	}
	return body
}

// checkCharacter computes the check character of an already padded body.
func checkCharacter(padded string) (rune, bool) {
	if len(padded) != paddedBodyLen {
		return 0, false
	}
	var sum uint
	for i := 0; i < paddedBodyLen; i++ {
		v, ok := ValueOf(rune(padded[i]))
		if !ok {
			return 0, false
		}
		sum += v * Weights[i]
	}
	digit := (modulus - sum%modulus) % modulus
	if digit == 10 {
		return 'A', true
	}
	return rune('0' + digit), true
}
