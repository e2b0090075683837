package hkid

import "strings"

// HKID is a structurally valid number split into its parts. The provided
// check character is kept as written; it may or may not be correct.
type HKID struct {
	prefix Prefix
	digits string
	check  rune
}

// Normalize removes the cosmetic parentheses around the check character:
// "A123456(3)" becomes "A1234563". Input without parentheses is returned
// unchanged. Parentheses anywhere else, or more than one pair, are rejected.
func Normalize(full string) (string, error) {
	opens := strings.Count(full, "(")
	closes := strings.Count(full, ")")
	if opens == 0 && closes == 0 {
		return full, nil
	}
	n := len(full)
	if opens != 1 || closes != 1 || n < 3 || full[n-3] != '(' || full[n-1] != ')' {
		return "", formatRejected("invalid HKID format: parentheses must enclose only the check digit")
	}
	return strings.Map(func(r rune) rune {
		if r == '(' || r == ')' {
			return -1
		}
		return r
	}, full), nil
}

// Parse normalizes full and splits it into prefix, six digits and check
// character. It does not verify the check character.
func Parse(full string) (HKID, error) {
	cleaned, err := Normalize(full)
	if err != nil {
		return HKID{}, err
	}
	m := fullPattern.FindStringSubmatch(cleaned)
	if m == nil {
		return HKID{}, formatRejected("invalid HKID format: incorrect structure")
	}
	return HKID{
		prefix: ParsePrefix(m[1]),
		digits: m[2],
		check:  rune(m[3][0]),
	}, nil
}

// Validate reports whether full carries the correct check character.
// A wrong check character is (false, nil). Errors are reserved for input
// that is malformed, or whose prefix is not documented when mustBeKnown is
// set.
func Validate(full string, mustBeKnown bool) (bool, error) {
	id, err := Parse(full)
	if err != nil {
		return false, err
	}
	if mustBeKnown && !id.prefix.IsKnown() {
		return false, unknownPrefix(id.prefix.String())
	}
	expected, err := id.ExpectedCheckDigit()
	if err != nil {
		return false, err
	}
	return expected == id.check, nil
}

// Format renders a body of one or two letters and six digits with its
// computed check character, e.g. "A123456" -> "A123456(3)".
func Format(body string) (string, error) {
	if !structuredBodyPattern.MatchString(body) {
		return "", formatRejected("invalid HKID body '%s': expected 1-2 uppercase letters followed by 6 digits", body)
	}
	check, ok := CheckDigit(body)
	if !ok {
		return "", checksumFailure(body)
	}
	return formatHKID(body, check), nil
}

// Prefix returns the classified prefix.
func (h HKID) Prefix() Prefix {
	return h.prefix
}

// Digits returns the six serial digits.
func (h HKID) Digits() string {
	return h.digits
}

// CheckDigit returns the check character as provided in the input.
func (h HKID) CheckDigit() rune {
	return h.check
}

// Body returns prefix and digits without the check character.
func (h HKID) Body() string {
	return h.prefix.String() + h.digits
}

// ExpectedCheckDigit recomputes the check character from the body.
func (h HKID) ExpectedCheckDigit() (rune, error) {
	expected, ok := CheckDigit(h.Body())
	if !ok {
		return 0, checksumFailure(h.Body())
	}
	return expected, nil
}

// Valid reports whether the provided check character is the expected one.
func (h HKID) Valid() bool {
	expected, err := h.ExpectedCheckDigit()
	return err == nil && expected == h.check
}

// IsZero reports whether h is the zero value.
func (h HKID) IsZero() bool {
	return h.digits == ""
}

// String renders the number in canonical form with the provided check
// character in parentheses.
func (h HKID) String() string {
	if h.IsZero() {
		return ""
	}
	return formatHKID(h.Body(), h.check)
}
