package hkid

import "regexp"

// Compiled once at package init; regexp.Regexp is safe for concurrent use.
var (
	// prefixPattern is the shape of a prefix supplied to the generator.
	prefixPattern = regexp.MustCompile(`^[A-Z]{1,2}$`)

	// bodyPattern is the precondition for the check digit calculation.
	bodyPattern = regexp.MustCompile(`^[A-Z0-9]{7,8}$`)

	// structuredBodyPattern is a body with its prefix and digits in place.
	structuredBodyPattern = regexp.MustCompile(`^[A-Z]{1,2}[0-9]{6}$`)

	// fullPattern captures prefix, digits and the provided check character
	// from a normalized HKID.
	fullPattern = regexp.MustCompile(`^([A-Z]{1,2})([0-9]{6})([A0-9])$`)
)
