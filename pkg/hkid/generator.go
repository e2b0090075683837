package hkid

import (
	"fmt"
	"strings"
)

const (
	digitCount = 6
	alphabet   = 26
)

// Generator produces synthetic HKIDs whose check digit is correct. They are
// for test data only and say nothing about whether a number was ever issued.
type Generator struct {
	rnd RandomSource
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithRandomSource replaces the default source. A nil source is ignored.
func WithRandomSource(src RandomSource) GeneratorOption {
	return func(g *Generator) {
		if src != nil {
			g.rnd = src
		}
	}
}

// NewGenerator builds a Generator. Without options it draws from a randomly
// seeded, concurrency-safe source.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{rnd: globalSource{}}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns an HKID such as "A123456(3)" using the given prefix.
// The prefix must be one or two uppercase letters; with mustBeKnown it must
// also be a documented code.
func (g *Generator) Generate(prefix string, mustBeKnown bool) (string, error) {
	if !prefixPattern.MatchString(prefix) {
		return "", formatRejected("prefix '%s' is not a valid HKID prefix format (must be 1 or 2 uppercase letters)", prefix)
	}
	if mustBeKnown && !ParsePrefix(prefix).IsKnown() {
		return "", unknownPrefix(prefix)
	}
	return g.withDigits(prefix)
}

// GenerateRandom returns an HKID with a random prefix. With mustBeKnown the
// prefix is picked uniformly from KnownPrefixes; otherwise it is one or two
// (even odds) uniformly drawn letters.
func (g *Generator) GenerateRandom(mustBeKnown bool) (string, error) {
	var prefix string
	if mustBeKnown {
		known := KnownPrefixes()
		if len(known) == 0 {
			return "", noKnownPrefixes()
		}
		prefix = known[g.rnd.IntN(len(known))].String()
	} else {
		prefix = g.randomLetters()
	}
	return g.withDigits(prefix)
}

func (g *Generator) randomLetters() string {
	n := 1
	if g.rnd.IntN(2) == 1 {
		n = 2
	}
	var b strings.Builder
	for range n {
		b.WriteByte(byte('A' + g.rnd.IntN(alphabet)))
	}
	return b.String()
}

func (g *Generator) withDigits(prefix string) (string, error) {
	var b strings.Builder
	b.Grow(len(prefix) + digitCount)
	b.WriteString(prefix)
	for range digitCount {
		b.WriteByte(byte('0' + g.rnd.IntN(10)))
	}
	body := b.String()

	check, ok := CheckDigit(body)
	if !ok {
		return "", checksumFailure(body)
	}
	return formatHKID(body, check), nil
}

func formatHKID(body string, check rune) string {
	return fmt.Sprintf("%s(%c)", body, check)
}
