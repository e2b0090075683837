package hkid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckDigit_KnownVectors(t *testing.T) {
	tests := []struct {
		body string
		want rune
	}{
		{"A123456", '3'},
		{"AB123456", '9'},
		{"B987654", '0'},
		{"Z123456", '1'},
		{"WX123456", '9'},
		{"C668668", '9'},
		{"P123456", '4'},
		{"EC000001", '7'},
		{"XA000000", '8'},
		{"G123456", 'A'},
		{"ZZ123456", 'A'},
		{"R123456", 'A'},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			got, ok := CheckDigit(tt.body)
			require.True(t, ok)
			assert.Equal(t, string(tt.want), string(got))
		})
	}
}

func TestCheckDigit_RejectsMalformedBodies(t *testing.T) {
	for _, body := range []string{
		"",
		"A12345",    // too short
		"ABC123456", // too long
		"a123456",   // lowercase
		" A123456",  // explicit padding is not accepted input
		"A12345-6",
		"A123456(3)",
		"Ａ123456", // full-width letter
	} {
		t.Run(body, func(t *testing.T) {
			_, ok := CheckDigit(body)
			assert.False(t, ok)
		})
	}
}

// The public format check admits bodies the structural pattern would not,
// such as all digits; the weighted sum still applies.
func TestCheckDigit_AcceptsAnyAlphanumericBody(t *testing.T) {
	got, ok := CheckDigit("1234567")
	require.True(t, ok)
	assert.Contains(t, "0123456789A", string(got))
}

// Padding invariant: a 7-character body weighs the same as that body with an
// explicit leading space.
func TestCheckDigit_PaddingInvariance(t *testing.T) {
	for _, body := range []string{"A123456", "P123456", "K000000", "Z999999"} {
		t.Run(body, func(t *testing.T) {
			viaPublic, ok := CheckDigit(body)
			require.True(t, ok)

			viaPadded, ok := checkCharacter(" " + body)
			require.True(t, ok)
			assert.Equal(t, viaPublic, viaPadded)
		})
	}
}

// Two-letter prefixes fill the pad position; a 1-letter body must not be
// treated as if its first digit were a second letter.
func TestCheckDigit_OneAndTwoLetterPrefixesDiffer(t *testing.T) {
	one, ok := CheckDigit("A123456")
	require.True(t, ok)
	two, ok := CheckDigit("AA123456")
	require.True(t, ok)
	assert.Equal(t, '3', one)
	assert.NotEqual(t, one, two)
}

func TestCheckCharacter_RejectsUnmappableCharacters(t *testing.T) {
	_, ok := checkCharacter(" A12345@")
	assert.False(t, ok)

	_, ok = checkCharacter(strings.Repeat("A", 9))
	assert.False(t, ok)
}

func TestPadBody(t *testing.T) {
	assert.Equal(t, " A123456", padBody("A123456"))
	assert.Equal(t, "AB123456", padBody("AB123456"))
}
