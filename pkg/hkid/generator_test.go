package hkid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "hkid-gateway/pkg/domain-errors"
)

// scriptedSource replays fixed draws and records the bounds it was asked for.
type scriptedSource struct {
	draws  []int
	bounds []int
}

func (s *scriptedSource) IntN(n int) int {
	s.bounds = append(s.bounds, n)
	if len(s.draws) == 0 {
		return 0
	}
	v := s.draws[0]
	s.draws = s.draws[1:]
	return v % n
}

func TestGenerator_GivenPrefix(t *testing.T) {
	src := &scriptedSource{draws: []int{1, 2, 3, 4, 5, 6}}
	g := NewGenerator(WithRandomSource(src))

	got, err := g.Generate("A", true)
	require.NoError(t, err)
	assert.Equal(t, "A123456(3)", got)
	assert.Equal(t, []int{10, 10, 10, 10, 10, 10}, src.bounds)
}

func TestGenerator_GivenTwoLetterPrefix(t *testing.T) {
	g := NewGenerator(WithRandomSource(&scriptedSource{draws: []int{1, 2, 3, 4, 5, 6}}))

	got, err := g.Generate("WX", true)
	require.NoError(t, err)
	assert.Equal(t, "WX123456(9)", got)
}

func TestGenerator_UnknownPrefixAllowedWhenNotRequired(t *testing.T) {
	g := NewGenerator(WithRandomSource(&scriptedSource{draws: []int{1, 2, 3, 4, 5, 6}}))

	got, err := g.Generate("ZZ", false)
	require.NoError(t, err)
	assert.Equal(t, "ZZ123456(A)", got)
}

func TestGenerator_RejectsPrefix(t *testing.T) {
	tests := []struct {
		name        string
		prefix      string
		mustBeKnown bool
		sentinel    error
		code        dErrors.Code
	}{
		{"empty known", "", true, ErrFormatRejected, dErrors.CodeInvalidInput},
		{"empty any", "", false, ErrFormatRejected, dErrors.CodeInvalidInput},
		{"lowercase known", "a", true, ErrFormatRejected, dErrors.CodeInvalidInput},
		{"lowercase any", "a", false, ErrFormatRejected, dErrors.CodeInvalidInput},
		{"three letters", "ABC", false, ErrFormatRejected, dErrors.CodeInvalidInput},
		{"digit", "A1", false, ErrFormatRejected, dErrors.CodeInvalidInput},
		{"unknown required known", "ZZ", true, ErrUnknownPrefix, dErrors.CodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &scriptedSource{}
			g := NewGenerator(WithRandomSource(src))

			_, err := g.Generate(tt.prefix, tt.mustBeKnown)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.True(t, dErrors.HasCode(err, tt.code))
			assert.Empty(t, src.bounds, "rejection must not consume randomness")
		})
	}
}

func TestGenerator_UnknownPrefixErrorNamesPrefix(t *testing.T) {
	_, err := NewGenerator().Generate("ZZ", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prefix 'ZZ' is not recognized")
}

func TestGenerator_RandomKnownPrefix(t *testing.T) {
	// 21 selects EC, the first two-letter entry of the table.
	src := &scriptedSource{draws: []int{21, 0, 0, 0, 0, 0, 1}}
	g := NewGenerator(WithRandomSource(src))

	got, err := g.GenerateRandom(true)
	require.NoError(t, err)
	assert.Equal(t, "EC000001(7)", got)
	assert.Equal(t, len(KnownPrefixes()), src.bounds[0])
}

func TestGenerator_RandomAnyPrefix(t *testing.T) {
	t.Run("one letter", func(t *testing.T) {
		src := &scriptedSource{draws: []int{0, 6, 1, 2, 3, 4, 5, 6}}
		got, err := NewGenerator(WithRandomSource(src)).GenerateRandom(false)
		require.NoError(t, err)
		assert.Equal(t, "G123456(A)", got)
		assert.Equal(t, []int{2, 26, 10, 10, 10, 10, 10, 10}, src.bounds)
	})

	t.Run("two letters", func(t *testing.T) {
		src := &scriptedSource{draws: []int{1, 0, 1, 1, 2, 3, 4, 5, 6}}
		got, err := NewGenerator(WithRandomSource(src)).GenerateRandom(false)
		require.NoError(t, err)
		assert.Equal(t, "AB123456(9)", got)
		assert.Equal(t, []int{2, 26, 26, 10, 10, 10, 10, 10, 10}, src.bounds)
	})
}

// Round trip invariant: every generated number validates under the same
// known-prefix requirement it was generated with.
func TestGenerator_RoundTrip(t *testing.T) {
	g := NewGenerator(WithRandomSource(NewSeededSource(42)))
	for i := 0; i < 500; i++ {
		for _, mustBeKnown := range []bool{true, false} {
			id, err := g.GenerateRandom(mustBeKnown)
			require.NoError(t, err)

			ok, err := Validate(id, mustBeKnown)
			require.NoError(t, err, id)
			assert.True(t, ok, id)
		}
	}
}

func TestGenerator_SeededSourceIsDeterministic(t *testing.T) {
	a := NewGenerator(WithRandomSource(NewSeededSource(7)))
	b := NewGenerator(WithRandomSource(NewSeededSource(7)))
	for i := 0; i < 20; i++ {
		x, err := a.GenerateRandom(false)
		require.NoError(t, err)
		y, err := b.GenerateRandom(false)
		require.NoError(t, err)
		assert.Equal(t, x, y)
	}
}

func TestGenerator_DefaultSourceProducesWellFormedNumbers(t *testing.T) {
	g := NewGenerator(WithRandomSource(nil))
	for i := 0; i < 100; i++ {
		id, err := g.GenerateRandom(false)
		require.NoError(t, err)
		assert.Regexp(t, `^[A-Z]{1,2}[0-9]{6}\([0-9A]\)$`, id)
	}
}

func TestNoKnownPrefixesError(t *testing.T) {
	err := noKnownPrefixes()
	assert.True(t, errors.Is(err, ErrNoKnownPrefixes))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}
