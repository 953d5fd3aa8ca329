package util

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeNumber(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  float64
	}{
		{name: "integer", input: "16", want: 16},
		{name: "decimal comma", input: "290,25", want: 290.25},
		{name: "decimal dot", input: "290.25", want: 290.25},
		{name: "spaced thousands with comma", input: "1 250,50", want: 1250.5},
		{name: "spaced thousands with dot", input: "1 250.50", want: 1250.5},
		{name: "nbsp thousands", input: "1\u00a0250", want: 1250},
		{name: "dot thousands", input: "1.000.000", want: 1000000},
		{name: "comma thousands", input: "1,000,000", want: 1000000},
		{name: "european mixed", input: "1.250,5", want: 1250.5},
		{name: "english mixed", input: "1,250.5", want: 1250.5},
		{name: "surrounding spaces", input: "  3,5 ", want: 3.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeNumber(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeNumberSeparatorsAgree(t *testing.T) {
	for _, pair := range [][2]string{{"3,5", "3.5"}, {"12,5", "12.5"}, {"0,75", "0.75"}, {"1 250,50", "1 250.50"}} {
		a, err := NormalizeNumber(pair[0])
		require.NoError(t, err)
		b, err := NormalizeNumber(pair[1])
		require.NoError(t, err)
		assert.Equal(t, a, b, "%s vs %s", pair[0], pair[1])
	}
}

func TestNormalizeNumberRejects(t *testing.T) {
	for _, input := range []string{"", "  ", "abc", "-5", "12 5", "1,2,3", "1.2.3", "1,2.3,4", "3,", ",5", "1e5"} {
		t.Run(input, func(t *testing.T) {
			_, err := NormalizeNumber(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrFormat))
			var fe *FormatError
			assert.True(t, errors.As(err, &fe))
		})
	}
}

func TestNormalizeCount(t *testing.T) {
	n, err := NormalizeCount("24")
	require.NoError(t, err)
	assert.Equal(t, 24, n)

	_, err = NormalizeCount("2,5")
	assert.ErrorIs(t, err, ErrFormat)

	_, err = NormalizeCount("0")
	assert.ErrorIs(t, err, ErrFormat)
}

func TestNormalizeText(t *testing.T) {
	decomposed := "\u0438\u0306"
	assert.Equal(t, "й 20 г", NormalizeText(decomposed+"  20  г "))
	assert.True(t, LooksLikeDescription("16g*24pcs"))
	assert.False(t, LooksLikeDescription("random text"))
	assert.False(t, HasDigit("no digits"))
}
