package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "separators", input: "16g*24pcs*12boxes", want: []string{"16g", "24pcs", "12boxes"}},
		{name: "x separators", input: "Mini Jelly 13gx100pcsx6jars", want: []string{"mini", "jelly", "13g", "100pcs", "6jars"}},
		{name: "decimal comma", input: "EYE CANDY 3,5 GX24X8", want: []string{"eye", "candy", "3.5g", "24", "8"}},
		{name: "cyrillic", input: "Цукерки 12,5 гр 20 Х 30 бл", want: []string{"цукерки", "12.5гр", "20", "30бл"}},
		{name: "brand", input: "LUPPO 6KT12AD50G", want: []string{"luppo", "6kt", "12ad", "50g"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tokenize(tc.input))
		})
	}
}

func TestVectorizer(t *testing.T) {
	v := NewVectorizer(1, 2, 0)
	v.Fit([]string{"candy 16g*24pcs*12boxes", "jelly 13gx100pcsx6jars", "candy jar"})
	require.NotZero(t, v.Len())
	assert.Len(t, v.IDF, v.Len())

	x := v.Transform("candy jar")
	require.NotEmpty(t, x.Index)
	norm := 0.0
	for _, val := range x.Value {
		norm += val * val
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9)
	for i := 1; i < len(x.Index); i++ {
		assert.Less(t, x.Index[i-1], x.Index[i])
	}

	assert.Empty(t, v.Transform("nothing known here").Index)
}

func TestVectorizerMaxFeatures(t *testing.T) {
	v := NewVectorizer(1, 3, 5)
	v.Fit([]string{"a1 bb cc dd ee ff gg", "bb cc hh ii"})
	assert.Equal(t, 5, v.Len())
	assert.Contains(t, v.Terms, "bb")
	assert.Contains(t, v.Terms, "cc")
}
