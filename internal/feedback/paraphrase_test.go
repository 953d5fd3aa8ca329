package feedback

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skuqty/internal"
	"skuqty/internal/container"
)

func TestDescriptorStripsQuantities(t *testing.T) {
	cases := map[string]string{
		"Honey jar 250g x 6 jars":                "Honey jar",
		"Wafer rolls 24 box 12 pcs 400 g":        "Wafer rolls",
		"Печенье Сливочное 250гр.*12шт. №5":      "Печенье Сливочное",
		"290г*12шт":                              "",
		"Trolli gummi 100 G X 12 PCS X 12 BOXES": "Trolli gummi",
	}
	for in, want := range cases {
		assert.Equal(t, want, descriptor(in), in)
	}
}

func TestParaphraseLabelsAndContainer(t *testing.T) {
	for _, ct := range container.Types() {
		q := ruleResult()
		q.ContainerType = ct
		got := Paraphrase("Choco wafer 45g x 12pcs x 6", q, 6, 0)
		require.Len(t, got, 6, ct)

		seen := map[string]bool{}
		for _, ex := range got {
			assert.False(t, seen[ex.Text], "duplicate %q", ex.Text)
			seen[ex.Text] = true
			assert.Equal(t, internal.ExampleFromResult(ex.Text, q), ex)

			gotCT, conf := container.Classify(ex.Text)
			assert.Equal(t, ct, gotCT, ex.Text)
			assert.Equal(t, container.KeywordConfidence, conf)
			assert.Contains(t, ex.Text, "Choco wafer")
		}
	}
}

func TestParaphraseForms(t *testing.T) {
	q := ruleResult()
	q.Weight = 12.5
	got := Paraphrase("Gum 12.5g x 1 x 6", q, len(templates), 0)
	require.Len(t, got, len(templates))

	var comma, cyr, latin bool
	for _, ex := range got {
		if strings.Contains(ex.Text, "12,5") {
			comma = true
		}
		if strings.Contains(ex.Text, "шт") {
			cyr = true
		}
		if strings.Contains(ex.Text, "pcs") {
			latin = true
		}
	}
	assert.True(t, comma)
	assert.True(t, cyr)
	assert.True(t, latin)
}

func TestParaphraseRounds(t *testing.T) {
	q := ruleResult()
	a := Paraphrase(sampleText, q, 4, 0)
	b := Paraphrase(sampleText, q, 4, 1)
	require.Len(t, a, 4)
	require.Len(t, b, 4)
	for i := range a {
		assert.NotEqual(t, a[i].Text, b[i].Text)
	}
	assert.Equal(t, a, Paraphrase(sampleText, q, 4, 0))
}

func TestParaphraseEdges(t *testing.T) {
	q := ruleResult()
	assert.Empty(t, Paraphrase(sampleText, q, 0, 0))

	q.Parsed = false
	assert.Empty(t, Paraphrase(sampleText, q, 4, 0))
}
