package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func separableData() ([]SparseVector, []string) {
	var xs []SparseVector
	var labels []string
	for i := 0; i < 12; i++ {
		xs = append(xs, SparseVector{Index: []int{0, 2}, Value: []float64{0.7, 0.7}})
		labels = append(labels, "jar")
		xs = append(xs, SparseVector{Index: []int{1, 2}, Value: []float64{0.7, 0.7}})
		labels = append(labels, "box")
	}
	return xs, labels
}

func TestForestSeparable(t *testing.T) {
	xs, labels := separableData()
	f := FitForest(xs, labels, ForestOptions{Trees: 15, MaxDepth: 4, Seed: 7})
	require.Len(t, f.Trees, 15)

	jar := f.Predict(SparseVector{Index: []int{0, 2}, Value: []float64{0.7, 0.7}})
	assert.Equal(t, "jar", jar.Label)
	assert.Greater(t, jar.Share, 0.5)

	box := f.Predict(SparseVector{Index: []int{1, 2}, Value: []float64{0.7, 0.7}})
	assert.Equal(t, "box", box.Label)
	assert.Greater(t, box.Share, 0.5)
}

func TestForestDeterministic(t *testing.T) {
	xs, labels := separableData()
	a := FitForest(xs, labels, ForestOptions{Trees: 10, MaxDepth: 6, Seed: 3})
	b := FitForest(xs, labels, ForestOptions{Trees: 10, MaxDepth: 6, Seed: 3})
	assert.Equal(t, a, b)
	require.NoError(t, validateForest(a, 3))
}

func TestForestEmpty(t *testing.T) {
	f := FitForest(nil, nil, ForestOptions{Trees: 3})
	assert.Equal(t, Vote{}, f.Predict(SparseVector{}))

	var nilForest *Forest
	assert.Equal(t, Vote{}, nilForest.Predict(SparseVector{}))
}

func TestMajorityTieBreak(t *testing.T) {
	label, n := majority(map[string]int{"b": 2, "a": 2, "c": 1})
	assert.Equal(t, "a", label)
	assert.Equal(t, 2, n)
}
