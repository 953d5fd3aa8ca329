package feedback

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skuqty/internal"
	"skuqty/internal/model"
)

type fakeLearner struct {
	mu         sync.Mutex
	target     internal.ParsedQuantity
	agreeAfter int
	skip       bool
	err        error
	trains     int
	batches    [][]internal.TrainingExample
}

func (f *fakeLearner) Predict(string) model.Prediction {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.agreeAfter >= 0 && f.trains >= f.agreeAfter {
		return model.Prediction{
			ContainerType: f.target.ContainerType,
			Weight:        f.target.Weight,
			PiecesPerPack: f.target.PiecesPerPack,
			PacksPerCase:  f.target.PacksPerCase,
			Trained:       true,
		}
	}
	return model.Prediction{ContainerType: internal.ContainerVase, Weight: 1, PiecesPerPack: 1, PacksPerCase: 1, Trained: true}
}

func (f *fakeLearner) Train(_ context.Context, examples []internal.TrainingExample, replace bool) (model.TrainStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return model.TrainStats{}, f.err
	}
	if replace {
		panic("reinforcement must append")
	}
	if f.skip {
		return model.TrainStats{Skipped: true}, nil
	}
	f.trains++
	f.batches = append(f.batches, examples)
	return model.TrainStats{Examples: len(examples), Added: len(examples)}, nil
}

func (f *fakeLearner) trainCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.trains
}

func ruleResult() internal.ParsedQuantity {
	return internal.ParsedQuantity{
		Weight:              250,
		WeightUnit:          internal.UnitGram,
		PiecesPerPack:       1,
		PacksPerCase:        6,
		ContainerType:       internal.ContainerJar,
		ContainerConfidence: 1,
		MatchedRuleID:       "weight-packs",
		Method:              internal.MethodRule,
		Confidence:          1,
		Parsed:              true,
	}
}

const sampleText = "Honey jar 250g x 6 jars"

func TestReinforceSkipsAmbiguousContainer(t *testing.T) {
	q := ruleResult()
	q.ContainerType = internal.ContainerBox
	q.ContainerConfidence = 0.5
	l := &fakeLearner{target: q, agreeAfter: -1}

	rep, err := NewReinforcer(l, 3, 4, nil).Reinforce(context.Background(), sampleText, q)
	require.NoError(t, err)
	assert.False(t, rep.Triggered)
	assert.Zero(t, l.trainCount())
}

func TestReinforceSkipsModelResults(t *testing.T) {
	q := ruleResult()
	q.Method = internal.MethodModel
	l := &fakeLearner{target: q, agreeAfter: -1}

	rep, err := NewReinforcer(l, 3, 4, nil).Reinforce(context.Background(), sampleText, q)
	require.NoError(t, err)
	assert.False(t, rep.Triggered)
	assert.Zero(t, l.trainCount())
}

func TestReinforceNoPassesWhenAgreeing(t *testing.T) {
	q := ruleResult()
	l := &fakeLearner{target: q, agreeAfter: 0}
	r := NewReinforcer(l, 3, 4, nil)

	for range 3 {
		rep, err := r.Reinforce(context.Background(), sampleText, q)
		require.NoError(t, err)
		assert.True(t, rep.Triggered)
		assert.True(t, rep.Agreed)
		assert.Zero(t, rep.Passes)
	}
	assert.Zero(t, l.trainCount())
}

func TestReinforceStopsOnAgreement(t *testing.T) {
	q := ruleResult()
	l := &fakeLearner{target: q, agreeAfter: 1}

	rep, err := NewReinforcer(l, 3, 4, nil).Reinforce(context.Background(), sampleText, q)
	require.NoError(t, err)
	assert.True(t, rep.Agreed)
	assert.Equal(t, 1, rep.Passes)
	assert.Equal(t, 1, l.trainCount())

	batch := l.batches[0]
	require.NotEmpty(t, batch)
	assert.Equal(t, internal.ExampleFromResult(sampleText, q), batch[0])
	assert.Len(t, batch, 1+rep.Variants)
	for _, ex := range batch {
		assert.Equal(t, q.ContainerType, ex.ContainerType)
		assert.Equal(t, q.Weight, ex.Weight)
		assert.Equal(t, q.PiecesPerPack, ex.PiecesPerPack)
		assert.Equal(t, q.PacksPerCase, ex.PacksPerCase)
	}
}

func TestReinforceCapsPasses(t *testing.T) {
	q := ruleResult()
	l := &fakeLearner{target: q, agreeAfter: -1}

	rep, err := NewReinforcer(l, 3, 4, nil).Reinforce(context.Background(), sampleText, q)
	require.NoError(t, err)
	assert.True(t, rep.Triggered)
	assert.False(t, rep.Agreed)
	assert.Equal(t, 3, rep.Passes)
	assert.Equal(t, 3, l.trainCount())

	// each pass contributes different surface forms
	first := map[string]bool{}
	for _, ex := range l.batches[0][1:] {
		first[ex.Text] = true
	}
	for _, ex := range l.batches[1][1:] {
		assert.False(t, first[ex.Text], ex.Text)
	}
}

func TestReinforceStopsWhenNothingNew(t *testing.T) {
	q := ruleResult()
	l := &fakeLearner{target: q, agreeAfter: -1, skip: true}

	rep, err := NewReinforcer(l, 3, 4, nil).Reinforce(context.Background(), sampleText, q)
	require.NoError(t, err)
	assert.False(t, rep.Agreed)
	assert.Zero(t, rep.Passes)
}

func TestReinforceReturnsTrainError(t *testing.T) {
	q := ruleResult()
	l := &fakeLearner{target: q, agreeAfter: -1, err: context.Canceled}

	_, err := NewReinforcer(l, 3, 4, nil).Reinforce(context.Background(), sampleText, q)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestReinforceRealModel(t *testing.T) {
	m := model.New(nil, model.Options{Seed: 42, Trees: 8, MaxDepth: 8, MaxFeatures: 800}, nil)
	require.NoError(t, m.Load(context.Background()))

	text := "Zzyzx Qwerty 37g x 5pcs x 11 vases"
	q := internal.ParsedQuantity{
		Weight:              37,
		WeightUnit:          internal.UnitGram,
		PiecesPerPack:       5,
		PacksPerCase:        11,
		ContainerType:       internal.ContainerVase,
		ContainerConfidence: 1,
		Method:              internal.MethodRule,
		Confidence:          1,
		Parsed:              true,
	}
	rep, err := NewReinforcer(m, 3, 6, nil).Reinforce(context.Background(), text, q)
	require.NoError(t, err)
	assert.True(t, rep.Triggered)
	assert.GreaterOrEqual(t, rep.Passes, 1)
	assert.LessOrEqual(t, rep.Passes, 3)
	assert.Contains(t, m.Examples(), internal.ExampleFromResult(text, q))
}
