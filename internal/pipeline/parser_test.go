package pipeline

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skuqty/internal"
	"skuqty/internal/feedback"
	"skuqty/internal/model"
	"skuqty/internal/rules"
)

type fakePredictor struct {
	mu    sync.Mutex
	pred  model.Prediction
	calls int
}

func (f *fakePredictor) Predict(string) model.Prediction {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.pred
}

type recordingReinforcement struct {
	mu    sync.Mutex
	texts []string
}

func (r *recordingReinforcement) Submit(_ context.Context, text string, _ internal.ParsedQuantity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts = append(r.texts, text)
}

func confidentPrediction(conf float64) model.Prediction {
	return model.Prediction{
		ContainerType:       internal.ContainerTray,
		Weight:              40,
		WeightUnit:          internal.UnitGram,
		PiecesPerPack:       20,
		PacksPerCase:        6,
		ContainerConfidence: 0.95,
		WeightConfidence:    conf,
		PiecesConfidence:    0.9,
		PacksConfidence:     0.92,
		Trained:             true,
	}
}

func TestParseScenarios(t *testing.T) {
	cases := []struct {
		input     string
		weight    float64
		unit      internal.WeightUnit
		pieces    int
		packs     int
		container internal.ContainerType
	}{
		{"16g*24pcs*12boxes", 16, internal.UnitGram, 24, 12, internal.ContainerBox},
		{"290,25г*12шт №573", 290.25, internal.UnitGram, 12, 1, internal.ContainerBox},
		{"Mini Pudding(Angle Jar) 13gx100pcsx6jars", 13, internal.UnitGram, 100, 6, internal.ContainerJar},
		{"12,5 гр 20 Х 30 бл", 12.5, internal.UnitGram, 20, 30, internal.ContainerBox},
		{"16g*12boxes*24pcs", 16, internal.UnitGram, 24, 12, internal.ContainerBox},
		{"Вафли 1 250,5 г*12шт", 1250.5, internal.UnitGram, 12, 1, internal.ContainerBox},
	}

	p := NewParser(rules.Default(), nil, nil, 0, nil)
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			got := p.Parse(context.Background(), internal.ProductDescription{Text: tc.input})
			require.True(t, got.Parsed)
			assert.Equal(t, tc.weight, got.Weight)
			assert.Equal(t, tc.unit, got.WeightUnit)
			assert.Equal(t, tc.pieces, got.PiecesPerPack)
			assert.Equal(t, tc.packs, got.PacksPerCase)
			assert.Equal(t, tc.container, got.ContainerType)
			assert.Equal(t, internal.MethodRule, got.Method)
			assert.Equal(t, 1.0, got.Confidence)
			assert.NotEmpty(t, got.MatchedRuleID)
		})
	}

	got := p.Parse(context.Background(), internal.ProductDescription{Text: "random text with no numbers"})
	assert.False(t, got.Parsed)
	assert.Zero(t, got.Confidence)
}

func TestParseContainerConfidence(t *testing.T) {
	p := NewParser(nil, nil, nil, 0, nil)

	got := p.Parse(context.Background(), internal.ProductDescription{Text: "290,25г*12шт №573"})
	assert.Equal(t, 0.5, got.ContainerConfidence)

	got = p.Parse(context.Background(), internal.ProductDescription{Text: "16g*24pcs*12boxes"})
	assert.Equal(t, 1.0, got.ContainerConfidence)
}

func TestParseBoundarySkipsModel(t *testing.T) {
	pred := &fakePredictor{pred: confidentPrediction(0.99)}
	p := NewParser(rules.Default(), pred, nil, 0.7, nil)

	for _, input := range []string{"", "   ", "no digits at all", " "} {
		got := p.Parse(context.Background(), internal.ProductDescription{Text: input})
		assert.Equal(t, internal.Unparsed(), got, input)
	}
	assert.Zero(t, pred.calls)
}

func TestParseFallsBackToModel(t *testing.T) {
	pred := &fakePredictor{pred: confidentPrediction(0.8)}
	p := NewParser(rules.Default(), pred, nil, 0.7, nil)

	got := p.Parse(context.Background(), internal.ProductDescription{Text: "Article 12345"})
	require.True(t, got.Parsed)
	assert.Equal(t, internal.MethodModel, got.Method)
	assert.Equal(t, 0.8, got.Confidence)
	assert.Equal(t, internal.ContainerTray, got.ContainerType)
	assert.Equal(t, 40.0, got.Weight)
	assert.Empty(t, got.MatchedRuleID)
	assert.Equal(t, 1, pred.calls)
}

func TestParseRejectsWeakModel(t *testing.T) {
	pred := &fakePredictor{pred: confidentPrediction(0.69)}
	p := NewParser(rules.Default(), pred, nil, 0.7, nil)
	assert.Equal(t, internal.Unparsed(), p.Parse(context.Background(), internal.ProductDescription{Text: "Article 12345"}))

	untrained := &fakePredictor{pred: model.Prediction{ContainerType: internal.ContainerBox}}
	p = NewParser(rules.Default(), untrained, nil, 0.7, nil)
	assert.Equal(t, internal.Unparsed(), p.Parse(context.Background(), internal.ProductDescription{Text: "Article 12345"}))
}

func TestParseSubmitsRuleResultsOnly(t *testing.T) {
	rec := &recordingReinforcement{}
	pred := &fakePredictor{pred: confidentPrediction(0.9)}
	p := NewParser(rules.Default(), pred, rec, 0.7, nil)

	p.Parse(context.Background(), internal.ProductDescription{Text: "16g*24pcs*12boxes"})
	p.Parse(context.Background(), internal.ProductDescription{Text: "Article 12345"})
	assert.Equal(t, []string{"16g*24pcs*12boxes"}, rec.texts)
	assert.Zero(t, pred.calls)
}

func TestParseAllKeepsOrder(t *testing.T) {
	inputs := []string{
		"16g*24pcs*12boxes",
		"",
		"Mini Pudding(Angle Jar) 13gx100pcsx6jars",
		"random text with no numbers",
		"12,5 гр 20 Х 30 бл",
		"6KT24AD30G CIS2",
		"Kokolin 12*24*18gr",
	}
	descs := make([]internal.ProductDescription, len(inputs))
	for i, in := range inputs {
		descs[i] = internal.ProductDescription{Text: in}
	}

	p := NewParser(rules.Default(), nil, nil, 0, nil)
	got, err := p.ParseAll(context.Background(), descs, 3)
	require.NoError(t, err)
	require.Len(t, got, len(descs))
	for i, d := range descs {
		assert.Equal(t, p.Parse(context.Background(), d), got[i], d.Text)
	}
}

func TestParseAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewParser(rules.Default(), nil, nil, 0, nil)
	_, err := p.ParseAll(ctx, []internal.ProductDescription{{Text: "16g*24pcs*12boxes"}}, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseDeterministicWithModel(t *testing.T) {
	m := model.New(nil, model.Options{Seed: 42, Trees: 8, MaxDepth: 8, MaxFeatures: 800}, nil)
	require.NoError(t, m.Load(context.Background()))
	p := NewParser(rules.Default(), m, nil, 0.5, nil)

	inputs := []string{"16g*24pcs*12boxes", "Article 12345", "Chupa Chups 12 g", "random text with no numbers"}
	for _, in := range inputs {
		d := internal.ProductDescription{Text: in}
		first := p.Parse(context.Background(), d)
		for range 3 {
			assert.Equal(t, first, p.Parse(context.Background(), d), in)
		}
	}
}

func TestParseReinforcesInline(t *testing.T) {
	m := model.New(nil, model.Options{Seed: 42, Trees: 8, MaxDepth: 8, MaxFeatures: 800}, nil)
	require.NoError(t, m.Load(context.Background()))
	r := feedback.NewReinforcer(m, 2, 4, nil)
	p := NewParser(rules.Default(), m, r, 0.7, nil)

	text := "Zzyzx Qwerty 37g x 5pcs x 11 vases"
	got := p.Parse(context.Background(), internal.ProductDescription{Text: text})
	require.True(t, got.Parsed)
	assert.Equal(t, internal.ContainerVase, got.ContainerType)
	assert.Equal(t, 1.0, got.ContainerConfidence)
	assert.Contains(t, m.Examples(), internal.ExampleFromResult(text, got))
}

type countingLearner struct {
	mu       sync.Mutex
	predicts int
	trains   int
}

func (c *countingLearner) Predict(string) model.Prediction {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.predicts++
	return model.Prediction{}
}

func (c *countingLearner) Train(context.Context, []internal.TrainingExample, bool) (model.TrainStats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trains++
	return model.TrainStats{Skipped: true}, nil
}

func TestParseReinforcesBrandCodes(t *testing.T) {
	learner := &countingLearner{}
	r := feedback.NewReinforcer(learner, 3, 4, nil)
	p := NewParser(rules.Default(), nil, r, 0.7, nil)

	got := p.Parse(context.Background(), internal.ProductDescription{Text: "6KT24AD30G CIS2"})
	require.True(t, got.Parsed)
	assert.Equal(t, "kt-ad-weight", got.MatchedRuleID)
	assert.Equal(t, internal.ContainerBox, got.ContainerType)
	assert.Equal(t, 1.0, got.ContainerConfidence)
	assert.Equal(t, 1, learner.trains)

	rep, err := r.Reinforce(context.Background(), "6KT24AD30G CIS2", got)
	require.NoError(t, err)
	assert.True(t, rep.Triggered)

	learner.trains = 0
	got = p.Parse(context.Background(), internal.ProductDescription{Text: "Конфеты продукт 100г*12шт"})
	require.True(t, got.Parsed)
	assert.Equal(t, 0.5, got.ContainerConfidence)
	assert.Zero(t, learner.trains)
}
