package model

import (
	"context"
	"errors"
	"math"
	"regexp"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"skuqty/internal"
)

var ErrNotTrained = errors.New("model not trained")

var mlPattern = regexp.MustCompile(`(?i)\d\s*(?:ml|мл)`)

type Options struct {
	Seed        int64
	Trees       int
	MaxDepth    int
	MaxFeatures int
}

func DefaultOptions() Options {
	return Options{Seed: 42, Trees: 40, MaxDepth: 12, MaxFeatures: 2000}
}

type Prediction struct {
	ContainerType       internal.ContainerType
	Weight              float64
	WeightUnit          internal.WeightUnit
	PiecesPerPack       int
	PacksPerCase        int
	ContainerConfidence float64
	WeightConfidence    float64
	PiecesConfidence    float64
	PacksConfidence     float64
	Trained             bool
}

// Confidence is the weakest per-field confidence.
func (p Prediction) Confidence() float64 {
	if !p.Trained {
		return 0
	}
	return math.Min(math.Min(p.ContainerConfidence, p.WeightConfidence), math.Min(p.PiecesConfidence, p.PacksConfidence))
}

type TrainStats struct {
	Examples  int
	Added     int
	Skipped   bool
	Persisted bool
	Duration  time.Duration
}

type Stats struct {
	Trained   bool
	Examples  int
	Terms     int
	Passes    int
	TrainedAt time.Time
}

// Model owns the fitted vectorizer, the per-field forests and the training
// corpus. Predict may run concurrently; Train calls are serialized and
// publish the new state in one step.
type Model struct {
	mu    sync.RWMutex
	state *state

	trainMu sync.Mutex
	passes  int

	store Store
	opts  Options
	log   *zap.Logger
}

func New(store Store, opts Options, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	def := DefaultOptions()
	if opts.Trees <= 0 {
		opts.Trees = def.Trees
	}
	if opts.MaxFeatures <= 0 {
		opts.MaxFeatures = def.MaxFeatures
	}
	return &Model{store: store, opts: opts, log: logger.With(zap.String("component", "model"))}
}

// Load restores the persisted state. Missing or unreadable state is not
// fatal: the model is rebuilt from the seed corpus instead.
func (m *Model) Load(ctx context.Context) error {
	if m.store != nil {
		blob, err := m.store.Load()
		switch {
		case err == nil:
			st, derr := decodeState(blob)
			if derr == nil {
				m.mu.Lock()
				m.state = st
				m.mu.Unlock()
				m.log.Info("model state loaded", zap.Int("examples", len(st.corpus)), zap.Int("terms", st.vectorizer.Len()))
				return nil
			}
			m.log.Warn("model state is corrupt, bootstrapping from seed", zap.Error(&PersistenceError{Op: "decode", Err: derr}))
		case errors.Is(err, ErrNoState):
			m.log.Info("no model state, bootstrapping from seed")
		default:
			m.log.Warn("model state unreadable, bootstrapping from seed", zap.Error(&PersistenceError{Op: "load", Err: err}))
		}
	}
	_, err := m.Train(ctx, nil, true)
	return err
}

func (m *Model) Trained() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state != nil
}

func (m *Model) Predict(text string) Prediction {
	m.mu.RLock()
	st := m.state
	m.mu.RUnlock()
	if st == nil {
		return Prediction{ContainerType: internal.ContainerBox, WeightUnit: internal.UnitGram}
	}

	x := st.vectorizer.Transform(text)
	ct := st.container.Predict(x)
	w := st.weight.Predict(x)
	p := st.pieces.Predict(x)
	c := st.packs.Predict(x)

	out := Prediction{
		ContainerType:       internal.ParseContainerType(ct.Label),
		WeightUnit:          internal.UnitGram,
		ContainerConfidence: ct.Share,
		Trained:             true,
	}
	if mlPattern.MatchString(text) {
		out.WeightUnit = internal.UnitMilliliter
	}
	if v, err := strconv.ParseFloat(w.Label, 64); err == nil {
		out.Weight, out.WeightConfidence = v, w.Share
	}
	if v, err := strconv.Atoi(p.Label); err == nil {
		out.PiecesPerPack, out.PiecesConfidence = v, p.Share
	}
	if v, err := strconv.Atoi(c.Label); err == nil {
		out.PacksPerCase, out.PacksConfidence = v, c.Share
	}
	return out
}

// Train refits every estimator on the corpus. With replace the corpus
// restarts from the seed set; otherwise examples are appended to the current
// corpus. A failed save is logged and the new model stays in use.
func (m *Model) Train(ctx context.Context, examples []internal.TrainingExample, replace bool) (TrainStats, error) {
	m.trainMu.Lock()
	defer m.trainMu.Unlock()
	start := time.Now()

	if !replace && len(examples) == 0 {
		m.log.Info("training skipped: no examples")
		return TrainStats{Skipped: true}, nil
	}

	m.mu.RLock()
	current := m.state
	m.mu.RUnlock()

	var base []internal.TrainingExample
	switch {
	case replace:
		base = SeedCorpus()
	case current != nil:
		base = current.corpus
	}
	corpus := mergeExamples(base, examples)
	added := max(len(corpus)-len(base), 0)

	if len(corpus) == 0 {
		m.log.Info("training skipped: empty corpus")
		return TrainStats{Skipped: true}, nil
	}
	if !replace && current != nil && added == 0 {
		return TrainStats{Examples: len(corpus), Skipped: true}, nil
	}

	if err := ctx.Err(); err != nil {
		return TrainStats{}, err
	}
	st := fitState(corpus, m.opts)
	if err := ctx.Err(); err != nil {
		return TrainStats{}, err
	}

	m.mu.Lock()
	m.state = st
	m.passes++
	m.mu.Unlock()

	stats := TrainStats{Examples: len(corpus), Added: added, Duration: time.Since(start)}
	if err := m.persist(st); err != nil {
		m.log.Warn("model state not saved", zap.Error(err))
	} else {
		stats.Persisted = m.store != nil
	}
	m.log.Info("model trained",
		zap.Int("examples", stats.Examples),
		zap.Int("added", stats.Added),
		zap.Bool("replace", replace),
		zap.Duration("took", stats.Duration),
	)
	return stats, nil
}

func (m *Model) persist(st *state) error {
	if m.store == nil {
		return nil
	}
	blob, err := encodeState(st)
	if err != nil {
		return &PersistenceError{Op: "encode", Err: err}
	}
	if err := m.store.Save(blob); err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	return nil
}

func (m *Model) Examples() []internal.TrainingExample {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state == nil {
		return nil
	}
	out := make([]internal.TrainingExample, len(m.state.corpus))
	copy(out, m.state.corpus)
	return out
}

func (m *Model) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := Stats{Passes: m.passes}
	if m.state != nil {
		s.Trained = true
		s.Examples = len(m.state.corpus)
		s.Terms = m.state.vectorizer.Len()
		s.TrainedAt = m.state.trainedAt
	}
	return s
}

func fitState(corpus []internal.TrainingExample, opts Options) *state {
	docs := make([]string, len(corpus))
	for i, ex := range corpus {
		docs[i] = ex.Text
	}
	v := NewVectorizer(1, 3, opts.MaxFeatures)
	v.Fit(docs)

	xs := make([]SparseVector, len(corpus))
	containers := make([]string, len(corpus))
	weights := make([]string, len(corpus))
	pieces := make([]string, len(corpus))
	packs := make([]string, len(corpus))
	for i, ex := range corpus {
		xs[i] = v.Transform(ex.Text)
		containers[i] = string(ex.ContainerType)
		weights[i] = strconv.FormatFloat(ex.Weight, 'f', -1, 64)
		pieces[i] = strconv.Itoa(ex.PiecesPerPack)
		packs[i] = strconv.Itoa(ex.PacksPerCase)
	}

	fo := func(offset int64) ForestOptions {
		return ForestOptions{Trees: opts.Trees, MaxDepth: opts.MaxDepth, Seed: opts.Seed + offset}
	}
	return &state{
		vectorizer: v,
		container:  FitForest(xs, containers, fo(0)),
		weight:     FitForest(xs, weights, fo(1)),
		pieces:     FitForest(xs, pieces, fo(2)),
		packs:      FitForest(xs, packs, fo(3)),
		corpus:     corpus,
		trainedAt:  time.Now().UTC(),
	}
}

// mergeExamples appends extra to base, dropping exact duplicates and keeping
// first-seen order.
func mergeExamples(base, extra []internal.TrainingExample) []internal.TrainingExample {
	seen := make(map[internal.TrainingExample]struct{}, len(base)+len(extra))
	out := make([]internal.TrainingExample, 0, len(base)+len(extra))
	for _, list := range [][]internal.TrainingExample{base, extra} {
		for _, ex := range list {
			if ex.Text == "" {
				continue
			}
			if _, ok := seen[ex]; ok {
				continue
			}
			seen[ex] = struct{}{}
			out = append(out, ex)
		}
	}
	return out
}
