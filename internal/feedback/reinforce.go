package feedback

import (
	"context"
	"math"

	"go.uber.org/zap"

	"skuqty/internal"
	"skuqty/internal/model"
)

const (
	DefaultMaxIterations = 3
	DefaultMaxVariants   = 6
)

// Learner is the part of the fallback model the loop drives.
type Learner interface {
	Predict(text string) model.Prediction
	Train(ctx context.Context, examples []internal.TrainingExample, replace bool) (model.TrainStats, error)
}

type Report struct {
	Triggered bool
	Agreed    bool
	Passes    int
	Variants  int
}

// Reinforcer retrains the fallback model whenever it disagrees with a
// confident rule-tier result, until it agrees or the pass cap is hit.
type Reinforcer struct {
	learner       Learner
	maxIterations int
	maxVariants   int
	log           *zap.Logger
}

func NewReinforcer(learner Learner, maxIterations, maxVariants int, logger *zap.Logger) *Reinforcer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	if maxVariants < 0 {
		maxVariants = DefaultMaxVariants
	}
	return &Reinforcer{
		learner:       learner,
		maxIterations: maxIterations,
		maxVariants:   maxVariants,
		log:           logger.With(zap.String("component", "feedback")),
	}
}

// Reinforce never fails because of disagreement; the only error returned is
// the context's.
func (r *Reinforcer) Reinforce(ctx context.Context, text string, result internal.ParsedQuantity) (Report, error) {
	var rep Report
	if !eligible(result) {
		return rep, nil
	}
	rep.Triggered = true

	label := internal.ExampleFromResult(text, result)
	for pass := 0; pass < r.maxIterations; pass++ {
		if Agrees(r.learner.Predict(text), result) {
			rep.Agreed = true
			return rep, nil
		}
		variants := Paraphrase(text, result, r.maxVariants, pass)
		examples := append([]internal.TrainingExample{label}, variants...)

		stats, err := r.learner.Train(ctx, examples, false)
		if err != nil {
			return rep, err
		}
		if stats.Skipped {
			// nothing new to learn from
			break
		}
		rep.Passes++
		rep.Variants += len(variants)
	}

	p := r.learner.Predict(text)
	if Agrees(p, result) {
		rep.Agreed = true
		return rep, nil
	}
	r.log.Warn("model diverges from rule tier",
		zap.String("text", text),
		zap.String("rule", result.MatchedRuleID),
		zap.Int("passes", rep.Passes),
		zap.String("wantContainer", string(result.ContainerType)),
		zap.String("gotContainer", string(p.ContainerType)),
		zap.Float64("wantWeight", result.Weight),
		zap.Float64("gotWeight", p.Weight),
		zap.Int("wantPieces", result.PiecesPerPack),
		zap.Int("gotPieces", p.PiecesPerPack),
		zap.Int("wantPacks", result.PacksPerCase),
		zap.Int("gotPacks", p.PacksPerCase),
	)
	return rep, nil
}

// Submit runs Reinforce inline and logs a cancelled pass.
func (r *Reinforcer) Submit(ctx context.Context, text string, result internal.ParsedQuantity) {
	if _, err := r.Reinforce(ctx, text, result); err != nil {
		r.log.Debug("reinforcement interrupted", zap.Error(err))
	}
}

func eligible(q internal.ParsedQuantity) bool {
	return q.Parsed && q.Method == internal.MethodRule && q.ContainerConfidence >= 1
}

// Agrees reports whether the model prediction matches the rule result on
// container, weight, pieces and packs.
func Agrees(p model.Prediction, q internal.ParsedQuantity) bool {
	return p.Trained &&
		p.ContainerType == q.ContainerType &&
		math.Abs(p.Weight-q.Weight) < 1e-6 &&
		p.PiecesPerPack == q.PiecesPerPack &&
		p.PacksPerCase == q.PacksPerCase
}
