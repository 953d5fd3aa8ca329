package pipeline

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"skuqty/internal"
	"skuqty/internal/container"
	"skuqty/internal/model"
	"skuqty/internal/rules"
	"skuqty/internal/util"
)

const DefaultThreshold = 0.7

// Predictor is the learned fallback consulted when no rule matches.
type Predictor interface {
	Predict(text string) model.Prediction
}

// Reinforcement receives every rule-tier result. feedback.Reinforcer runs it
// inline, feedback.Queue hands it to a background worker.
type Reinforcement interface {
	Submit(ctx context.Context, text string, result internal.ParsedQuantity)
}

type Parser struct {
	rules     *rules.Library
	model     Predictor
	reinforce Reinforcement
	threshold float64
	log       *zap.Logger
}

// NewParser wires the tiers together. model and reinforce may be nil, in
// which case the parser is rules-only.
func NewParser(lib *rules.Library, m Predictor, reinforce Reinforcement, threshold float64, logger *zap.Logger) *Parser {
	if lib == nil {
		lib = rules.Default()
	}
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{
		rules:     lib,
		model:     m,
		reinforce: reinforce,
		threshold: threshold,
		log:       logger.With(zap.String("component", "parser")),
	}
}

func (p *Parser) Parse(ctx context.Context, d internal.ProductDescription) internal.ParsedQuantity {
	text := util.NormalizeText(d.Text)
	if text == "" || !util.HasDigit(text) {
		return internal.Unparsed()
	}

	if m, ok := p.rules.TryAll(text); ok {
		ct, conf := container.Classify(text)
		out := internal.ParsedQuantity{
			Weight:              m.Weight,
			WeightUnit:          m.WeightUnit,
			PiecesPerPack:       m.Pieces,
			PacksPerCase:        m.Packs,
			ContainerType:       ct,
			ContainerConfidence: conf,
			MatchedRuleID:       m.RuleID,
			Method:              internal.MethodRule,
			Confidence:          1,
			Parsed:              true,
		}
		if p.reinforce != nil {
			p.reinforce.Submit(ctx, text, out)
		}
		return out
	}

	if p.model == nil {
		return internal.Unparsed()
	}
	pred := p.model.Predict(text)
	conf := pred.Confidence()
	if !pred.Trained || conf < p.threshold {
		p.log.Debug("no confident parse",
			zap.String("text", text),
			zap.Float64("confidence", conf),
			zap.String("source", d.SourceID),
		)
		return internal.Unparsed()
	}
	return internal.ParsedQuantity{
		Weight:              pred.Weight,
		WeightUnit:          pred.WeightUnit,
		PiecesPerPack:       pred.PiecesPerPack,
		PacksPerCase:        pred.PacksPerCase,
		ContainerType:       pred.ContainerType,
		ContainerConfidence: pred.ContainerConfidence,
		Method:              internal.MethodModel,
		Confidence:          conf,
		Parsed:              true,
	}
}

// ParseAll parses descriptions on a bounded worker pool. Results keep the
// input order.
func (p *Parser) ParseAll(ctx context.Context, descs []internal.ProductDescription, workers int) ([]internal.ParsedQuantity, error) {
	if workers <= 0 {
		workers = 1
	}
	out := make([]internal.ParsedQuantity, len(descs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range descs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = p.Parse(gctx, descs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
