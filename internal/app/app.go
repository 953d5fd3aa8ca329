package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"skuqty/internal/config"
	"skuqty/internal/feedback"
	"skuqty/internal/model"
	"skuqty/internal/pipeline"
	"skuqty/internal/rules"
	"skuqty/internal/storage"
)

// App holds the long-lived components shared by the command line tools.
type App struct {
	Config     config.Config
	DB         *storage.DB
	Model      *model.Model
	Reinforcer *feedback.Reinforcer
	Queue      *feedback.Queue
	Parser     *pipeline.Parser
	Processing *pipeline.ProcessingService
	Log        *zap.Logger
}

// Open opens storage, loads or bootstraps the model and wires the parser.
// With REINFORCE_ASYNC the feedback queue is started on ctx.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	var store model.Store
	switch cfg.ModelStore {
	case config.ModelStoreSQLite:
		store = db.ModelStore()
	default:
		store = model.NewFileStore(cfg.ModelPath, cfg.ModelBackup)
	}

	m := model.New(store, model.Options{
		Seed:        cfg.ModelSeed,
		Trees:       cfg.ModelTrees,
		MaxDepth:    cfg.ModelMaxDepth,
		MaxFeatures: cfg.ModelMaxFeatures,
	}, logger)
	if err := m.Load(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("load model: %w", err)
	}

	a := &App{Config: cfg, DB: db, Model: m, Log: logger}
	a.Reinforcer = feedback.NewReinforcer(m, cfg.ReinforceMaxIterations, cfg.ReinforceMaxVariants, logger)

	var reinforce pipeline.Reinforcement = a.Reinforcer
	if cfg.ReinforceAsync {
		a.Queue = feedback.NewQueue(a.Reinforcer, cfg.ReinforceQueue, logger)
		a.Queue.Start(ctx)
		reinforce = a.Queue
	}

	a.Parser = pipeline.NewParser(rules.Default(), m, reinforce, cfg.FallbackThreshold, logger)
	a.Processing = pipeline.NewProcessingService(db, a.Parser, cfg, logger)
	return a, nil
}

// Close drains pending reinforcement before closing storage.
func (a *App) Close() error {
	if a.Queue != nil {
		a.Queue.Close()
	}
	_ = a.Log.Sync()
	return a.DB.Close()
}
