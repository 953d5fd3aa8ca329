package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"skuqty/internal"
	"skuqty/internal/config"
	"skuqty/internal/storage"
)

type ProcessingService struct {
	db     *storage.DB
	parser *Parser
	cfg    config.Config
	log    *zap.Logger
}

func NewProcessingService(db *storage.DB, parser *Parser, cfg config.Config, logger *zap.Logger) *ProcessingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProcessingService{db: db, parser: parser, cfg: cfg, log: logger.With(zap.String("component", "processing"))}
}

type ProcessResult struct {
	RunID     int64
	TraceID   string
	Processed int
	Stats     Stats
}

// Import stores descriptions as pending and returns how many were new.
func (s *ProcessingService) Import(items []internal.DescriptionItem, sourceID string) (int, error) {
	return s.db.InsertDescriptions(Descriptions(items, sourceID))
}

// ImportFile loads a file and stores its descriptions under the file name.
func (s *ProcessingService) ImportFile(path, inputType, column string) (int, error) {
	items, err := ExtractItemsFromInput(inputType, path, column)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	return s.Import(items, path)
}

// ProcessPending parses up to limit pending descriptions as one run.
func (s *ProcessingService) ProcessPending(ctx context.Context, limit int) (ProcessResult, error) {
	start := time.Now()
	pending, err := s.db.ListDescriptionsByStatus(storage.StatusPending, limit)
	if err != nil {
		return ProcessResult{}, err
	}
	if len(pending) == 0 {
		return ProcessResult{}, nil
	}

	descs := make([]internal.ProductDescription, len(pending))
	for i, p := range pending {
		descs[i] = internal.ProductDescription{Text: p.Text, SourceID: p.SourceID}
	}

	workers := s.cfg.ParseWorkers
	parseStart := time.Now()
	results, err := s.parser.ParseAll(ctx, descs, workers)
	if err != nil {
		return ProcessResult{}, err
	}
	parseMs := float64(time.Since(parseStart).Milliseconds())

	stats := Summarize(results)
	trace := traceID()
	runID, err := s.db.InsertRun(trace, map[string]float64{"parseMs": parseMs}, stats.Counts())
	if err != nil {
		return ProcessResult{}, err
	}

	records := make([]storage.ResultRecord, len(pending))
	for i, p := range pending {
		records[i] = storage.ResultRecord{DescriptionID: p.ID, Quantity: results[i]}
	}
	if err := s.db.SaveResults(runID, records); err != nil {
		return ProcessResult{}, err
	}

	timings := map[string]float64{"parseMs": parseMs, "totalMs": float64(time.Since(start).Milliseconds())}
	if err := s.db.UpdateRun(runID, timings, stats.Counts()); err != nil {
		s.log.Warn("run timings not saved", zap.Int64("run", runID), zap.Error(err))
	}
	_ = s.db.SetMetadata("process.last_run", strconv.FormatInt(runID, 10))

	s.log.Info("run finished",
		zap.String("trace", trace),
		zap.Int64("run", runID),
		zap.Int("total", stats.Total),
		zap.Int("parsed", stats.Parsed),
		zap.Int("failed", stats.Failed),
		zap.Float64("totalMs", timings["totalMs"]),
	)
	return ProcessResult{RunID: runID, TraceID: trace, Processed: len(pending), Stats: stats}, nil
}

// ExportRun writes a stored run to xlsx. runID 0 selects the latest run.
func (s *ProcessingService) ExportRun(runID int64, outputPath string) (int, error) {
	if runID == 0 {
		latest, err := s.db.LatestRunID()
		if err != nil {
			return 0, err
		}
		if latest == 0 {
			return 0, fmt.Errorf("no runs to export")
		}
		runID = latest
	}
	rows, err := s.db.GetExportRows(runID)
	if err != nil {
		return 0, err
	}
	if err := ExportRowsToXLSX(rows, outputPath); err != nil {
		return 0, err
	}
	return len(rows), nil
}

func traceID() string {
	return uuid.NewString()
}
