package listener

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"skuqty/internal/config"
	"skuqty/internal/pipeline"
)

const (
	doneDir    = "done"
	failedDir  = "failed"
	skippedDir = "skipped"
)

// Service polls the inbox directory and runs every dropped file through the
// parse pipeline.
type Service struct {
	proc *pipeline.ProcessingService
	cfg  config.Config
	log  *zap.Logger
}

func NewService(proc *pipeline.ProcessingService, cfg config.Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{proc: proc, cfg: cfg, log: logger.With(zap.String("component", "watch"))}
}

type CycleResult struct {
	Files     int
	Processed int
	Skipped   int
	Failed    int
	Exports   []string
}

func (s *Service) Run(ctx context.Context) error {
	for {
		res, err := s.RunCycle(ctx)
		if err != nil {
			s.log.Error("watch cycle failed", zap.Error(err))
		} else if res.Files > 0 {
			s.log.Info("watch cycle done",
				zap.Int("files", res.Files),
				zap.Int("processed", res.Processed),
				zap.Int("skipped", res.Skipped),
				zap.Int("failed", res.Failed),
			)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(s.cfg.WatchInterval()):
		}
	}
}

// RunCycle handles every file currently in the inbox. A file that fails is
// moved aside and does not stop the cycle.
func (s *Service) RunCycle(ctx context.Context) (CycleResult, error) {
	files, err := s.pendingFiles()
	if err != nil {
		return CycleResult{}, err
	}

	var res CycleResult
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return res, nil
		}
		res.Files++
		outputs, err := s.handleFile(ctx, path)
		switch {
		case errors.Is(err, errNotPriceList):
			res.Skipped++
			s.moveTo(path, skippedDir)
		case err != nil:
			res.Failed++
			s.log.Warn("inbox file failed", zap.String("file", path), zap.Error(err))
			s.moveTo(path, failedDir)
		default:
			res.Processed++
			res.Exports = append(res.Exports, outputs...)
			s.moveTo(path, doneDir)
		}
	}
	return res, nil
}

var errNotPriceList = errors.New("not a price list")

func (s *Service) handleFile(ctx context.Context, path string) ([]string, error) {
	inputType := pipeline.DetectInputType(path)
	if inputType == pipeline.InputEML {
		if err := s.checkEmail(path); err != nil {
			return nil, err
		}
	}

	imported, err := s.proc.ImportFile(path, inputType, "")
	if err != nil {
		return nil, err
	}
	if imported == 0 {
		s.log.Info("nothing new to parse", zap.String("file", path))
	}

	var outputs []string
	for {
		res, err := s.proc.ProcessPending(ctx, s.cfg.WatchProcessBatch)
		if err != nil {
			return outputs, err
		}
		if res.Processed == 0 {
			return outputs, nil
		}
		s.log.Info("file parsed",
			zap.String("file", path),
			zap.String("trace", res.TraceID),
			zap.Int("parsed", res.Stats.Parsed),
			zap.Int("total", res.Stats.Total),
		)
		if !s.cfg.WatchAutoExport {
			continue
		}
		name := fmt.Sprintf("%s_run%d.xlsx", sanitizeName(filepath.Base(path)), res.RunID)
		out := filepath.Join(s.cfg.OutputDir, "watch", name)
		if _, err := s.proc.ExportRun(res.RunID, out); err != nil {
			return outputs, err
		}
		outputs = append(outputs, out)
	}
}

func (s *Service) checkEmail(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	ext, err := pipeline.ExtractItemsFromEmailRaw(raw)
	if err != nil {
		return err
	}
	detect := pipeline.DetectPriceList(ext.Subject, ext.Text, ext.HTML, ext.AttachmentNames)
	if !detect.IsPriceList {
		s.log.Info("message skipped", zap.String("file", path), zap.Float64("score", detect.Score))
		return errNotPriceList
	}
	return nil
}

func (s *Service) pendingFiles() ([]string, error) {
	if err := os.MkdirAll(s.cfg.InboxDir, 0o755); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.cfg.InboxDir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		out = append(out, filepath.Join(s.cfg.InboxDir, name))
	}
	sort.Strings(out)
	return out, nil
}

func (s *Service) moveTo(path, sub string) {
	dir := filepath.Join(s.cfg.InboxDir, sub)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.log.Warn("cannot create inbox folder", zap.String("dir", dir), zap.Error(err))
		return
	}
	target := filepath.Join(dir, filepath.Base(path))
	if _, err := os.Stat(target); err == nil {
		target = filepath.Join(dir, fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(path)))
	}
	if err := os.Rename(path, target); err != nil {
		s.log.Warn("cannot move inbox file", zap.String("file", path), zap.Error(err))
	}
}

func sanitizeName(input string) string {
	repl := strings.NewReplacer("<", "_", ">", "_", ":", "_", "/", "_", "\\", "_", "|", "_", "?", "_", "*", "_", " ", "_", ".", "_")
	out := repl.Replace(input)
	if len(out) > 120 {
		out = out[:120]
	}
	return out
}
