package listener

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"skuqty/internal/config"
	"skuqty/internal/pipeline"
	"skuqty/internal/rules"
	"skuqty/internal/storage"
)

const notPriceList = "From: a@example.com\r\nTo: b@example.com\r\nSubject: lunch\r\nContent-Type: text/plain\r\n\r\nSee you at 12\r\n"

func newService(t *testing.T) (*Service, config.Config) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Config{
		InboxDir:          filepath.Join(dir, "inbox"),
		OutputDir:         filepath.Join(dir, "out"),
		ParseWorkers:      2,
		WatchIntervalSec:  1,
		WatchProcessBatch: 2,
		WatchAutoExport:   true,
	}
	db, err := storage.Open(filepath.Join(dir, "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	proc := pipeline.NewProcessingService(db, pipeline.NewParser(rules.Default(), nil, nil, 0, nil), cfg, nil)
	return NewService(proc, cfg, nil), cfg
}

func TestRunCycle(t *testing.T) {
	svc, cfg := newService(t)
	require.NoError(t, os.MkdirAll(cfg.InboxDir, 0o755))
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(cfg.InboxDir, name), []byte(body), 0o644))
	}
	write("list.txt", "16g*24pcs*12boxes\n12,5 гр 20 Х 30 бл\nrandom text with no numbers\n")
	write("lunch.eml", notPriceList)
	write("broken.xlsx", "not a spreadsheet")
	write(".hidden", "ignored")

	res, err := svc.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Files)
	assert.Equal(t, 1, res.Processed)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 1, res.Failed)

	// three descriptions with a batch of two make two runs
	require.Len(t, res.Exports, 2)
	for _, out := range res.Exports {
		f, err := excelize.OpenFile(out)
		require.NoError(t, err)
		_ = f.Close()
	}

	assert.FileExists(t, filepath.Join(cfg.InboxDir, doneDir, "list.txt"))
	assert.FileExists(t, filepath.Join(cfg.InboxDir, skippedDir, "lunch.eml"))
	assert.FileExists(t, filepath.Join(cfg.InboxDir, failedDir, "broken.xlsx"))
	assert.FileExists(t, filepath.Join(cfg.InboxDir, ".hidden"))

	again, err := svc.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Zero(t, again.Files)
}

func TestRunStopsOnCancel(t *testing.T) {
	svc, _ := newService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, svc.Run(ctx))
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "a_b_list_txt", sanitizeName("a b/list.txt"))
}
