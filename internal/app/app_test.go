package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skuqty/internal"
	"skuqty/internal/config"
)

func testConfig(t *testing.T, store string, async bool) config.Config {
	dir := t.TempDir()
	return config.Config{
		DBPath:                 filepath.Join(dir, "app.db"),
		OutputDir:              filepath.Join(dir, "out"),
		InboxDir:               filepath.Join(dir, "inbox"),
		ModelStore:             store,
		ModelPath:              filepath.Join(dir, "model.json.gz"),
		ModelSeed:              42,
		ModelTrees:             6,
		ModelMaxDepth:          8,
		ModelMaxFeatures:       600,
		FallbackThreshold:      0.7,
		ReinforceMaxIterations: 2,
		ReinforceMaxVariants:   3,
		ReinforceAsync:         async,
		ReinforceQueue:         16,
		ParseWorkers:           2,
		WatchIntervalSec:       1,
		WatchProcessBatch:      100,
	}
}

func TestOpenWiresComponents(t *testing.T) {
	for _, tc := range []struct {
		store string
		async bool
	}{
		{config.ModelStoreFile, false},
		{config.ModelStoreSQLite, true},
	} {
		t.Run(tc.store, func(t *testing.T) {
			a, err := Open(context.Background(), testConfig(t, tc.store, tc.async), nil)
			require.NoError(t, err)

			assert.True(t, a.Model.Trained())
			assert.Equal(t, tc.async, a.Queue != nil)

			got := a.Parser.Parse(context.Background(), internal.ProductDescription{Text: "16g*24pcs*12boxes"})
			assert.True(t, got.Parsed)
			require.NoError(t, a.Close())
		})
	}
}

func TestOpenRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t, "redis", false)
	_, err := Open(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestModelSurvivesReopen(t *testing.T) {
	cfg := testConfig(t, config.ModelStoreSQLite, false)

	a, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	examples := len(a.Model.Examples())
	require.NoError(t, a.Close())

	b, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer b.Close()
	assert.Equal(t, examples, len(b.Model.Examples()))
	assert.Zero(t, b.Model.Stats().Passes)
}
