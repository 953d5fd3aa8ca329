package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ModelStoreFile   = "file"
	ModelStoreSQLite = "sqlite"
)

type Config struct {
	DBPath    string
	OutputDir string
	InboxDir  string

	ModelStore       string
	ModelPath        string
	ModelBackup      bool
	ModelSeed        int64
	ModelTrees       int
	ModelMaxDepth    int
	ModelMaxFeatures int

	FallbackThreshold float64

	ReinforceMaxIterations int
	ReinforceMaxVariants   int
	ReinforceAsync         bool
	ReinforceQueue         int

	ParseWorkers int

	WatchIntervalSec  int
	WatchProcessBatch int
	WatchAutoExport   bool

	LogLevel  string
	LogFormat string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "skuqty.db")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),
		InboxDir:  getEnv("INBOX_DIR", filepath.Join(cwd, "data", "inbox")),

		ModelStore:       strings.ToLower(getEnv("MODEL_STORE", ModelStoreFile)),
		ModelPath:        getEnv("MODEL_PATH", filepath.Join(cwd, "data", "model.json.gz")),
		ModelBackup:      getEnvBool("MODEL_BACKUP", true),
		ModelSeed:        int64(getEnvInt("MODEL_SEED", 42)),
		ModelTrees:       getEnvInt("MODEL_TREES", 40),
		ModelMaxDepth:    getEnvInt("MODEL_MAX_DEPTH", 12),
		ModelMaxFeatures: getEnvInt("MODEL_MAX_FEATURES", 2000),

		FallbackThreshold: getEnvFloat("FALLBACK_THRESHOLD", 0.7),

		ReinforceMaxIterations: getEnvInt("REINFORCE_MAX_ITERATIONS", 3),
		ReinforceMaxVariants:   getEnvInt("REINFORCE_MAX_VARIANTS", 6),
		ReinforceAsync:         getEnvBool("REINFORCE_ASYNC", false),
		ReinforceQueue:         getEnvInt("REINFORCE_QUEUE", 256),

		ParseWorkers: getEnvInt("PARSE_WORKERS", 4),

		WatchIntervalSec:  getEnvInt("WATCH_INTERVAL_SEC", 30),
		WatchProcessBatch: getEnvInt("WATCH_PROCESS_BATCH", 500),
		WatchAutoExport:   getEnvBool("WATCH_AUTO_EXPORT", true),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	return cfg, nil
}

// Validate reports every out-of-range setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.ModelStore != ModelStoreFile && c.ModelStore != ModelStoreSQLite {
		errs = append(errs, fmt.Errorf("MODEL_STORE must be %s or %s, got %q", ModelStoreFile, ModelStoreSQLite, c.ModelStore))
	}
	if c.ModelStore == ModelStoreFile {
		if err := c.Require("MODEL_PATH", c.ModelPath); err != nil {
			errs = append(errs, err)
		}
	}
	if err := c.Require("DB_PATH", c.DBPath); err != nil {
		errs = append(errs, err)
	}
	if c.FallbackThreshold <= 0 || c.FallbackThreshold > 1 {
		errs = append(errs, fmt.Errorf("FALLBACK_THRESHOLD must be in (0, 1], got %v", c.FallbackThreshold))
	}
	positive := []struct {
		name  string
		value int
	}{
		{"MODEL_TREES", c.ModelTrees},
		{"MODEL_MAX_DEPTH", c.ModelMaxDepth},
		{"MODEL_MAX_FEATURES", c.ModelMaxFeatures},
		{"REINFORCE_MAX_ITERATIONS", c.ReinforceMaxIterations},
		{"REINFORCE_QUEUE", c.ReinforceQueue},
		{"PARSE_WORKERS", c.ParseWorkers},
		{"WATCH_INTERVAL_SEC", c.WatchIntervalSec},
		{"WATCH_PROCESS_BATCH", c.WatchProcessBatch},
	}
	for _, p := range positive {
		if p.value <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", p.name, p.value))
		}
	}
	if c.ReinforceMaxVariants < 0 {
		errs = append(errs, fmt.Errorf("REINFORCE_MAX_VARIANTS must not be negative, got %d", c.ReinforceMaxVariants))
	}
	return errors.Join(errs...)
}

func (c Config) WatchInterval() time.Duration {
	return time.Duration(c.WatchIntervalSec) * time.Second
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
