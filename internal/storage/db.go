package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"skuqty/internal"
	"skuqty/internal/model"
	"skuqty/internal/util"
)

const (
	StatusPending = "pending"
	StatusParsed  = "parsed"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS descriptions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  sourceId TEXT NOT NULL DEFAULT '',
  text TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(sourceId, text)
);
CREATE INDEX IF NOT EXISTS idx_descriptions_status ON descriptions(status);

CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  timingsJson TEXT NOT NULL,
  countsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS results (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  descriptionId INTEGER NOT NULL UNIQUE,
  runId INTEGER NOT NULL,
  parsed INTEGER NOT NULL,
  weight REAL,
  weightUnit TEXT,
  pieces INTEGER,
  packs INTEGER,
  containerType TEXT,
  ruleId TEXT,
  method TEXT NOT NULL,
  confidence REAL NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(descriptionId) REFERENCES descriptions(id),
  FOREIGN KEY(runId) REFERENCES runs(id)
);
CREATE INDEX IF NOT EXISTS idx_results_runId ON results(runId);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS model_state (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  blob BLOB NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// InsertDescriptions stores new descriptions as pending. A description
// already stored under the same source is left alone.
func (d *DB) InsertDescriptions(items []internal.ProductDescription) (int, error) {
	tx, err := d.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO descriptions (sourceId, text, status) VALUES (?, ?, 'pending')`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, item := range items {
		text := util.NormalizeSpaces(item.Text)
		if text == "" {
			continue
		}
		res, err := stmt.Exec(item.SourceID, text)
		if err != nil {
			return 0, err
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}

	return inserted, tx.Commit()
}

func (d *DB) ListDescriptionsByStatus(status string, limit int) ([]internal.StoredDescription, error) {
	rows, err := d.conn.Query(`
SELECT id, sourceId, text, status, createdAt
FROM descriptions WHERE status = ? ORDER BY id ASC LIMIT ?
`, status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.StoredDescription
	for rows.Next() {
		var row internal.StoredDescription
		if err := rows.Scan(&row.ID, &row.SourceID, &row.Text, &row.Status, &row.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (d *DB) CountDescriptions(status string) (int, error) {
	var n int
	err := d.conn.QueryRow(`SELECT COUNT(*) FROM descriptions WHERE status = ?`, status).Scan(&n)
	return n, err
}

func (d *DB) InsertRun(traceID string, timings map[string]float64, counts map[string]int) (int64, error) {
	timingsJSON, _ := json.Marshal(timings)
	countsJSON, _ := json.Marshal(counts)
	result, err := d.conn.Exec(`INSERT INTO runs (traceId, timingsJson, countsJson) VALUES (?, ?, ?)`, traceID, string(timingsJSON), string(countsJSON))
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (d *DB) UpdateRun(runID int64, timings map[string]float64, counts map[string]int) error {
	timingsJSON, _ := json.Marshal(timings)
	countsJSON, _ := json.Marshal(counts)
	_, err := d.conn.Exec(`UPDATE runs SET timingsJson = ?, countsJson = ? WHERE id = ?`, string(timingsJSON), string(countsJSON), runID)
	return err
}

func (d *DB) GetRun(runID int64) (*internal.RunRow, error) {
	var row internal.RunRow
	var timingsJSON, countsJSON string
	err := d.conn.QueryRow(`SELECT id, traceId, timingsJson, countsJson, createdAt FROM runs WHERE id = ?`, runID).
		Scan(&row.ID, &row.TraceID, &timingsJSON, &countsJSON, &row.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	_ = json.Unmarshal([]byte(timingsJSON), &row.Timings)
	_ = json.Unmarshal([]byte(countsJSON), &row.Counts)
	return &row, nil
}

func (d *DB) LatestRunID() (int64, error) {
	var id sql.NullInt64
	if err := d.conn.QueryRow(`SELECT MAX(id) FROM runs`).Scan(&id); err != nil {
		return 0, err
	}
	return id.Int64, nil
}

type ResultRecord struct {
	DescriptionID int
	Quantity      internal.ParsedQuantity
}

// SaveResults writes one result per description and marks the descriptions
// parsed. Reprocessing a description replaces its previous result.
func (d *DB) SaveResults(runID int64, records []ResultRecord) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT INTO results (descriptionId, runId, parsed, weight, weightUnit, pieces, packs, containerType, ruleId, method, confidence)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(descriptionId) DO UPDATE SET
  runId=excluded.runId,
  parsed=excluded.parsed,
  weight=excluded.weight,
  weightUnit=excluded.weightUnit,
  pieces=excluded.pieces,
  packs=excluded.packs,
  containerType=excluded.containerType,
  ruleId=excluded.ruleId,
  method=excluded.method,
  confidence=excluded.confidence,
  createdAt=CURRENT_TIMESTAMP
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rec := range records {
		q := rec.Quantity
		var (
			weight        *float64
			weightUnit    *string
			pieces, packs *int
			containerType *string
			ruleID        *string
		)
		if q.Parsed {
			weight = util.FloatPtr(q.Weight)
			weightUnit = util.StringPtr(string(q.WeightUnit))
			pieces = util.IntPtr(q.PiecesPerPack)
			packs = util.IntPtr(q.PacksPerCase)
			containerType = util.StringPtr(string(q.ContainerType))
		}
		if q.MatchedRuleID != "" {
			ruleID = util.StringPtr(q.MatchedRuleID)
		}
		if _, err := stmt.Exec(
			rec.DescriptionID, runID, q.Parsed, weight, weightUnit, pieces, packs,
			containerType, ruleID, string(q.Method), q.Confidence,
		); err != nil {
			return err
		}
		if _, err := tx.Exec(`UPDATE descriptions SET status = ? WHERE id = ?`, StatusParsed, rec.DescriptionID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func (d *DB) GetExportRows(runID int64) ([]internal.ResultExportRow, error) {
	rows, err := d.conn.Query(`
SELECT
  d.id,
  d.sourceId,
  d.text,
  r.parsed,
  r.weight,
  r.weightUnit,
  r.pieces,
  r.packs,
  r.containerType,
  r.ruleId,
  r.method,
  r.confidence
FROM results r
JOIN descriptions d ON d.id = r.descriptionId
WHERE r.runId = ?
ORDER BY r.parsed DESC, d.id ASC
`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.ResultExportRow
	for rows.Next() {
		var row internal.ResultExportRow
		if err := rows.Scan(
			&row.DescriptionID,
			&row.SourceID,
			&row.Text,
			&row.Parsed,
			&row.Weight,
			&row.WeightUnit,
			&row.PiecesPerPack,
			&row.PacksPerCase,
			&row.ContainerType,
			&row.RuleID,
			&row.Method,
			&row.Confidence,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}

	return out, rows.Err()
}

// ModelStore keeps the fallback model blob in the model_state table.
func (d *DB) ModelStore() model.Store {
	return &modelStateStore{conn: d.conn}
}

type modelStateStore struct {
	conn *sql.DB
}

func (s *modelStateStore) Load() ([]byte, error) {
	var blob []byte
	err := s.conn.QueryRow(`SELECT blob FROM model_state WHERE id = 1`).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNoState
	}
	return blob, err
}

func (s *modelStateStore) Save(blob []byte) error {
	_, err := s.conn.Exec(`
INSERT INTO model_state (id, blob) VALUES (1, ?)
ON CONFLICT(id) DO UPDATE SET blob = excluded.blob, updatedAt = CURRENT_TIMESTAMP
`, blob)
	return err
}
