package model

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

var ErrNoState = errors.New("no persisted model state")

type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("model state %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Store keeps the serialized model state. Load returns ErrNoState when
// nothing has been saved yet.
type Store interface {
	Load() ([]byte, error)
	Save(blob []byte) error
}

type FileStore struct {
	Path   string
	Backup bool
}

func NewFileStore(path string, backup bool) *FileStore {
	return &FileStore{Path: path, Backup: backup}
}

func (s *FileStore) Load() ([]byte, error) {
	blob, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoState
	}
	return blob, err
}

// Save writes the blob next to the target and renames it into place, so a
// reader sees either the old state or the new one.
func (s *FileStore) Save(blob []byte) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.Path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(blob); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if s.Backup {
		if err := s.backup(); err != nil {
			return err
		}
	}
	return os.Rename(tmpName, s.Path)
}

func (s *FileStore) backup() error {
	prev, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path+".bak", prev, 0o644)
}
