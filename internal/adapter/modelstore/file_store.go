// Package modelstore persists the prediction model as a single gob blob
// on disk. The file is the only state that outlives a process; writes
// are atomic so concurrent readers never observe a partially written
// model.
package modelstore

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"adlytics/internal/core/predict"
)

// FileStore implements port.ModelStore at a fixed file path. The fitted
// encoder and forest serialize together, so Load always yields a
// self-consistent model.
type FileStore struct {
	path string
}

// New returns a store writing to the given path.
func New(path string) *FileStore {
	return &FileStore{path: path}
}

// Save writes the model to a temp file in the target directory and
// renames it over the destination. Rename within one directory is atomic
// on POSIX filesystems.
func (s *FileStore) Save(_ context.Context, m *predict.Model) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp model file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err = gob.NewEncoder(tmp).Encode(m); err != nil {
		tmp.Close()
		return fmt.Errorf("encode model: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp model file: %w", err)
	}
	if err = os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace model file: %w", err)
	}
	return nil
}

// Load reads the persisted model. A missing file means "never trained"
// and returns (nil, nil); a present but undecodable file is a real
// error so corrupt state stays distinguishable.
func (s *FileStore) Load(_ context.Context) (*predict.Model, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open model file: %w", err)
	}
	defer f.Close()

	var m predict.Model
	if err = gob.NewDecoder(f).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode model file %s: %w", s.path, err)
	}
	return &m, nil
}
