// internal/store/store.go

// Package store persists category datasets as JSON array files. Writes are
// all-or-nothing: the new content lands in a temp file first and is renamed
// over the live file only once fully written.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hwcatalog/harvester/internal/hardware"
)

// PersistError reports a failed write of the live dataset file.
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Path, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// Load reads a dataset file. A missing file is a normal first run and
// yields an empty dataset; a present but unreadable or malformed file is
// an error the caller must see.
func Load(path string) (hardware.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return hardware.Dataset{}, nil
		}
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}

	var records hardware.Dataset
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}
	return records, nil
}

// Save writes the dataset atomically. On any failure the previous file
// content is untouched.
func Save(path string, records hardware.Dataset) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return &PersistError{Path: path, Err: fmt.Errorf("failed to encode dataset: %w", err)}
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &PersistError{Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return &PersistError{Path: path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &PersistError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &PersistError{Path: path, Err: err}
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &PersistError{Path: path, Err: err}
	}
	return nil
}
