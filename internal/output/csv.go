// internal/output/csv.go
package output

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hwcatalog/harvester/internal/hardware"
)

type csvSink struct {
	path string
}

func (s *csvSink) Name() string { return "csv:" + s.path }

// Export writes one file per category, derived from the configured path
// (export.csv -> export_cpu.csv), since rows of different categories carry
// different spec payloads.
func (s *csvSink) Export(_ context.Context, cat hardware.Category, records hardware.Dataset) error {
	path := categoryPath(s.path, cat)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(exportColumns); err != nil {
		return err
	}
	for _, rec := range records {
		row, err := exportRow(rec)
		if err != nil {
			return err
		}
		cells := make([]string, len(row))
		for i, v := range row {
			if v == nil {
				continue
			}
			cells[i] = fmt.Sprint(v)
		}
		if err := w.Write(cells); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func categoryPath(path string, cat hardware.Category) string {
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)] + "_" + string(cat) + ext
}
