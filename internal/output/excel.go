// internal/output/excel.go
package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/hwcatalog/harvester/internal/hardware"
)

type excelSink struct {
	path string
}

func (s *excelSink) Name() string { return "excel:" + s.path }

// Export maintains one workbook with a sheet per category, so a reviewer
// gets all three catalogs in a single file.
func (s *excelSink) Export(_ context.Context, cat hardware.Category, records hardware.Dataset) error {
	f, err := openOrCreateWorkbook(s.path)
	if err != nil {
		return err
	}
	defer f.Close()

	sheet := string(cat)
	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return err
	}
	if idx < 0 {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	} else {
		// Rewrite the sheet from scratch.
		if err := f.DeleteSheet(sheet); err != nil {
			return err
		}
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	}

	header := make([]interface{}, len(exportColumns))
	for i, c := range exportColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, rec := range records {
		row, err := exportRow(rec)
		if err != nil {
			return err
		}
		axis, err := excelize.JoinCellName("A", i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, axis, &row); err != nil {
			return err
		}
	}

	// Drop the default empty sheet once real sheets exist.
	if idx, err := f.GetSheetIndex("Sheet1"); err == nil && idx >= 0 && len(f.GetSheetList()) > 1 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func openOrCreateWorkbook(path string) (*excelize.File, error) {
	if _, err := os.Stat(path); err == nil {
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
		}
		return f, nil
	}
	return excelize.NewFile(), nil
}
