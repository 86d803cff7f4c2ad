package io

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/gradslides/pkg/errors"
)

// WriteCSV encodes t as CSV (header first) and writes it to w.
func WriteCSV(t *Table, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range t.Rows {
		if err := cw.Write(r.Cells); err != nil {
			return fmt.Errorf("write line %d: %w", r.Line, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX encodes t as a single-sheet workbook and writes it to w.
// All cells are stored as text so values like student IDs keep leading
// zeros.
func WriteXLSX(t *Table, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := setRow(f, sheet, 1, t.Header); err != nil {
		return err
	}
	for i, r := range t.Rows {
		if err := setRow(f, sheet, i+2, r.Cells); err != nil {
			return err
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, cells []string) error {
	values := make([]any, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("row %d: %w", row, err)
	}
	return nil
}

// ExportTable writes t to path, choosing the encoder by extension.
func ExportTable(t *Table, path string) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "create %s", path)
	}

	if format == FormatCSV {
		err = WriteCSV(t, f)
	} else {
		err = WriteXLSX(t, f)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "write %s", path)
	}
	return nil
}
