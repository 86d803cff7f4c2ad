package io

import (
	"bytes"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/gradslides/pkg/errors"
)

// Format identifies a table file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatOf returns the table format implied by path's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat,
			"unsupported table format %q (want .xlsx or .csv)", filepath.Ext(path))
	}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV decodes a comma separated table from r. The first non-blank
// record is the header. Records may have differing field counts.
// ReadCSV does not close r.
func ReadCSV(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("decode csv: %w", err)
	}
	return newTable("", records), nil
}

// ReadXLSX decodes the first worksheet of a workbook read from r.
// Cell values are taken as displayed, so number formats set in the
// workbook apply. ReadXLSX does not close r.
func ReadXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("sheet %s: %w", sheets[0], err)
	}
	return newTable("", rows), nil
}

// ImportTable reads the table at path, choosing the decoder by extension.
//
// Errors carry a code: FILE_NOT_FOUND when path does not exist,
// INVALID_FORMAT for an unknown extension, UNREADABLE_TABLE when the file
// cannot be decoded.
func ImportTable(path string) (*Table, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "table %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeUnreadableTable, err, "open %s", path)
	}
	defer f.Close()

	var t *Table
	switch format {
	case FormatCSV:
		t, err = ReadCSV(f)
	default:
		t, err = ReadXLSX(f)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnreadableTable, err, "read %s", path)
	}
	t.Source = path
	return t, nil
}
