// Package io reads and writes the tabular files gradslides works from.
//
// # Overview
//
// Student rosters and employer lists arrive as spreadsheets exported from
// the registrar's office. This package turns them into a [Table]: a header
// row plus the data rows beneath it, every cell as trimmed text. It knows
// nothing about what the columns mean; mapping headers to record fields is
// the job of the roster package.
//
// # Formats
//
// Two formats are supported, chosen by file extension:
//
//   - .xlsx / .xlsm: the first worksheet is read (via excelize)
//   - .csv: comma separated, UTF-8, optional byte order mark
//
// Anything else fails with an INVALID_FORMAT error.
//
// # Import
//
// Use [ImportTable] to read a file by path, or [ReadCSV] / [ReadXLSX] to
// read from any io.Reader:
//
//	t, err := io.ImportTable("wisuda_pagi.xlsx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	col := t.Index("NIM", "STUDENT_ID")
//
// Rows whose cells are all blank are skipped. Each kept [Row] remembers its
// 1-based line in the source file so diagnostics can point at it. Short rows
// are padded to the header width.
//
// # Export
//
// Use [ExportTable] to write a table to a file (again chosen by extension),
// or [WriteCSV] / [WriteXLSX] to write to any io.Writer. Export is used to
// produce the normalised roster dump of the inspect command and to build
// spreadsheet fixtures in tests.
//
// # Concurrency
//
// Tables are plain values. Reading the same Table from several goroutines
// is safe; modifying it concurrently is not.
package io
