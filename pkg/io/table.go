package io

import (
	"strings"
)

// Table is a header row plus the data rows beneath it.
type Table struct {
	Source string   // path or name the table was read from
	Header []string // trimmed header cells
	Rows   []Row
}

// Row is one non-blank data row.
type Row struct {
	Line  int      // 1-based line in the source file
	Cells []string // trimmed, padded to len(Header)
}

// Get returns cell i, or "" when i is out of range.
func (r Row) Get(i int) string {
	if i < 0 || i >= len(r.Cells) {
		return ""
	}
	return r.Cells[i]
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Index returns the position of the first header that matches any of names,
// or -1. Matching ignores case, surrounding whitespace and the difference
// between "_" and " ", so "student_id" matches "STUDENT ID".
func (t *Table) Index(names ...string) int {
	for _, name := range names {
		want := NormalizeHeader(name)
		for i, h := range t.Header {
			if NormalizeHeader(h) == want {
				return i
			}
		}
	}
	return -1
}

// Value returns the cell of row r in the first column matching names.
func (t *Table) Value(r Row, names ...string) string {
	return r.Get(t.Index(names...))
}

// NormalizeHeader folds a header cell for comparison.
func NormalizeHeader(s string) string {
	s = strings.ReplaceAll(strings.ToUpper(s), "_", " ")
	return strings.Join(strings.Fields(s), " ")
}

func newTable(source string, records [][]string) *Table {
	t := &Table{Source: source}
	first := -1
	for i, rec := range records {
		if !blank(rec) {
			first = i
			break
		}
	}
	if first < 0 {
		return t
	}

	t.Header = trimAll(records[first])
	for i := first + 1; i < len(records); i++ {
		rec := records[i]
		if blank(rec) {
			continue
		}
		cells := trimAll(rec)
		for len(cells) < len(t.Header) {
			cells = append(cells, "")
		}
		t.Rows = append(t.Rows, Row{Line: i + 1, Cells: cells})
	}
	return t
}

func trimAll(rec []string) []string {
	out := make([]string, len(rec))
	for i, c := range rec {
		out[i] = strings.TrimSpace(c)
	}
	return out
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
