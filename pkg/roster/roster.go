// Package roster turns spreadsheet rows into graduate records.
//
// A roster table has one row per graduate. Columns are matched by header
// name (see [Fields]); the registrar's Indonesian headers ("NAMA MAHASISWA",
// "NIM", "IPK", ...) are accepted next to the canonical English ones. A
// missing column is not fatal: its field is read as blank and a single
// warning lists every column that was not found.
//
// Values are kept as text. Two fields are normalised on load:
//
//   - GPA: numeric values are printed with two decimals ("3.8" -> "3.80")
//   - SCORE: numeric values lose trailing zeros ("450.0" -> "450")
//
// Non-numeric values of either field are kept verbatim. The literal "nan"
// that spreadsheet exports use for empty cells is treated as blank
// everywhere (see [Blank]).
package roster

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/matzehuels/gradslides/pkg/honors"
	"github.com/matzehuels/gradslides/pkg/io"
	"github.com/matzehuels/gradslides/pkg/observability"
	"github.com/matzehuels/gradslides/pkg/seat"
)

// Record is one graduate. Records are read-only snapshots for a run.
type Record struct {
	Program    string   `json:"program"`
	FullName   string   `json:"full_name"`
	StudentID  string   `json:"student_id"`
	GPA        string   `json:"gpa"`
	Score      string   `json:"score"`
	Advisor    string   `json:"advisor"`
	CoAdvisors []string `json:"co_advisors,omitempty"`
	Honors     string   `json:"honors"`
	SeatCode   string   `json:"seat_code"`
	Session    Session  `json:"session"`
	Row        int      `json:"row,omitempty"` // 1-based source line, diagnostics only
}

// Tier classifies the record's honors text.
func (r Record) Tier() honors.Tier { return honors.Classify(r.Honors) }

// SeatKey parses the record's seat code.
func (r Record) SeatKey() seat.Key { return seat.Parse(r.SeatCode) }

// Side returns the seating side of the record.
func (r Record) Side() string { return seat.Side(r.SeatCode) }

// Label identifies the record in diagnostics.
func (r Record) Label() string {
	switch {
	case r.StudentID != "" && r.FullName != "":
		return r.StudentID + " " + r.FullName
	case r.StudentID != "":
		return r.StudentID
	case r.FullName != "":
		return r.FullName
	default:
		return fmt.Sprintf("row %d", r.Row)
	}
}

// Blank reports whether s carries no value: empty, whitespace or the
// literal "nan".
func Blank(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, "nan")
}

// clean trims s and folds "nan" to "".
func clean(s string) string {
	if Blank(s) {
		return ""
	}
	return strings.TrimSpace(s)
}

func parseNumber(raw string) (decimal.Decimal, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// FormatGPA prints numeric GPAs with two decimals. Other text is returned
// trimmed.
func FormatGPA(raw string) string {
	raw = clean(raw)
	if d, ok := parseNumber(raw); ok {
		return d.StringFixed(2)
	}
	return raw
}

// FormatScore prints numeric scores without trailing zeros. Other text is
// returned trimmed.
func FormatScore(raw string) string {
	raw = clean(raw)
	if d, ok := parseNumber(raw); ok {
		return d.String()
	}
	return raw
}

// FromTable converts the rows of t into records.
//
// Each record's session comes from its SESSION cell when that parses, and
// from fallback otherwise. Rows that end up without a session are dropped
// with a warning. Missing columns produce one warning.
func FromTable(t *io.Table, fallback Session) ([]Record, []observability.Warning) {
	var warnings []observability.Warning
	warn := func(subject, format string, args ...any) {
		warnings = append(warnings, observability.Warning{
			Source:  "roster",
			Subject: subject,
			Message: fmt.Sprintf(format, args...),
		})
	}

	cols := ResolveColumns(t)
	if missing := cols.Missing(fallback != SessionUnknown); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, f := range missing {
			names[i] = string(f)
		}
		warn(t.Source, "missing columns: %s", strings.Join(names, ", "))
	}

	records := make([]Record, 0, t.Len())
	for _, row := range t.Rows {
		rec := Record{
			Program:   clean(cols.get(row, FieldProgram)),
			FullName:  clean(cols.get(row, FieldFullName)),
			StudentID: clean(cols.get(row, FieldStudentID)),
			GPA:       FormatGPA(cols.get(row, FieldGPA)),
			Score:     FormatScore(cols.get(row, FieldScore)),
			Advisor:   clean(cols.get(row, FieldAdvisor)),
			Honors:    clean(cols.get(row, FieldHonors)),
			SeatCode:  clean(cols.get(row, FieldSeatCode)),
			Session:   fallback,
			Row:       row.Line,
		}
		for _, f := range []Field{FieldCoAdvisor1, FieldCoAdvisor2} {
			if v := clean(cols.get(row, f)); v != "" {
				rec.CoAdvisors = append(rec.CoAdvisors, v)
			}
		}

		if raw := clean(cols.get(row, FieldSession)); raw != "" {
			s, err := ParseSession(raw)
			switch {
			case err == nil:
				rec.Session = s
			case fallback != SessionUnknown:
				warn(rec.Label(), "%v; using %s", err, fallback)
			default:
				warn(rec.Label(), "%v, record skipped", err)
				continue
			}
		}
		if rec.Session == SessionUnknown {
			warn(rec.Label(), "no session, record skipped")
			continue
		}
		records = append(records, rec)
	}
	return records, warnings
}

// Load reads the table at path and converts it with [FromTable].
func Load(path string, fallback Session) ([]Record, []observability.Warning, error) {
	t, err := io.ImportTable(path)
	if err != nil {
		return nil, nil, err
	}
	recs, warnings := FromTable(t, fallback)
	return recs, warnings, nil
}

// ToTable renders records as a table with canonical headers.
func ToTable(records []Record) *io.Table {
	t := &io.Table{Header: make([]string, len(Fields))}
	for i, f := range Fields {
		t.Header[i] = string(f)
	}
	for _, r := range records {
		co := make([]string, 2)
		copy(co, r.CoAdvisors)
		t.Rows = append(t.Rows, io.Row{
			Line: r.Row,
			Cells: []string{
				r.Program, r.FullName, r.StudentID, r.GPA, r.Score,
				r.Advisor, co[0], co[1], r.Honors, r.SeatCode, r.Session.String(),
			},
		})
	}
	return t
}
