package roster

import (
	"github.com/matzehuels/gradslides/pkg/io"
)

// Field is a logical roster column.
type Field string

const (
	FieldProgram    Field = "PROGRAM"
	FieldFullName   Field = "FULL_NAME"
	FieldStudentID  Field = "STUDENT_ID"
	FieldGPA        Field = "GPA"
	FieldScore      Field = "SCORE"
	FieldAdvisor    Field = "ADVISOR"
	FieldCoAdvisor1 Field = "CO_ADVISOR_1"
	FieldCoAdvisor2 Field = "CO_ADVISOR_2"
	FieldHonors     Field = "HONORS"
	FieldSeatCode   Field = "SEAT_CODE"
	FieldSession    Field = "SESSION"
)

// Fields lists every roster column in canonical order.
var Fields = []Field{
	FieldProgram, FieldFullName, FieldStudentID, FieldGPA, FieldScore,
	FieldAdvisor, FieldCoAdvisor1, FieldCoAdvisor2, FieldHonors,
	FieldSeatCode, FieldSession,
}

// aliases are the accepted header spellings per field, canonical first.
// The second entry is the header used by the registrar's exports.
var aliases = map[Field][]string{
	FieldProgram:    {"PROGRAM", "PROGRAM STUDI"},
	FieldFullName:   {"FULL_NAME", "NAMA MAHASISWA"},
	FieldStudentID:  {"STUDENT_ID", "NIM"},
	FieldGPA:        {"GPA", "IPK"},
	FieldScore:      {"SCORE", "SKOR TAK"},
	FieldAdvisor:    {"ADVISOR", "Nama Dosen Wali"},
	FieldCoAdvisor1: {"CO_ADVISOR_1", "Nama Dosen Pembimbing 1"},
	FieldCoAdvisor2: {"CO_ADVISOR_2", "Nama Dosen Pembimbing 2"},
	FieldHonors:     {"HONORS", "PREDIKAT KELULUSAN"},
	FieldSeatCode:   {"SEAT_CODE", "TEMPAT DUDUK"},
	FieldSession:    {"SESSION", "SESI"},
}

// Aliases returns the accepted header spellings for f.
func Aliases(f Field) []string {
	return aliases[f]
}

// Columns maps each field to its column index in a table, -1 when absent.
type Columns map[Field]int

// ResolveColumns locates every field in t's header.
func ResolveColumns(t *io.Table) Columns {
	cols := make(Columns, len(Fields))
	for _, f := range Fields {
		cols[f] = t.Index(aliases[f]...)
	}
	return cols
}

// Missing returns the fields that have no column, in canonical order.
// SESSION is only reported when the table's session is not known
// from elsewhere.
func (c Columns) Missing(sessionKnown bool) []Field {
	var out []Field
	for _, f := range Fields {
		if f == FieldSession && sessionKnown {
			continue
		}
		if c[f] < 0 {
			out = append(out, f)
		}
	}
	return out
}

func (c Columns) get(r io.Row, f Field) string {
	i, ok := c[f]
	if !ok {
		return ""
	}
	return r.Get(i)
}
