package lookup

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/gradslides/pkg/io"
	"github.com/matzehuels/gradslides/pkg/roster"
)

func TestOption(t *testing.T) {
	s := Some("x")
	v, ok := s.Get()
	assert.True(t, ok)
	assert.Equal(t, "x", v)
	assert.True(t, s.IsSome())
	assert.Equal(t, "x", s.OrElse("y"))

	n := None[string]()
	_, ok = n.Get()
	assert.False(t, ok)
	assert.Equal(t, "y", n.OrElse("y"))

	var zero Option[int]
	assert.False(t, zero.IsSome(), "zero value is absent")
}

func TestFindPhoto(t *testing.T) {
	dir := t.TempDir()
	program := "S1 Informatika"
	require.NoError(t, os.MkdirAll(filepath.Join(dir, program), 0o755))
	photo := filepath.Join(dir, program, "1201200001_graduation_1.jpg")
	require.NoError(t, os.WriteFile(photo, []byte("jpg"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, program, "1201200003_graduation_1.jpg"), 0o755))

	f := PhotoFinder{Dir: dir}

	tests := []struct {
		name      string
		id, prog  string
		wantFound bool
	}{
		{"present", "1201200001", program, true},
		{"trimmed id", " 1201200001 ", program, true},
		{"missing file", "1201200002", program, false},
		{"directory is not a photo", "1201200003", program, false},
		{"wrong program", "1201200001", "S1 Sistem Informasi", false},
		{"empty id", "", program, false},
		{"empty program", "1201200001", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.FindPhoto(tt.id, tt.prog)
			assert.Equal(t, tt.wantFound, got.IsSome())
			if tt.wantFound {
				assert.Equal(t, photo, got.OrElse(""))
			}
		})
	}
}

func TestPhotoFinderPattern(t *testing.T) {
	f := PhotoFinder{Dir: "photos", Pattern: "%s.png"}
	assert.Equal(t, filepath.Join("photos", "S1 IF", "42.png"), f.Path("42", "S1 IF"))
}

func employerTable(rows ...[]string) *io.Table {
	t := &io.Table{Source: "list_pekerjaan.xlsx", Header: []string{"Nama", "Nama Perusahaan"}}
	for i, r := range rows {
		t.Rows = append(t.Rows, io.Row{Line: i + 2, Cells: r})
	}
	return t
}

func TestBuildEmployers(t *testing.T) {
	e, warnings := BuildEmployers(employerTable(
		[]string{"Ani Lestari", "PT Telkom Indonesia"},
		[]string{"nan", "PT Kosong"},
		[]string{"Budi", ""},
		[]string{"Cahya", "PT Satu"},
		[]string{"CAHYA", "PT Dua"},
	))

	assert.Equal(t, 2, e.Len())
	require.Len(t, warnings, 1, "duplicate name with a different employer warns")
	assert.Contains(t, warnings[0].Message, `"PT Dua" replaces "PT Satu"`)

	assert.Equal(t, "PT Telkom Indonesia", e.Resolve("ANI LESTARI").OrElse(""))
	assert.Equal(t, "PT Telkom Indonesia", e.Resolve("  ani lestari ").OrElse(""))
	assert.Equal(t, "PT Dua", e.Resolve("Cahya").OrElse(""), "last write wins")
	assert.False(t, e.Resolve("Ani").IsSome(), "no partial matches")
	assert.False(t, e.Resolve("Budi").IsSome())
	assert.False(t, e.Resolve("").IsSome())
}

func TestBuildEmployersMissingColumns(t *testing.T) {
	e, warnings := BuildEmployers(&io.Table{Header: []string{"Nama"}})
	assert.Zero(t, e.Len())
	require.Len(t, warnings, 1)
	assert.False(t, e.Resolve("anyone").IsSome())

	var zero Employers
	assert.False(t, zero.Resolve("anyone").IsSome())
}

func TestNameKeyNormalizesComposition(t *testing.T) {
	composed := "Jos\u00e9"
	decomposed := "Jose\u0301"
	assert.Equal(t, NameKey(composed), NameKey(decomposed))
	assert.Equal(t, "JOS\u00c9", NameKey(decomposed))
}

func TestMatchReport(t *testing.T) {
	e, _ := BuildEmployers(employerTable([]string{"Ani", "PT A"}))
	recs := []roster.Record{{FullName: "ani"}, {FullName: "Budi"}, {FullName: "nan"}, {}}

	r := MatchReport(recs, e)
	assert.Equal(t, 2, r.Total)
	assert.Equal(t, 1, r.Matched)
	assert.InDelta(t, 50.0, r.Rate(), 1e-9)
	require.Len(t, r.Matches, 2)
	assert.Equal(t, "ANI", r.Matches[0].Key)
	assert.True(t, r.Matches[0].Employer.IsSome())

	assert.Zero(t, MatchReport(nil, e).Rate())
}

func ExamplePhotoFinder_Path() {
	f := PhotoFinder{Dir: "photos"}
	fmt.Println(filepath.ToSlash(f.Path("1201200001", "S1 Informatika")))
	// Output: photos/S1 Informatika/1201200001_graduation_1.jpg
}
