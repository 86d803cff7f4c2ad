package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/gradslides/pkg/errors"
)

func TestReadCSV(t *testing.T) {
	in := "\xEF\xBB\xBFPROGRAM STUDI, NIM ,NAMA MAHASISWA\n" +
		"S1 Informatika,1201200001, Ani \n" +
		",,\n" +
		"S1 Sistem Informasi,1201200002\n"

	tbl, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"PROGRAM STUDI", "NIM", "NAMA MAHASISWA"}, tbl.Header)
	require.Equal(t, 2, tbl.Len())

	assert.Equal(t, 2, tbl.Rows[0].Line)
	assert.Equal(t, "Ani", tbl.Rows[0].Get(2))
	assert.Equal(t, 4, tbl.Rows[1].Line, "blank line must be skipped but counted")
	assert.Len(t, tbl.Rows[1].Cells, 3, "short rows are padded")
	assert.Equal(t, "", tbl.Rows[1].Get(2))
}

func TestReadCSVEmpty(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, tbl.Header)
	assert.Zero(t, tbl.Len())
}

func TestIndex(t *testing.T) {
	tbl := &Table{Header: []string{"PROGRAM STUDI", "Student_ID", "Nama Dosen Wali"}}

	tests := []struct {
		names []string
		want  int
	}{
		{[]string{"program studi"}, 0},
		{[]string{"STUDENT ID"}, 1},
		{[]string{"student_id"}, 1},
		{[]string{"ADVISOR", "NAMA DOSEN WALI"}, 2},
		{[]string{"NIM"}, -1},
		{nil, -1},
	}
	for _, tt := range tests {
		if got := tbl.Index(tt.names...); got != tt.want {
			t.Errorf("Index(%v) = %d, want %d", tt.names, got, tt.want)
		}
	}
}

func TestRowGetOutOfRange(t *testing.T) {
	r := Row{Cells: []string{"a"}}
	assert.Equal(t, "a", r.Get(0))
	assert.Equal(t, "", r.Get(-1))
	assert.Equal(t, "", r.Get(5))
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "CO ADVISOR 1", NormalizeHeader(" co_advisor_1 "))
	assert.Equal(t, "SKOR TAK", NormalizeHeader("Skor   TAK"))
}

func TestXLSXRoundTrip(t *testing.T) {
	in := &Table{
		Header: []string{"NIM", "IPK"},
		Rows: []Row{
			{Line: 2, Cells: []string{"0012", "3.85"}},
			{Line: 3, Cells: []string{"0013", "4"}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(in, &buf))

	out, err := ReadXLSX(&buf)
	require.NoError(t, err)
	assert.Equal(t, in.Header, out.Header)
	require.Equal(t, 2, out.Len())
	assert.Equal(t, "0012", out.Rows[0].Get(0), "text cells keep leading zeros")
	assert.Equal(t, "4", out.Rows[1].Get(1))
}

func TestImportExportTable(t *testing.T) {
	dir := t.TempDir()
	in := &Table{
		Header: []string{"Nama", "Nama Perusahaan"},
		Rows:   []Row{{Line: 2, Cells: []string{"Ani", "PT Telkom"}}},
	}

	for _, name := range []string{"employers.csv", "employers.xlsx"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, ExportTable(in, path))

			out, err := ImportTable(path)
			require.NoError(t, err)
			assert.Equal(t, path, out.Source)
			assert.Equal(t, "PT Telkom", out.Value(out.Rows[0], "NAMA PERUSAHAAN"))
		})
	}
}

func TestImportTableErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ImportTable(filepath.Join(dir, "missing.xlsx"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound), "got %v", err)

	_, err = ImportTable(filepath.Join(dir, "roster.ods"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat), "got %v", err)

	bad := filepath.Join(dir, "broken.xlsx")
	require.NoError(t, os.WriteFile(bad, []byte("not a zip"), 0o644))
	_, err = ImportTable(bad)
	assert.True(t, errors.Is(err, errors.ErrCodeUnreadableTable), "got %v", err)
}
