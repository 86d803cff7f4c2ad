package layout

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitEMU(t *testing.T) {
	assert.Equal(t, int64(360000), Centimeters.EMU(1))
	assert.Equal(t, int64(914400), Inches.EMU(1))
	assert.Equal(t, int64(2520000), Centimeters.EMU(7.0))
}

func TestPixelsToEMU(t *testing.T) {
	assert.Equal(t, int64(914400), PixelsToEMU(96, 96))
	assert.Equal(t, int64(914400*2), PixelsToEMU(96, 48))
	assert.Equal(t, int64(914400), PixelsToEMU(96, 0), "non-positive DPI falls back to 96")
	assert.Equal(t, 96, EMUToPixels(914400, 96))
}

func TestFit(t *testing.T) {
	frame := Rect{X: 1000, Y: 2000, W: 500, H: 700}

	tests := []struct {
		name       string
		imgW, imgH int
		want       Rect
	}{
		{"wide image fills width", 1000, 500, Rect{X: 1000, Y: 2000 + (700-250)/2, W: 500, H: 250}},
		{"tall image fills height", 100, 700, Rect{X: 1000 + (500-100)/2, Y: 2000, W: 100, H: 700}},
		{"same ratio fills frame", 50, 70, Rect{X: 1000, Y: 2000, W: 500, H: 700}},
		{"zero height image", 10, 0, Rect{X: 1000, Y: 2000 + (700-500)/2, W: 500, H: 500}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fit(frame, tt.imgW, tt.imgH)
			assert.Equal(t, tt.want, got)
			assert.True(t, frame.Contains(got), "fitted image must stay inside the frame")
		})
	}
}

func TestCenterAndPlace(t *testing.T) {
	frame := Rect{X: 0, Y: 0, W: 2 * EMUPerInch, H: 3 * EMUPerInch}

	small, ok := Center(frame, 96, 96, 96)
	require.True(t, ok)
	assert.Equal(t, Rect{X: EMUPerInch / 2, Y: EMUPerInch, W: EMUPerInch, H: EMUPerInch}, small)
	assert.Equal(t, small, Place(PhotoCenter, frame, 96, 96, 96))

	_, ok = Center(frame, 960, 96, 96)
	assert.False(t, ok)
	assert.Equal(t, Fit(frame, 960, 96), Place(PhotoCenter, frame, 960, 96, 96), "overflow falls back to fit")

	assert.Equal(t, Fit(frame, 96, 96), Place(PhotoFit, frame, 96, 96, 96))
}

func TestPresets(t *testing.T) {
	assert.Equal(t, []string{"classic", "revisi"}, Presets())

	for _, name := range Presets() {
		t.Run(name, func(t *testing.T) {
			l, err := Preset(name)
			require.NoError(t, err)
			require.NoError(t, l.Check())
			assert.Equal(t, name, l.Preset)
			assert.NotEmpty(t, l.Fields)
			_, ok := l.Field("co_advisors")
			assert.True(t, ok)
		})
	}

	def, err := Preset("")
	require.NoError(t, err)
	assert.Equal(t, Default(), def)

	_, err = Preset("modern")
	assert.Error(t, err)
	assert.False(t, IsPreset("modern"))
}

func TestPresetIsACopy(t *testing.T) {
	a := Default()
	a.Fields[0].Size = 99
	assert.NotEqual(t, 99.0, Default().Fields[0].Size)
}

func TestRevisiGeometry(t *testing.T) {
	l := Default()
	assert.Equal(t, Rect{X: 2520000, Y: 1746000, W: 1800000, H: 2520000}, l.Frame())

	name, _ := l.Field("name")
	assert.Equal(t, Rect{X: 72000, Y: 5112000, W: 6840000, H: 360000}, name.Rect(l.Units))
	assert.Equal(t, 19.0, name.Size)
	assert.Equal(t, AlignCenter, name.Align)

	w, h := l.Page()
	assert.Equal(t, int64(9144000), w)
	assert.Equal(t, int64(6858000), h)
}

func TestCheck(t *testing.T) {
	l := Default()
	l.Fields = append(l.Fields, Field{Name: "x", Text: "{nickname}"})
	assert.ErrorContains(t, l.Check(), "unknown placeholder {nickname}")

	l = Default()
	l.Fields = append(l.Fields, l.Fields[0])
	assert.ErrorContains(t, l.Check(), "duplicate field")
}

func TestRender(t *testing.T) {
	v := Values{
		Scalars: map[string]string{
			Name: "Ani", GPA: "3.85", Score: "", Advisor: "nan", StudentID: "12",
		},
		CoAdvisors: []string{"Dr. A", " ", "nan", "Dr. B"},
	}

	tests := []struct {
		text   string
		want   []string
		wantOK bool
	}{
		{"{name}", []string{"Ani"}, true},
		{"NIM : {student_id}", []string{"NIM : 12"}, true},
		{"IPK : {gpa} – TAK : {score}", []string{"IPK : 3.85 – TAK : "}, true},
		{"{score}", nil, false},
		{"DOSEN WALI : {advisor}", nil, false},
		{"{employer}", nil, false},
		{"DOSEN PEMBIMBING :", []string{"DOSEN PEMBIMBING :"}, true},
		{"{co_advisors}", []string{"Dr. A", "Dr. B"}, true},
		{"- {co_advisors}", []string{"- Dr. A", "- Dr. B"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := Field{Name: "f", Text: tt.text}.Render(v)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := Field{Text: "{co_advisors}"}.Render(Values{})
	assert.False(t, ok, "no co-advisors skips the field")
}

func TestIsStatic(t *testing.T) {
	assert.True(t, Field{Text: "DOSEN PEMBIMBING :"}.IsStatic())
	assert.False(t, Field{Text: "NIM : {student_id}"}.IsStatic())
	assert.Equal(t, []string{GPA, Score}, Field{Text: "{gpa}/{score}"}.Placeholders())
}

func ExampleFit() {
	frame := Rect{X: 0, Y: 0, W: 5 * EMUPerCm, H: 7 * EMUPerCm}
	r := Fit(frame, 600, 600)
	fmt.Println(r.X, r.Y, r.W, r.H)
	// Output: 0 360000 1800000 1800000
}
