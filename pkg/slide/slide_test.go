package slide

import (
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/gradslides/pkg/honors"
	"github.com/matzehuels/gradslides/pkg/layout"
	"github.com/matzehuels/gradslides/pkg/lookup"
	"github.com/matzehuels/gradslides/pkg/media"
	"github.com/matzehuels/gradslides/pkg/observability"
	"github.com/matzehuels/gradslides/pkg/roster"
)

type fakeProber map[string]media.Info

func (f fakeProber) Probe(path string) (media.Info, error) {
	if info, ok := f[path]; ok {
		return info, nil
	}
	return media.Info{}, fmt.Errorf("open %s: %w", path, fs.ErrNotExist)
}

var templates = map[honors.TemplateID]string{
	honors.TemplateNone:     "t/none.png",
	honors.TemplateCumlaude: "t/cum.png",
	honors.TemplateSumma:    "t/summa.png",
}

func newComposer(warnings *[]observability.Warning) *Composer {
	return &Composer{
		Layout:    layout.Default(),
		Templates: templates,
		Media: fakeProber{
			"t/none.png":  {Width: 960, Height: 720, Format: "png"},
			"t/cum.png":   {Width: 960, Height: 720, Format: "png"},
			"p/wide.jpg":  {Width: 400, Height: 200, Format: "jpeg"},
			"p/photo.jpg": {Width: 500, Height: 700, Format: "jpeg"},
		},
		Warn: func(w observability.Warning) { *warnings = append(*warnings, w) },
	}
}

func TestCompose(t *testing.T) {
	var warnings []observability.Warning
	c := newComposer(&warnings)
	deck := NewDeck("test", 1, 1)

	rec := roster.Sample()
	rec.Score = "nan"
	require.NoError(t, c.Compose(deck, rec, lookup.Some("p/photo.jpg"), lookup.Some("PT Telkom")))
	assert.Empty(t, warnings)
	require.Equal(t, 1, deck.Len())

	s := deck.Slides[0]
	assert.Equal(t, rec.StudentID, s.StudentID)

	bg, ok := s.Picture(RoleBackground)
	require.True(t, ok)
	assert.Equal(t, "t/cum.png", bg.Image, "cumlaude record uses the cumlaude template")
	assert.Equal(t, layout.Rect{W: 10 * layout.EMUPerInch, H: 7.5 * layout.EMUPerInch}, bg.Rect)

	photo, ok := s.Picture(RolePhoto)
	require.True(t, ok)
	assert.Equal(t, c.Layout.Frame(), photo.Rect, "5x7 photo fills the 5x7 frame")

	name, ok := s.Text("name")
	require.True(t, ok)
	assert.Equal(t, []string{"JOHN DOE TESTING DAN TESTING"}, name.Paragraphs)
	assert.Equal(t, 19.0, name.Style.Size)
	assert.True(t, name.Style.Bold)
	assert.Equal(t, layout.AlignCenter, name.Style.Align)
	assert.Equal(t, "Arial", name.Style.Font)

	prog, _ := s.Text("program")
	assert.Equal(t, []string{"S1 REKAYASA PERANGKAT LUNAK"}, prog.Paragraphs)

	emp, ok := s.Text("employer")
	require.True(t, ok)
	assert.Equal(t, []string{"PT TELKOM"}, emp.Paragraphs)

	co, ok := s.Text("co_advisors")
	require.True(t, ok)
	assert.Equal(t, []string{"PROF. DR. BUDI SANTOSO, S.T., M.T.", "DR. CITRA DEWI, S.T., M.KOM."}, co.Paragraphs)

	_, ok = s.Text("score")
	assert.False(t, ok, "nan score is skipped")

	assert.Equal(t, KindPicture, s.Shapes[0].Kind, "background is drawn first")
	assert.Equal(t, RolePhoto, s.Shapes[1].Name)
}

func TestComposeAbsentAssets(t *testing.T) {
	var warnings []observability.Warning
	c := newComposer(&warnings)
	deck := NewDeck("test", 1, 1)

	rec := roster.Record{FullName: "Budi", Honors: "Summa Cumlaude"}
	require.NoError(t, c.Compose(deck, rec, lookup.None[string](), lookup.None[string]()))

	s := deck.Slides[0]
	_, ok := s.Picture(RoleBackground)
	assert.False(t, ok, "missing summa template leaves the slide without background")
	_, ok = s.Picture(RolePhoto)
	assert.False(t, ok)
	_, ok = s.Text("employer")
	assert.False(t, ok)
	_, ok = s.Text("co_advisors")
	assert.False(t, ok)

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "template t/summa.png not found")
}

func TestComposeUnreadablePhoto(t *testing.T) {
	var warnings []observability.Warning
	c := newComposer(&warnings)
	deck := NewDeck("test", 1, 1)

	require.NoError(t, c.Compose(deck, roster.Record{FullName: "A"}, lookup.Some("p/gone.jpg"), lookup.None[string]()))
	_, ok := deck.Slides[0].Picture(RolePhoto)
	assert.False(t, ok)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "photo unreadable")
}

func TestComposeFitsWidePhoto(t *testing.T) {
	var warnings []observability.Warning
	c := newComposer(&warnings)
	deck := NewDeck("test", 1, 1)

	require.NoError(t, c.Compose(deck, roster.Record{FullName: "A"}, lookup.Some("p/wide.jpg"), lookup.None[string]()))
	photo, _ := deck.Slides[0].Picture(RolePhoto)
	frame := c.Layout.Frame()
	assert.Equal(t, frame.W, photo.Rect.W)
	assert.Equal(t, frame.W/2, photo.Rect.H)
	assert.True(t, frame.Contains(photo.Rect))
}

func TestComposeClassicLayout(t *testing.T) {
	var warnings []observability.Warning
	c := newComposer(&warnings)
	c.Layout, _ = layout.Preset("classic")
	deck := NewDeck("test", 1, 1)

	rec := roster.Record{FullName: "Ani", StudentID: "12", GPA: "3.50", Score: "400", Advisor: "Dr. W"}
	require.NoError(t, c.Compose(deck, rec, lookup.None[string](), lookup.None[string]()))
	s := deck.Slides[0]

	id, _ := s.Text("student_id")
	assert.Equal(t, []string{"NIM : 12"}, id.Paragraphs)
	gs, _ := s.Text("gpa_score")
	assert.Equal(t, []string{"IPK : 3.50 – TAK : 400"}, gs.Paragraphs)
	label, ok := s.Text("co_advisors_label")
	require.True(t, ok, "static labels are always drawn")
	assert.Equal(t, []string{"DOSEN PEMBIMBING :"}, label.Paragraphs)
	_, ok = s.Text("co_advisors")
	assert.False(t, ok)
}

func TestComposeErrors(t *testing.T) {
	c := &Composer{Layout: layout.Default()}
	assert.Error(t, c.Compose(NewDeck("", 1, 1), roster.Record{}, lookup.None[string](), lookup.None[string]()))

	c.Media = fakeProber{}
	assert.Error(t, c.Compose(nil, roster.Record{}, lookup.None[string](), lookup.None[string]()))
}

func TestPageSize(t *testing.T) {
	var warnings []observability.Warning
	c := newComposer(&warnings)

	w, h := c.PageSize(roster.Record{Honors: "Cumlaude"})
	assert.Equal(t, int64(10*layout.EMUPerInch), w)
	assert.Equal(t, int64(7.5*layout.EMUPerInch), h)

	lw, lh := c.Layout.Page()
	w, h = c.PageSize(roster.Record{Honors: "Summa Cumlaude"})
	assert.Equal(t, lw, w, "missing template falls back to the layout page")
	assert.Equal(t, lh, h)
}

func TestDeckImages(t *testing.T) {
	d := NewDeck("x", 1, 1)
	d.AddSlide(&Slide{Shapes: []Shape{{Kind: KindPicture, Image: "a"}, {Kind: KindPicture, Image: "b"}}})
	d.AddSlide(&Slide{Shapes: []Shape{{Kind: KindPicture, Image: "a"}, {Kind: KindText, Name: "n"}}})
	assert.Equal(t, []string{"a", "b"}, d.Images())
}
