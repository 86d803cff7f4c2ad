package sink

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/gradslides/pkg/fonts"
	"github.com/matzehuels/gradslides/pkg/layout"
	"github.com/matzehuels/gradslides/pkg/media"
	"github.com/matzehuels/gradslides/pkg/render"
	"github.com/matzehuels/gradslides/pkg/slide"
)

func writePNG(t *testing.T, dir, name string, w, h int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func testDeck(t *testing.T) (*slide.Deck, *media.Library) {
	t.Helper()
	dir := t.TempDir()
	bg := writePNG(t, dir, "bg.png", 192, 144, color.RGBA{0, 0, 255, 255})
	bgCopy := writePNG(t, dir, "bg_copy.png", 192, 144, color.RGBA{0, 0, 255, 255})
	photo := writePNG(t, dir, "photo.png", 20, 30, color.RGBA{255, 0, 0, 255})

	style := slide.TextStyle{Font: "Arial", Size: 18, Bold: true, Color: "FFFFFF", Align: layout.AlignLeft}
	// 2in x 1.5in, above the smallest page PowerPoint accepts.
	pageW, pageH := int64(2*layout.EMUPerInch), int64(3*layout.EMUPerInch/2)
	d := slide.NewDeck("morning/CS/L", pageW, pageH)
	d.AddSlide(&slide.Slide{StudentID: "1", Title: "Alice", Shapes: []slide.Shape{
		{Kind: slide.KindPicture, Name: slide.RoleBackground, Image: bg, Rect: layout.Rect{W: pageW, H: pageH}},
		{Kind: slide.KindPicture, Name: slide.RolePhoto, Image: photo, Rect: layout.Rect{X: 10000, Y: 10000, W: 200000, H: 300000}},
		{Kind: slide.KindText, Name: "name", Rect: layout.Rect{X: 300000, Y: 100000, W: 500000, H: 200000}, Paragraphs: []string{"ALICE & BOB <3"}, Style: style},
	}})
	d.AddSlide(&slide.Slide{StudentID: "2", Title: "Bob", Shapes: []slide.Shape{
		{Kind: slide.KindPicture, Name: slide.RoleBackground, Image: bgCopy, Rect: layout.Rect{W: pageW, H: pageH}},
		{Kind: slide.KindText, Name: "co_advisors", Rect: layout.Rect{X: 300000, Y: 100000, W: 500000, H: 200000}, Paragraphs: []string{"DR. ONE", "DR. TWO"}, Style: style},
	}})
	return d, media.NewLibrary()
}

func readZip(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader() error: %v", err)
	}
	files := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		b, _ := io.ReadAll(rc)
		rc.Close()
		files[f.Name] = string(b)
	}
	return files
}

func TestRenderPPTX(t *testing.T) {
	d, lib := testDeck(t)

	data, err := RenderPPTX(d, lib, WithApplication("gradslides test"))
	if err != nil {
		t.Fatalf("RenderPPTX() error: %v", err)
	}
	files := readZip(t, data)

	for _, name := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"docProps/core.xml",
		"docProps/app.xml",
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/theme/theme1.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/slide2.xml",
		"ppt/slides/_rels/slide1.xml.rels",
		"ppt/media/image1.png",
		"ppt/media/image2.png",
	} {
		if _, ok := files[name]; !ok {
			t.Errorf("missing part %s", name)
		}
	}

	// bg.png and bg_copy.png have identical content.
	if _, ok := files["ppt/media/image3.png"]; ok {
		t.Error("identical images should be stored once")
	}
	if !strings.Contains(files["ppt/slides/_rels/slide2.xml.rels"], "../media/image1.png") {
		t.Error("slide 2 should reference the shared background")
	}

	pres := files["ppt/presentation.xml"]
	if !strings.Contains(pres, `<p:sldSz cx="1828800" cy="1371600"/>`) {
		t.Errorf("presentation.xml has wrong slide size:\n%s", pres)
	}
	if strings.Count(pres, "<p:sldId ") != 2 {
		t.Error("presentation.xml should list 2 slides")
	}

	s1 := files["ppt/slides/slide1.xml"]
	for _, want := range []string{
		`<a:t>ALICE &amp; BOB &lt;3</a:t>`,
		`sz="1800" b="1"`,
		`<a:srgbClr val="FFFFFF"/>`,
		`<a:latin typeface="Arial"/>`,
		`<a:pPr algn="l"/>`,
		`<a:off x="10000" y="10000"/><a:ext cx="200000" cy="300000"/>`,
	} {
		if !strings.Contains(s1, want) {
			t.Errorf("slide1.xml missing %q", want)
		}
	}

	s2 := files["ppt/slides/slide2.xml"]
	if strings.Count(s2, "<a:p>") != 2 {
		t.Errorf("co-advisors should be two paragraphs:\n%s", s2)
	}
	if !strings.Contains(files["docProps/app.xml"], "<Application>gradslides test</Application>") {
		t.Error("app.xml should carry the application name")
	}
}

func TestRenderPPTXDeterministic(t *testing.T) {
	d, lib := testDeck(t)
	a, err := RenderPPTX(d, lib)
	if err != nil {
		t.Fatal(err)
	}
	b, err := RenderPPTX(d, lib)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("rendering the same deck twice should produce identical bytes")
	}
}

func TestRenderPPTXEmptyDeck(t *testing.T) {
	d := slide.NewDeck("empty", 9144000, 6858000)
	data, err := RenderPPTX(d, media.NewLibrary())
	if err != nil {
		t.Fatalf("RenderPPTX() error: %v", err)
	}
	files := readZip(t, data)
	if strings.Contains(files["ppt/presentation.xml"], "sldIdLst") {
		t.Error("empty deck should have no slide list")
	}
}

func TestRenderPPTXPageSizeRange(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int64
		wantErr bool
	}{
		{"smallest page", minSlideSize, minSlideSize, false},
		{"largest page", maxSlideSize, maxSlideSize, false},
		{"4:3 default", 9144000, 6858000, false},
		{"tiny", 100, 100, true},
		{"one inch by three quarters", layout.EMUPerInch, layout.EMUPerInch * 3 / 4, true},
		{"too wide", maxSlideSize + 1, 6858000, true},
		{"too tall", 9144000, maxSlideSize + 1, true},
		{"wide banner background", 52387500, 952500, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RenderPPTX(slide.NewDeck(tt.name, tt.w, tt.h), media.NewLibrary())
			if (err != nil) != tt.wantErr {
				t.Errorf("RenderPPTX(%dx%d) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			}
		})
	}
}

func TestRenderPPTXMissingImage(t *testing.T) {
	d := slide.NewDeck("missing", 9144000, 6858000)
	d.AddSlide(&slide.Slide{Shapes: []slide.Shape{
		{Kind: slide.KindPicture, Name: slide.RolePhoto, Image: filepath.Join(t.TempDir(), "nope.jpg")},
	}})
	if _, err := RenderPPTX(d, media.NewLibrary()); err == nil {
		t.Error("expected error for a missing image")
	}
}

func TestRenderJSON(t *testing.T) {
	d, _ := testDeck(t)

	data, err := RenderJSON(d, WithJSONPartition("morning/CS/L"), WithJSONGenerator("gradslides dev"))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Width != 2*layout.EMUPerInch {
		t.Errorf("Width = %d, want %d", out.Width, 2*layout.EMUPerInch)
	}
	if out.Partition != "morning/CS/L" {
		t.Errorf("Partition = %q", out.Partition)
	}
	if len(out.Slides) != 2 {
		t.Fatalf("Slides = %d, want 2", len(out.Slides))
	}
	name, ok := out.Slides[0].Text("name")
	if !ok || name.Paragraphs[0] != "ALICE & BOB <3" {
		t.Errorf("name shape = %+v", name)
	}
}

func TestRenderJSONEmptyDeck(t *testing.T) {
	data, err := RenderJSON(slide.NewDeck("", 1, 1))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"slides": []`) {
		t.Errorf("empty deck should encode slides as []:\n%s", data)
	}
}

func TestRenderSVG(t *testing.T) {
	d, lib := testDeck(t)

	svgs, err := RenderSVG(d, lib, WithFrames())
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if len(svgs) != 2 {
		t.Fatalf("got %d documents, want 2", len(svgs))
	}
	s := string(svgs[0])
	for _, want := range []string{
		`viewBox="0 0 192.0 144.0"`,
		`href="data:image/png;base64,`,
		`ALICE &amp; BOB &lt;3`,
		`font-weight="bold"`,
		`fill="#FFFFFF"`,
		`stroke-dasharray`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	if strings.Count(string(svgs[1]), "<tspan") != 2 {
		t.Error("each paragraph should be its own tspan")
	}
}

func TestRenderPNG(t *testing.T) {
	d, lib := testDeck(t)

	pngs, err := RenderPNG(d, lib, WithPNGDPI(96))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	if len(pngs) != 2 {
		t.Fatalf("got %d images, want 2", len(pngs))
	}

	img, err := png.Decode(bytes.NewReader(pngs[0]))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 192 || b.Dy() != 144 {
		t.Errorf("size = %dx%d, want 192x144", b.Dx(), b.Dy())
	}
	// Bottom-right corner shows the blue background.
	r, g, b, _ := img.At(190, 140).RGBA()
	if r != 0 || g != 0 || b != 0xffff {
		t.Errorf("corner pixel = %v,%v,%v, want blue", r, g, b)
	}
	// Inside the photo.
	r, g, b, _ = img.At(10, 20).RGBA()
	if r != 0xffff || g != 0 || b != 0 {
		t.Errorf("photo pixel = %v,%v,%v, want red", r, g, b)
	}
}

func TestWrap(t *testing.T) {
	face, err := fonts.Face(12, false, 96)
	if err != nil {
		t.Fatal(err)
	}
	defer face.Close()

	width := font.MeasureString(face, "DR. ALPHA BETA")
	lines := wrap(face, "DR. ALPHA BETA GAMMA DELTA", width)
	if len(lines) < 2 {
		t.Fatalf("wrap() = %q, want at least 2 lines", lines)
	}
	if lines[0] != "DR. ALPHA BETA" {
		t.Errorf("first line = %q", lines[0])
	}
	if got := wrap(face, "   ", width); got != nil {
		t.Errorf("blank text should produce no lines, got %q", got)
	}
	if got := wrap(face, "SUPERCALIFRAGILISTIC", fixed.I(1)); len(got) != 1 {
		t.Errorf("overlong word should stay on one line, got %q", got)
	}
}

func TestParseColor(t *testing.T) {
	if got := parseColor("FF8000"); got != (color.RGBA{R: 0xff, G: 0x80, B: 0, A: 0xff}) {
		t.Errorf("parseColor(FF8000) = %v", got)
	}
	if got := parseColor("zz"); got != color.Black {
		t.Errorf("parseColor(zz) = %v, want black", got)
	}
}

func TestRenderPDF(t *testing.T) {
	if _, err := render.ConverterPath(); err != nil {
		t.Skip("LibreOffice not installed")
	}
	d, lib := testDeck(t)
	data, err := RenderPDF(context.Background(), d, lib)
	if err != nil {
		t.Fatalf("RenderPDF() error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}
