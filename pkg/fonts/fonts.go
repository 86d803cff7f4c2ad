// Package fonts provides the embedded fonts used for raster slide previews.
//
// Office documents name their font ("Arial") and leave rendering to the
// viewer. Previews are drawn by gradslides itself, so they need actual glyph
// outlines. The Go font family ships inside golang.org/x/image and is
// metrically close enough to Arial to judge whether a name overflows its box.
package fonts

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontFamily is the family name of the preview fonts.
const FontFamily = "Go"

// FallbackFontFamily lists families for vector previews, the document's own
// font first.
func FallbackFontFamily(primary string) string {
	return fmt.Sprintf("'%s', Helvetica, 'Liberation Sans', sans-serif", primary)
}

// Parsed fonts are shared; faces are not (a Face is not safe for concurrent
// use), so Face builds a new one per call.
var (
	regular, bold *opentype.Font
	parseErr      error
	parseOnce     sync.Once
)

func parse() {
	regular, parseErr = opentype.Parse(goregular.TTF)
	if parseErr != nil {
		return
	}
	bold, parseErr = opentype.Parse(gobold.TTF)
}

// Face returns a face of the given size in points for rendering at dpi.
// The caller should Close it when done.
func Face(size float64, isBold bool, dpi float64) (font.Face, error) {
	parseOnce.Do(parse)
	if parseErr != nil {
		return nil, fmt.Errorf("parse embedded font: %w", parseErr)
	}
	f := regular
	if isBold {
		f = bold
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
}
