package sink

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strconv"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/gradslides/pkg/fonts"
	"github.com/matzehuels/gradslides/pkg/layout"
	"github.com/matzehuels/gradslides/pkg/slide"
)

// Decoder loads full images for rasterising.
type Decoder interface {
	Decode(path string) (image.Image, error)
}

// PNGOption configures PNG rendering via [RenderPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	dpi    float64
	scaler draw.Scaler
}

// WithPNGDPI sets the raster resolution (default [layout.DefaultDPI]).
func WithPNGDPI(dpi float64) PNGOption { return func(r *pngRenderer) { r.dpi = dpi } }

// WithScaler sets the image resampling kernel (default [draw.ApproxBiLinear]).
func WithScaler(s draw.Scaler) PNGOption { return func(r *pngRenderer) { r.scaler = s } }

// RenderPNG rasterises every slide of d using the embedded preview fonts.
// Text wraps at word boundaries inside its box; overflow is drawn, not
// clipped, so long names stay visible in the preview.
func RenderPNG(d *slide.Deck, src Decoder, opts ...PNGOption) ([][]byte, error) {
	r := pngRenderer{dpi: layout.DefaultDPI, scaler: draw.ApproxBiLinear}
	for _, opt := range opts {
		opt(&r)
	}

	images := map[string]image.Image{}
	out := make([][]byte, 0, len(d.Slides))
	for i, s := range d.Slides {
		b, err := r.render(d, s, src, images)
		if err != nil {
			return nil, fmt.Errorf("png: slide %d: %w", i+1, err)
		}
		out = append(out, b)
	}
	return out, nil
}

func (r pngRenderer) px(emu int64) int {
	return layout.EMUToPixels(emu, r.dpi)
}

func (r pngRenderer) rect(rc layout.Rect) image.Rectangle {
	return image.Rect(r.px(rc.X), r.px(rc.Y), r.px(rc.Right()), r.px(rc.Bottom()))
}

func (r pngRenderer) render(d *slide.Deck, s *slide.Slide, src Decoder, cache map[string]image.Image) ([]byte, error) {
	canvas := image.NewRGBA(image.Rect(0, 0, r.px(d.Width), r.px(d.Height)))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	for _, sh := range s.Shapes {
		switch sh.Kind {
		case slide.KindPicture:
			img, ok := cache[sh.Image]
			if !ok {
				var err error
				if img, err = src.Decode(sh.Image); err != nil {
					return nil, err
				}
				cache[sh.Image] = img
			}
			r.scaler.Scale(canvas, r.rect(sh.Rect), img, img.Bounds(), draw.Over, nil)
		case slide.KindText:
			if err := r.text(canvas, sh); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r pngRenderer) text(dst *image.RGBA, sh slide.Shape) error {
	st := sh.Style
	face, err := fonts.Face(st.Size, st.Bold, r.dpi)
	if err != nil {
		return err
	}
	defer face.Close()

	dr := &font.Drawer{Dst: dst, Src: image.NewUniform(parseColor(st.Color)), Face: face}
	left := r.px(sh.Rect.X + insetX)
	right := r.px(sh.Rect.Right() - insetX)
	width := fixed.I(right - left)

	m := face.Metrics()
	y := fixed.I(r.px(sh.Rect.Y+insetY)) + m.Ascent
	for _, p := range sh.Paragraphs {
		for _, line := range wrap(face, p, width) {
			w := font.MeasureString(face, line)
			x := fixed.I(left)
			switch st.Align {
			case layout.AlignCenter:
				x = fixed.I(left) + (width-w)/2
			case layout.AlignRight:
				x = fixed.I(right) - w
			}
			dr.Dot = fixed.Point26_6{X: x, Y: y}
			dr.DrawString(line)
			y += m.Height
		}
	}
	return nil
}

// wrap breaks s into lines no wider than width. A single word wider than
// width gets a line of its own.
func wrap(face font.Face, s string, width fixed.Int26_6) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		candidate := line + " " + w
		if font.MeasureString(face, candidate) <= width {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = w
	}
	return append(lines, line)
}

func parseColor(hex string) color.Color {
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || len(hex) != 6 {
		return color.Black
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
