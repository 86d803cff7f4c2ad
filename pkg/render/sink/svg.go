package sink

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/matzehuels/gradslides/pkg/fonts"
	"github.com/matzehuels/gradslides/pkg/layout"
	"github.com/matzehuels/gradslides/pkg/slide"
)

// Text box insets used by office applications, in EMU.
const (
	insetX = 91440
	insetY = 45720
)

// lineSpacing is the line height as a multiple of the font size.
const lineSpacing = 1.2

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	dpi    float64
	frames bool
}

// WithSVGDPI sets the preview resolution (default [layout.DefaultDPI]).
func WithSVGDPI(dpi float64) SVGOption { return func(r *svgRenderer) { r.dpi = dpi } }

// WithFrames outlines every text box and the photo, for checking placement.
func WithFrames() SVGOption { return func(r *svgRenderer) { r.frames = true } }

// RenderSVG renders every slide of d as a standalone SVG document with
// images inlined as data URIs. Slide i of the deck is element i of the result.
func RenderSVG(d *slide.Deck, src AssetSource, opts ...SVGOption) ([][]byte, error) {
	r := svgRenderer{dpi: layout.DefaultDPI}
	for _, opt := range opts {
		opt(&r)
	}

	out := make([][]byte, 0, len(d.Slides))
	for i, s := range d.Slides {
		b, err := r.render(d, s, src)
		if err != nil {
			return nil, fmt.Errorf("svg: slide %d: %w", i+1, err)
		}
		out = append(out, b)
	}
	return out, nil
}

func (r svgRenderer) px(emu int64) float64 {
	return float64(emu) * r.dpi / layout.EMUPerInch
}

func (r svgRenderer) render(d *slide.Deck, s *slide.Slide, src AssetSource) ([]byte, error) {
	w, h := r.px(d.Width), r.px(d.Height)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n", w, h, w, h)
	if s.Title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", esc(s.Title))
	}
	fmt.Fprintf(&buf, `  <rect width="%.1f" height="%.1f" fill="#ffffff"/>`+"\n", w, h)

	for _, sh := range s.Shapes {
		switch sh.Kind {
		case slide.KindPicture:
			a, err := src.Asset(sh.Image)
			if err != nil {
				return nil, err
			}
			fmt.Fprintf(&buf, `  <image x="%.1f" y="%.1f" width="%.1f" height="%.1f" preserveAspectRatio="none" href="data:%s;base64,%s"/>`+"\n",
				r.px(sh.Rect.X), r.px(sh.Rect.Y), r.px(sh.Rect.W), r.px(sh.Rect.H),
				a.ContentType, base64.StdEncoding.EncodeToString(a.Data))
			if r.frames && sh.Name == slide.RolePhoto {
				r.frame(&buf, sh.Rect)
			}
		case slide.KindText:
			r.text(&buf, sh)
			if r.frames {
				r.frame(&buf, sh.Rect)
			}
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func (r svgRenderer) frame(buf *bytes.Buffer, rect layout.Rect) {
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#ff00ff" stroke-dasharray="4 2"/>`+"\n",
		r.px(rect.X), r.px(rect.Y), r.px(rect.W), r.px(rect.H))
}

func (r svgRenderer) text(buf *bytes.Buffer, sh slide.Shape) {
	st := sh.Style
	size := st.Size * r.dpi / 72

	x, anchor := r.px(sh.Rect.X+insetX), "start"
	switch st.Align {
	case layout.AlignCenter:
		x, anchor = r.px(sh.Rect.X+sh.Rect.W/2), "middle"
	case layout.AlignRight:
		x, anchor = r.px(sh.Rect.Right()-insetX), "end"
	}

	weight := "normal"
	if st.Bold {
		weight = "bold"
	}
	color := st.Color
	if color == "" {
		color = "000000"
	}

	fmt.Fprintf(buf, `  <text font-family="%s" font-size="%.1f" font-weight="%s" fill="#%s" text-anchor="%s">`+"\n",
		esc(fonts.FallbackFontFamily(st.Font)), size, weight, color, anchor)
	y := r.px(sh.Rect.Y+insetY) + size
	for _, p := range sh.Paragraphs {
		fmt.Fprintf(buf, `    <tspan x="%.1f" y="%.1f">%s</tspan>`+"\n", x, y, esc(p))
		y += size * lineSpacing
	}
	buf.WriteString("  </text>\n")
}
