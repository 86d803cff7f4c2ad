package slide

import (
	stderrors "errors"
	"fmt"
	"io/fs"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/matzehuels/gradslides/pkg/honors"
	"github.com/matzehuels/gradslides/pkg/layout"
	"github.com/matzehuels/gradslides/pkg/lookup"
	"github.com/matzehuels/gradslides/pkg/media"
	"github.com/matzehuels/gradslides/pkg/observability"
	"github.com/matzehuels/gradslides/pkg/roster"
)

// Composer builds one slide per graduate.
//
// A Composer holds no per-slide state and may be shared between
// goroutines as long as Media is safe for concurrent use.
type Composer struct {
	Layout    layout.Layout
	Templates map[honors.TemplateID]string // background image per template
	Media     media.Prober

	// Warn receives recoverable problems: a missing template, an
	// unreadable photo. Nil discards them.
	Warn func(observability.Warning)
}

// TemplatePath returns the background path for rec's honors tier.
func (c *Composer) TemplatePath(rec roster.Record) string {
	return c.Templates[honors.TemplateFor(rec.Tier())]
}

// PageSize returns the page size for a deck whose first slide shows rec:
// the background's pixel size at the layout DPI, or the layout's page when
// the background cannot be read.
func (c *Composer) PageSize(rec roster.Record) (w, h int64) {
	if path := c.TemplatePath(rec); path != "" && c.Media != nil {
		if info, err := c.Media.Probe(path); err == nil {
			return layout.PixelsToEMU(info.Width, c.Layout.DPI), layout.PixelsToEMU(info.Height, c.Layout.DPI)
		}
	}
	return c.Layout.Page()
}

// Compose appends rec's slide to t.
//
// The background is chosen by honors tier and placed at the origin at its
// native size. The photo, when present, goes into the layout frame. Each
// layout field is rendered upper-cased; fields whose values are blank are
// left out.
func (c *Composer) Compose(t Target, rec roster.Record, photo lookup.Option[string], employer lookup.Option[string]) error {
	if t == nil {
		return fmt.Errorf("compose %s: nil target", rec.Label())
	}
	if c.Media == nil {
		return fmt.Errorf("compose %s: no media prober", rec.Label())
	}

	s := &Slide{StudentID: rec.StudentID, Title: rec.FullName}

	if bg, ok := c.background(rec); ok {
		s.Shapes = append(s.Shapes, bg)
	}
	if path, ok := photo.Get(); ok {
		if pic, ok := c.photo(rec, path); ok {
			s.Shapes = append(s.Shapes, pic)
		}
	}
	s.Shapes = append(s.Shapes, c.texts(rec, employer)...)

	t.AddSlide(s)
	return nil
}

func (c *Composer) warn(subject, format string, args ...any) {
	if c.Warn == nil {
		return
	}
	c.Warn(observability.Warning{Source: "slide", Subject: subject, Message: fmt.Sprintf(format, args...)})
}

func (c *Composer) background(rec roster.Record) (Shape, bool) {
	id := honors.TemplateFor(rec.Tier())
	path := c.Templates[id]
	if path == "" {
		c.warn(rec.Label(), "no %s template configured", id)
		return Shape{}, false
	}
	info, err := c.Media.Probe(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			c.warn(rec.Label(), "template %s not found", path)
		} else {
			c.warn(rec.Label(), "template unreadable: %v", err)
		}
		return Shape{}, false
	}
	dpi := c.Layout.DPI
	return Shape{
		Kind:  KindPicture,
		Name:  RoleBackground,
		Image: path,
		Rect:  layout.Rect{W: layout.PixelsToEMU(info.Width, dpi), H: layout.PixelsToEMU(info.Height, dpi)},
	}, true
}

func (c *Composer) photo(rec roster.Record, path string) (Shape, bool) {
	info, err := c.Media.Probe(path)
	if err != nil {
		c.warn(rec.Label(), "photo unreadable: %v", err)
		return Shape{}, false
	}
	return Shape{
		Kind:  KindPicture,
		Name:  RolePhoto,
		Image: path,
		Rect:  layout.Place(c.Layout.Photo.Mode, c.Layout.Frame(), info.Width, info.Height, c.Layout.DPI),
	}, true
}

func (c *Composer) texts(rec roster.Record, employer lookup.Option[string]) []Shape {
	values := layout.Values{
		Scalars: map[string]string{
			layout.Program:   rec.Program,
			layout.Name:      rec.FullName,
			layout.StudentID: rec.StudentID,
			layout.GPA:       rec.GPA,
			layout.Score:     rec.Score,
			layout.Advisor:   rec.Advisor,
			layout.Employer:  employer.OrElse(""),
		},
		CoAdvisors: rec.CoAdvisors,
	}

	upper := cases.Upper(language.Und)
	var out []Shape
	for _, f := range c.Layout.Fields {
		paras, ok := f.Render(values)
		if !ok {
			continue
		}
		for i, p := range paras {
			paras[i] = upper.String(p)
		}
		align := f.Align
		if align == "" {
			align = layout.AlignLeft
		}
		out = append(out, Shape{
			Kind:       KindText,
			Name:       f.Name,
			Rect:       f.Rect(c.Layout.Units),
			Paragraphs: paras,
			Style: TextStyle{
				Font:  c.Layout.Font,
				Size:  f.Size,
				Bold:  f.Bold,
				Color: c.Layout.Color,
				Align: align,
			},
		})
	}
	return out
}
