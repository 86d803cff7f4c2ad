// Package layout describes where things go on a graduation slide.
//
// A [Layout] holds the photo frame and a list of text fields, each with a
// rectangle, a font size, weight and alignment. Coordinates are given in the
// layout's [Unit] (centimetres or inches) and converted to EMU on use.
//
// Field text is a template. Placeholders in braces are replaced with the
// graduate's values:
//
//	{program} {name} {student_id} {gpa} {score}
//	{advisor} {employer} {co_advisors}
//
// A field that references placeholders is skipped when all of them are
// blank. A field without placeholders is a static label drawn on every
// slide. A field referencing {co_advisors} renders one paragraph per
// non-blank co-advisor.
//
// Two presets ship with the tool: "revisi", the current centimetre layout
// with one box per value, and "classic", the earlier inch layout with inline
// labels such as "NIM : ...".
package layout

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strings"
)

// Unit is the length unit of a layout's coordinates.
type Unit string

const (
	Centimeters Unit = "cm"
	Inches      Unit = "in"
)

// EMU converts v in unit u to EMU.
func (u Unit) EMU(v float64) int64 {
	if u == Inches {
		return int64(math.Round(v * EMUPerInch))
	}
	return int64(math.Round(v * EMUPerCm))
}

// PhotoMode selects how a photo is placed in its frame.
type PhotoMode string

const (
	// PhotoFit scales the photo to fit the frame, preserving aspect ratio.
	PhotoFit PhotoMode = "fit"
	// PhotoCenter keeps the photo's native size and centres it, fitting
	// instead when it would overflow.
	PhotoCenter PhotoMode = "center"
)

// Align is the horizontal alignment of a text field.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Placeholders usable in field text.
const (
	Program    = "program"
	Name       = "name"
	StudentID  = "student_id"
	GPA        = "gpa"
	Score      = "score"
	Advisor    = "advisor"
	Employer   = "employer"
	CoAdvisors = "co_advisors"
)

// Known lists every placeholder name.
var Known = []string{Program, Name, StudentID, GPA, Score, Advisor, Employer, CoAdvisors}

// Photo is the frame a graduate's photo is placed in.
type Photo struct {
	Left   float64   `toml:"left" json:"left" validate:"gte=0"`
	Top    float64   `toml:"top" json:"top" validate:"gte=0"`
	Width  float64   `toml:"width" json:"width" validate:"gt=0"`
	Height float64   `toml:"height" json:"height" validate:"gt=0"`
	Mode   PhotoMode `toml:"mode" json:"mode" validate:"oneof=fit center"`
}

// Field is one text box.
type Field struct {
	Name   string  `toml:"name" json:"name" validate:"required"`
	Text   string  `toml:"text" json:"text" validate:"required"`
	Left   float64 `toml:"left" json:"left" validate:"gte=0"`
	Top    float64 `toml:"top" json:"top" validate:"gte=0"`
	Width  float64 `toml:"width" json:"width" validate:"gt=0"`
	Height float64 `toml:"height" json:"height" validate:"gt=0"`
	Size   float64 `toml:"size" json:"size" validate:"gt=0"` // points
	Bold   bool    `toml:"bold" json:"bold"`
	Align  Align   `toml:"align" json:"align" validate:"omitempty,oneof=left center right"`
}

// Layout is the complete slide geometry and text style.
type Layout struct {
	Preset     string  `toml:"preset" json:"preset"`
	Units      Unit    `toml:"units" json:"units" validate:"oneof=cm in"`
	DPI        float64 `toml:"dpi" json:"dpi" validate:"gt=0"`
	Font       string  `toml:"font" json:"font" validate:"required"`
	Color      string  `toml:"color" json:"color" validate:"len=6,hexadecimal"`
	PageWidth  float64 `toml:"page_width" json:"page_width" validate:"gt=0"`
	PageHeight float64 `toml:"page_height" json:"page_height" validate:"gt=0"`
	Photo      Photo   `toml:"photo" json:"photo"`
	Fields     []Field `toml:"fields" json:"fields" validate:"dive"`
}

// Frame returns the photo frame in EMU.
func (l Layout) Frame() Rect {
	u := l.Units
	return Rect{X: u.EMU(l.Photo.Left), Y: u.EMU(l.Photo.Top), W: u.EMU(l.Photo.Width), H: u.EMU(l.Photo.Height)}
}

// Page returns the page size used when no background dictates one.
func (l Layout) Page() (w, h int64) {
	return l.Units.EMU(l.PageWidth), l.Units.EMU(l.PageHeight)
}

// Rect returns the field's box in EMU for unit u.
func (f Field) Rect(u Unit) Rect {
	return Rect{X: u.EMU(f.Left), Y: u.EMU(f.Top), W: u.EMU(f.Width), H: u.EMU(f.Height)}
}

// Field returns the field named name.
func (l Layout) Field(name string) (Field, bool) {
	for _, f := range l.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Check reports problems the struct tags cannot express: duplicate field
// names and unknown placeholders.
func (l Layout) Check() error {
	seen := make(map[string]bool, len(l.Fields))
	for _, f := range l.Fields {
		if seen[f.Name] {
			return fmt.Errorf("layout: duplicate field %q", f.Name)
		}
		seen[f.Name] = true
		for _, p := range f.Placeholders() {
			if !slices.Contains(Known, p) {
				return fmt.Errorf("layout: field %q: unknown placeholder {%s}", f.Name, p)
			}
		}
	}
	return nil
}

var placeholderRE = regexp.MustCompile(`\{([a-z0-9_]+)\}`)

// Placeholders returns the placeholder names referenced by f, in order.
func (f Field) Placeholders() []string {
	var out []string
	for _, m := range placeholderRE.FindAllStringSubmatch(f.Text, -1) {
		out = append(out, m[1])
	}
	return out
}

// IsStatic reports whether f has no placeholders.
func (f Field) IsStatic() bool { return len(f.Placeholders()) == 0 }

// Values are the texts substituted into field templates.
type Values struct {
	Scalars    map[string]string
	CoAdvisors []string
}

// Render expands f with v and returns the paragraphs to draw. The second
// result is false when the field should be skipped.
func (f Field) Render(v Values) ([]string, bool) {
	names := f.Placeholders()
	if len(names) == 0 {
		return []string{f.Text}, true
	}

	expand := func(co string) string {
		return placeholderRE.ReplaceAllStringFunc(f.Text, func(m string) string {
			name := m[1 : len(m)-1]
			if name == CoAdvisors {
				return co
			}
			return clean(v.Scalars[name])
		})
	}

	if slices.Contains(names, CoAdvisors) {
		var out []string
		for _, co := range v.CoAdvisors {
			if co = clean(co); co != "" {
				out = append(out, expand(co))
			}
		}
		return out, len(out) > 0
	}

	for _, name := range names {
		if clean(v.Scalars[name]) != "" {
			return []string{expand("")}, true
		}
	}
	return nil, false
}

func clean(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "nan") {
		return ""
	}
	return s
}
