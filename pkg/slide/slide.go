// Package slide builds the in-memory slide documents that sinks write out.
//
// A [Deck] is a page size plus an ordered list of [Slide] values. Each slide
// is a flat list of shapes drawn in order: pictures (the background and the
// photo) and text boxes. Geometry is in EMU, the unit office documents use.
//
// The [Composer] turns one graduate record into one slide according to a
// [layout.Layout].
package slide

import (
	"github.com/matzehuels/gradslides/pkg/layout"
)

// ShapeKind distinguishes pictures from text boxes.
type ShapeKind string

const (
	KindPicture ShapeKind = "picture"
	KindText    ShapeKind = "text"
)

// Picture roles.
const (
	RoleBackground = "background"
	RolePhoto      = "photo"
)

// TextStyle is the run formatting of a text box.
type TextStyle struct {
	Font  string       `json:"font"`
	Size  float64      `json:"size"` // points
	Bold  bool         `json:"bold"`
	Color string       `json:"color"` // RRGGBB
	Align layout.Align `json:"align"`
}

// Shape is a picture or a text box.
type Shape struct {
	Kind ShapeKind   `json:"kind"`
	Name string      `json:"name"` // picture role or layout field name
	Rect layout.Rect `json:"rect"`

	// Pictures
	Image string `json:"image,omitempty"`

	// Text boxes
	Paragraphs []string  `json:"paragraphs,omitempty"`
	Style      TextStyle `json:"style,omitzero"`
}

// Slide is one page.
type Slide struct {
	StudentID string  `json:"student_id,omitempty"`
	Title     string  `json:"title,omitempty"`
	Shapes    []Shape `json:"shapes"`
}

// Picture returns the first picture with the given role.
func (s *Slide) Picture(role string) (Shape, bool) {
	for _, sh := range s.Shapes {
		if sh.Kind == KindPicture && sh.Name == role {
			return sh, true
		}
	}
	return Shape{}, false
}

// Text returns the text box for the named layout field.
func (s *Slide) Text(name string) (Shape, bool) {
	for _, sh := range s.Shapes {
		if sh.Kind == KindText && sh.Name == name {
			return sh, true
		}
	}
	return Shape{}, false
}

// Target receives composed slides.
type Target interface {
	AddSlide(s *Slide)
}

// Deck is an ordered list of slides sharing a page size.
type Deck struct {
	Title  string   `json:"title,omitempty"`
	Width  int64    `json:"width"`
	Height int64    `json:"height"`
	Slides []*Slide `json:"slides"`
}

// NewDeck creates an empty deck with the given page size.
func NewDeck(title string, width, height int64) *Deck {
	return &Deck{Title: title, Width: width, Height: height}
}

// AddSlide appends s.
func (d *Deck) AddSlide(s *Slide) {
	d.Slides = append(d.Slides, s)
}

// Len returns the number of slides.
func (d *Deck) Len() int { return len(d.Slides) }

// Images returns every distinct picture path in first-use order.
func (d *Deck) Images() []string {
	var out []string
	seen := make(map[string]bool)
	for _, s := range d.Slides {
		for _, sh := range s.Shapes {
			if sh.Kind == KindPicture && !seen[sh.Image] {
				seen[sh.Image] = true
				out = append(out, sh.Image)
			}
		}
	}
	return out
}
