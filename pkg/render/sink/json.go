package sink

import (
	"encoding/json"

	"github.com/matzehuels/gradslides/pkg/slide"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	partition string
	generator string
}

// WithJSONPartition records the partition name ("morning/CS/L") in the output.
func WithJSONPartition(name string) JSONOption { return func(r *jsonRenderer) { r.partition = name } }

// WithJSONGenerator records the producing program and version.
func WithJSONGenerator(g string) JSONOption { return func(r *jsonRenderer) { r.generator = g } }

type jsonOutput struct {
	Generator string         `json:"generator,omitempty"`
	Partition string         `json:"partition,omitempty"`
	Title     string         `json:"title,omitempty"`
	Width     int64          `json:"width"`
	Height    int64          `json:"height"`
	Slides    []*slide.Slide `json:"slides"`
}

// RenderJSON exports the deck geometry as a pretty-printed JSON document:
// page size in EMU and every shape with its position, image path and text.
//
// The output is meant for layout checks and tests; it carries no image data.
func RenderJSON(d *slide.Deck, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	slides := d.Slides
	if slides == nil {
		slides = []*slide.Slide{}
	}
	out := jsonOutput{
		Generator: r.generator,
		Partition: r.partition,
		Title:     d.Title,
		Width:     d.Width,
		Height:    d.Height,
		Slides:    slides,
	}
	return json.MarshalIndent(out, "", "  ")
}
