// Package deck assembles graduation slide decks from student tables.
//
// This package implements the complete load → partition → compose → save
// pipeline. The CLI is a thin layer over it; tests drive it directly.
//
// # Architecture
//
// A run has four stages:
//
//  1. Load: read every input table into roster records (see [LoadInputs])
//  2. Partition: split records by session, summa status, program and side
//  3. Compose: build one slide per record, looking up photo and employer
//  4. Save: write every partition in each requested format
//
// Documents are written only after all of their slides are composed.
//
// # Usage
//
//	runner := deck.NewRunner(logger, nil)
//	opts := deck.Options{
//	    Inputs:    []deck.Input{{Path: "pagi.xlsx", Session: roster.Morning}},
//	    PhotosDir: "photos",
//	    Templates: map[honors.TemplateID]string{...},
//	    Layout:    layout.Default(),
//	}
//	result, err := runner.Run(ctx, opts)
//
// # Output Layout
//
// Nested structure (the default):
//
//	<out>/<session folder>/summa/summa.pptx
//	<out>/<session folder>/<Program>/duduk_<side>.pptx
//
// Flat structure:
//
//	<out>/<session folder>/<Program>.pptx
//
// Test mode renders the sample record alone to <out>/Test/TEST_POSITION.pptx.
// Every run also writes <out>/manifest.json.
package deck

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/gradslides/pkg/errors"
	"github.com/matzehuels/gradslides/pkg/honors"
	"github.com/matzehuels/gradslides/pkg/layout"
	"github.com/matzehuels/gradslides/pkg/partition"
	"github.com/matzehuels/gradslides/pkg/roster"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultOutputDir is the output root when none is configured.
	DefaultOutputDir = "output"

	// DefaultJobs renders partitions one at a time.
	DefaultJobs = 1

	// ManifestFile is written to the output root after every run.
	ManifestFile = "manifest.json"
)

// Fixed output names.
const (
	TestFolder  = "Test"
	TestStem    = "TEST_POSITION"
	SummaFolder = "summa"
	SummaStem   = "summa"
	SidePrefix  = "duduk_"
)

// DefaultSessionLabels are the session folder names.
var DefaultSessionLabels = map[roster.Session]string{
	roster.Morning:   "Wisuda Pagi",
	roster.Afternoon: "Wisuda Siang",
}

// Format constants for output formats.
const (
	FormatPPTX = "pptx"
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPPTX: true,
	FormatJSON: true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
}

// =============================================================================
// Options
// =============================================================================

// Input is one student table.
type Input struct {
	Path string `json:"path"`

	// Session applies to rows without a usable SESSION cell. Unknown means
	// the table must carry the column.
	Session roster.Session `json:"session"`
}

// Options contains all configuration for a run.
type Options struct {
	Inputs    []Input `json:"inputs,omitempty"`
	Employers string  `json:"employers,omitempty"` // optional employer table

	PhotosDir    string                       `json:"photos_dir"`
	PhotoPattern string                       `json:"photo_pattern,omitempty"`
	Templates    map[honors.TemplateID]string `json:"templates"`
	Layout       layout.Layout                `json:"layout"`

	Structure     partition.Structure       `json:"structure"`
	Formats       []string                  `json:"formats"`
	OutputDir     string                    `json:"output_dir"`
	SessionLabels map[roster.Session]string `json:"session_labels,omitempty"`

	TestMode bool          `json:"test_mode"`
	Sample   roster.Record `json:"sample"`

	Jobs int `json:"jobs"`

	validated bool
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// Calling it more than once is harmless.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.OutputDir == "" {
		o.OutputDir = DefaultOutputDir
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPPTX}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Structure == "" {
		o.Structure = partition.Nested
	}
	if _, err := partition.ParseStructure(string(o.Structure)); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "structure")
	}
	if o.Jobs <= 0 {
		o.Jobs = DefaultJobs
	}
	if o.Layout.Preset == "" && len(o.Layout.Fields) == 0 {
		o.Layout = layout.Default()
	}
	if err := o.Layout.Check(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "layout")
	}
	labels := maps.Clone(DefaultSessionLabels)
	for s, l := range o.SessionLabels {
		if strings.TrimSpace(l) != "" {
			labels[s] = l
		}
	}
	o.SessionLabels = labels
	o.validated = true
	return nil
}

// SessionFolder returns the folder name for s.
func (o Options) SessionFolder(s roster.Session) string {
	if l, ok := o.SessionLabels[s]; ok && l != "" {
		return l
	}
	if l, ok := DefaultSessionLabels[s]; ok {
		return l
	}
	return s.String()
}

// ValidateFormat checks a single output format (case-sensitive).
func ValidateFormat(f string) error {
	if !ValidFormats[f] {
		return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (must be %s)", f, strings.Join(formatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks every format in fs.
func ValidateFormats(fs []string) error {
	for _, f := range fs {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

func formatNames() []string {
	return slices.Sorted(maps.Keys(ValidFormats))
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) ([]string, error) {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || slices.Contains(out, f) {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no formats given")
	}
	return out, nil
}
