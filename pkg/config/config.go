// Package config loads and saves gradslides.toml.
//
// The file holds everything a ceremony needs: input tables, template and
// photo locations, the slide layout, output formats and the test-mode
// switch. A missing file is created with defaults on first use; a file
// that does not parse is ignored with a warning so a typo never blocks
// a rehearsal.
//
// Example:
//
//	test_mode = false
//	output_dir = "output"
//	photos_dir = "photos"
//	formats = ["pptx"]
//
//	[[inputs]]
//	path = "wisuda_pagi.xlsx"
//	session = "morning"
//
//	[templates]
//	cumlaude = "templates/bg_cumlaude.png"
//
//	[layout]
//	preset = "classic"
//	dpi = 150
package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gradslides/pkg/deck"
	"github.com/matzehuels/gradslides/pkg/errors"
	"github.com/matzehuels/gradslides/pkg/honors"
	"github.com/matzehuels/gradslides/pkg/observability"
	"github.com/matzehuels/gradslides/pkg/partition"
	"github.com/matzehuels/gradslides/pkg/roster"
)

// DefaultFile is the configuration file name looked up in the working
// directory.
const DefaultFile = "gradslides.toml"

// Config mirrors gradslides.toml.
type Config struct {
	TestMode     bool     `toml:"test_mode"`
	OutputDir    string   `toml:"output_dir" validate:"required"`
	PhotosDir    string   `toml:"photos_dir"`
	PhotoPattern string   `toml:"photo_pattern,omitempty" validate:"omitempty,contains=%s"`
	Structure    string   `toml:"structure" validate:"oneof=nested flat"`
	Formats      []string `toml:"formats" validate:"min=1,dive,oneof=pptx json svg png pdf"`
	Jobs         int      `toml:"jobs" validate:"gte=1,lte=64"`
	Employers    string   `toml:"employers,omitempty"`

	Inputs    []Input      `toml:"inputs" validate:"dive"`
	Templates Templates    `toml:"templates"`
	Sessions  Sessions     `toml:"sessions"`
	Layout    LayoutConfig `toml:"layout"`
	Sample    Sample       `toml:"sample"`
}

// Input is one student table.
type Input struct {
	Path    string `toml:"path" validate:"required"`
	Session string `toml:"session,omitempty" validate:"omitempty,session"`
}

// Templates are the background images per honors tier.
type Templates struct {
	None     string `toml:"none"`
	Cumlaude string `toml:"cumlaude"`
	Summa    string `toml:"summa"`
}

// Sessions are the output folder names per session.
type Sessions struct {
	Morning   string `toml:"morning"`
	Afternoon string `toml:"afternoon"`
}

// Sample is the record rendered in test mode.
type Sample struct {
	Program    string   `toml:"program"`
	FullName   string   `toml:"full_name"`
	StudentID  string   `toml:"student_id"`
	GPA        string   `toml:"gpa"`
	Score      string   `toml:"score"`
	Advisor    string   `toml:"advisor"`
	CoAdvisors []string `toml:"co_advisors" validate:"max=2"`
	Honors     string   `toml:"honors"`
	SeatCode   string   `toml:"seat_code"`
}

// Default returns the configuration written on first run. It reproduces
// the ceremony layout: one table per session, one background per tier.
func Default() Config {
	s := roster.Sample()
	return Config{
		OutputDir: deck.DefaultOutputDir,
		PhotosDir: "photos",
		Structure: string(partition.Nested),
		Formats:   []string{deck.FormatPPTX},
		Jobs:      deck.DefaultJobs,
		Inputs: []Input{
			{Path: "wisuda_pagi.xlsx", Session: roster.Morning.String()},
			{Path: "wisuda_siang.xlsx", Session: roster.Afternoon.String()},
		},
		Templates: Templates{
			None:     "templates/bg_non_predikat.png",
			Cumlaude: "templates/bg_cumlaude.png",
			Summa:    "templates/bg_summa.png",
		},
		Sessions: Sessions{
			Morning:   deck.DefaultSessionLabels[roster.Morning],
			Afternoon: deck.DefaultSessionLabels[roster.Afternoon],
		},
		Layout: LayoutConfig{Preset: "revisi"},
		Sample: Sample{
			Program:    s.Program,
			FullName:   s.FullName,
			StudentID:  s.StudentID,
			GPA:        s.GPA,
			Score:      s.Score,
			Advisor:    s.Advisor,
			CoAdvisors: s.CoAdvisors,
			Honors:     s.Honors,
			SeatCode:   s.SeatCode,
		},
	}
}

// Load reads the configuration at path.
//
// A missing file is created with [Default] values. A file that cannot be
// decoded yields the defaults and a warning. A file that decodes but fails
// validation is an error: its author meant something, and guessing would
// produce the wrong slides.
func Load(path string) (*Config, []observability.Warning, error) {
	var warnings []observability.Warning
	warn := func(format string, args ...any) {
		warnings = append(warnings, observability.Warning{Source: "config", Subject: path, Message: fmt.Sprintf(format, args...)})
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		if err := Save(path, cfg); err != nil {
			warn("could not create default configuration: %v", err)
		} else {
			warn("created with default values")
		}
		return &cfg, warnings, nil
	case err != nil:
		warn("unreadable, using defaults: %v", err)
		return &cfg, warnings, nil
	}

	var loaded Config
	if _, err := toml.Decode(string(data), &loaded); err != nil {
		warn("malformed, using defaults: %v", err)
		return &cfg, warnings, nil
	}
	cfg = merge(cfg, loaded)

	if err := cfg.Validate(); err != nil {
		return nil, warnings, err
	}
	return &cfg, warnings, nil
}

// merge overlays the keys present in loaded onto base. Lists replace the
// defaults wholesale.
func merge(base, loaded Config) Config {
	out := base
	out.TestMode = loaded.TestMode
	setString(&out.OutputDir, loaded.OutputDir)
	setString(&out.PhotosDir, loaded.PhotosDir)
	setString(&out.PhotoPattern, loaded.PhotoPattern)
	setString(&out.Structure, loaded.Structure)
	setString(&out.Employers, loaded.Employers)
	if len(loaded.Formats) > 0 {
		out.Formats = loaded.Formats
	}
	if loaded.Jobs != 0 {
		out.Jobs = loaded.Jobs
	}
	if loaded.Inputs != nil {
		out.Inputs = loaded.Inputs
	}
	setString(&out.Templates.None, loaded.Templates.None)
	setString(&out.Templates.Cumlaude, loaded.Templates.Cumlaude)
	setString(&out.Templates.Summa, loaded.Templates.Summa)
	setString(&out.Sessions.Morning, loaded.Sessions.Morning)
	setString(&out.Sessions.Afternoon, loaded.Sessions.Afternoon)
	if !loaded.Layout.isZero() {
		out.Layout = loaded.Layout
	}
	if loaded.Sample.StudentID != "" || loaded.Sample.FullName != "" {
		out.Sample = loaded.Sample
	}
	return out
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Save writes cfg to path as TOML, creating parent directories.
func Save(path string, cfg Config) error {
	data, err := Encode(cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode configuration")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeWriteFailed, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "write %s", path)
	}
	return nil
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# gradslides configuration\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TemplateMap returns the templates keyed by tier.
func (c Config) TemplateMap() map[honors.TemplateID]string {
	return map[honors.TemplateID]string{
		honors.TemplateNone:     c.Templates.None,
		honors.TemplateCumlaude: c.Templates.Cumlaude,
		honors.TemplateSumma:    c.Templates.Summa,
	}
}

// SampleRecord converts the sample to a roster record.
func (c Config) SampleRecord() roster.Record {
	s := c.Sample
	var co []string
	for _, v := range s.CoAdvisors {
		if !roster.Blank(v) {
			co = append(co, v)
		}
	}
	return roster.Record{
		Program:    s.Program,
		FullName:   s.FullName,
		StudentID:  s.StudentID,
		GPA:        roster.FormatGPA(s.GPA),
		Score:      roster.FormatScore(s.Score),
		Advisor:    s.Advisor,
		CoAdvisors: co,
		Honors:     s.Honors,
		SeatCode:   s.SeatCode,
		Session:    roster.Morning,
	}
}

// Options converts the configuration into pipeline options.
func (c Config) Options() (deck.Options, error) {
	l, err := c.Layout.Resolve()
	if err != nil {
		return deck.Options{}, err
	}
	inputs := make([]deck.Input, 0, len(c.Inputs))
	for _, in := range c.Inputs {
		s := roster.SessionUnknown
		if in.Session != "" {
			if s, err = roster.ParseSession(in.Session); err != nil {
				return deck.Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "input %s", in.Path)
			}
		}
		inputs = append(inputs, deck.Input{Path: in.Path, Session: s})
	}
	return deck.Options{
		Inputs:       inputs,
		Employers:    c.Employers,
		PhotosDir:    c.PhotosDir,
		PhotoPattern: c.PhotoPattern,
		Templates:    c.TemplateMap(),
		Layout:       l,
		Structure:    partition.Structure(c.Structure),
		Formats:      c.Formats,
		OutputDir:    c.OutputDir,
		SessionLabels: map[roster.Session]string{
			roster.Morning:   c.Sessions.Morning,
			roster.Afternoon: c.Sessions.Afternoon,
		},
		TestMode: c.TestMode,
		Sample:   c.SampleRecord(),
		Jobs:     c.Jobs,
	}, nil
}
