package layout

import (
	"fmt"
	"slices"
	"sort"
)

// DefaultPreset is used when no preset is configured.
const DefaultPreset = "revisi"

var presets = map[string]func() Layout{
	"revisi":  revisi,
	"classic": classic,
}

// Presets returns the preset names, sorted.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Preset returns a fresh copy of the named layout.
func Preset(name string) (Layout, error) {
	if name == "" {
		name = DefaultPreset
	}
	build, ok := presets[name]
	if !ok {
		return Layout{}, fmt.Errorf("unknown layout preset %q (available: %v)", name, Presets())
	}
	return build(), nil
}

// Default returns the default preset.
func Default() Layout {
	return revisi()
}

func revisi() Layout {
	field := func(name, text string, left, top, w, h, size float64, align Align) Field {
		return Field{Name: name, Text: text, Left: left, Top: top, Width: w, Height: h, Size: size, Bold: true, Align: align}
	}
	return Layout{
		Preset:     "revisi",
		Units:      Centimeters,
		DPI:        DefaultDPI,
		Font:       "Arial",
		Color:      "000000",
		PageWidth:  25.4,
		PageHeight: 19.05,
		Photo:      Photo{Left: 7.0, Top: 4.85, Width: 5.0, Height: 7.0, Mode: PhotoFit},
		Fields: []Field{
			field("program", "{program}", 4.5, 2.95, 10, 1, 14, AlignCenter),
			field("name", "{name}", 0.2, 14.2, 19, 1, 19, AlignCenter),
			field("student_id", "{student_id}", 4.3, 15.25, 4, 0.8, 14, AlignLeft),
			field("gpa", "{gpa}", 12.5, 15.25, 2, 0.8, 14, AlignLeft),
			field("score", "{score}", 15.6, 15.25, 2, 0.8, 14, AlignLeft),
			field("employer", "{employer}", 5.7, 16.17, 10, 0.8, 12, AlignLeft),
			field("advisor", "{advisor}", 5.7, 16.94, 12, 0.8, 12, AlignLeft),
			field("co_advisors", "{co_advisors}", 5.7, 17.78, 12, 1.5, 12, AlignLeft),
		},
	}
}

func classic() Layout {
	field := func(name, text string, left, top, w, h, size float64) Field {
		return Field{Name: name, Text: text, Left: left, Top: top, Width: w, Height: h, Size: size, Bold: true, Align: AlignLeft}
	}
	return Layout{
		Preset:     "classic",
		Units:      Inches,
		DPI:        DefaultDPI,
		Font:       "Arial",
		Color:      "000000",
		PageWidth:  10,
		PageHeight: 7.5,
		Photo:      Photo{Left: 0.5, Top: 1.5, Width: 2.5, Height: 3.5, Mode: PhotoCenter},
		Fields: []Field{
			field("program", "{program}", 3.5, 2.0, 4, 0.5, 14),
			field("name", "{name}", 3.5, 2.8, 4, 0.6, 19),
			field("student_id", "NIM : {student_id}", 3.5, 3.5, 4, 0.4, 16),
			field("gpa_score", "IPK : {gpa} – TAK : {score}", 3.5, 3.9, 4, 0.4, 16),
			field("advisor", "DOSEN WALI : {advisor}", 3.5, 4.7, 4, 0.4, 14),
			field("co_advisors_label", "DOSEN PEMBIMBING :", 3.5, 5.1, 2.2, 0.4, 14),
			field("co_advisors", "{co_advisors}", 5.7, 5.1, 4, 0.8, 14),
		},
	}
}

// IsPreset reports whether name is a known preset.
func IsPreset(name string) bool {
	return slices.Contains(Presets(), name)
}
