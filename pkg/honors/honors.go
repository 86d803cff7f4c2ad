// Package honors classifies free-text graduation honors into tiers.
//
// The classification is a substring rule applied to the lower-cased,
// trimmed text:
//
//   - contains "summa" and "cumlaude": [SummaCumlaude]
//   - contains "cumlaude" but not "summa": [Cumlaude]
//   - anything else, including blank text: [None]
//
// The match is literal: "Cum Laude" with a space is not a Cumlaude.
//
// Each tier carries a sort priority (lower sorts first) and a template
// identifier used to pick the slide background.
package honors

import (
	"fmt"
	"strings"
)

// Tier is a graduate's distinction level.
type Tier int

const (
	None Tier = iota
	Cumlaude
	SummaCumlaude
)

// TemplateID names a background template. Config files key template paths
// by these values.
type TemplateID string

const (
	TemplateNone     TemplateID = "none"
	TemplateCumlaude TemplateID = "cumlaude"
	TemplateSumma    TemplateID = "summa"
)

// Templates lists every template identifier in tier order.
var Templates = []TemplateID{TemplateNone, TemplateCumlaude, TemplateSumma}

// Classify maps honors text to a tier.
func Classify(text string) Tier {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return None
	}
	summa := strings.Contains(s, "summa")
	cum := strings.Contains(s, "cumlaude")
	switch {
	case summa && cum:
		return SummaCumlaude
	case cum:
		return Cumlaude
	default:
		return None
	}
}

// Priority returns the sort priority of t: SummaCumlaude=1, Cumlaude=2,
// None=3.
func Priority(t Tier) int {
	switch t {
	case SummaCumlaude:
		return 1
	case Cumlaude:
		return 2
	default:
		return 3
	}
}

// TemplateFor returns the background template for t.
func TemplateFor(t Tier) TemplateID {
	switch t {
	case SummaCumlaude:
		return TemplateSumma
	case Cumlaude:
		return TemplateCumlaude
	default:
		return TemplateNone
	}
}

// ParseTemplateID validates a template identifier from configuration.
func ParseTemplateID(s string) (TemplateID, error) {
	id := TemplateID(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Templates {
		if id == known {
			return id, nil
		}
	}
	return "", fmt.Errorf("unknown template %q (must be one of: none, cumlaude, summa)", s)
}

func (t Tier) String() string {
	switch t {
	case SummaCumlaude:
		return "SUMMA CUMLAUDE"
	case Cumlaude:
		return "CUMLAUDE"
	default:
		return "Non Predikat"
	}
}
