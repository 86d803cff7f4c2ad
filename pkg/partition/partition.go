// Package partition groups graduate records into the documents that are
// shown during the ceremony and orders each group for presentation.
//
// # Nested structure
//
// The default [Nested] structure mirrors how graduates walk on stage:
//
//  1. Records are split by session, morning first.
//  2. Summa cumlaude graduates of a session form one summa partition across
//     all programs, ordered by seat.
//  3. Everyone else is grouped by program in order of first appearance.
//     Records with a blank program are dropped with a warning.
//  4. Each program is split by seat side. Sides are ordered L, R, then
//     any others alphabetically; malformed seat codes land on side "Z".
//  5. A side partition is ordered by honors priority, then by seat, so
//     cumlaude graduates come before the rest.
//
// # Flat structure
//
// The [Flat] structure produces one partition per session and program with
// every tier included, ordered by seat only.
//
// All sorting is stable: records with equal keys keep their source order.
// Every record with a non-blank program ends up in exactly one partition.
package partition

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/gradslides/pkg/honors"
	"github.com/matzehuels/gradslides/pkg/observability"
	"github.com/matzehuels/gradslides/pkg/roster"
	"github.com/matzehuels/gradslides/pkg/seat"
)

// Kind distinguishes summa partitions from program partitions.
type Kind string

const (
	KindSumma   Kind = "summa"
	KindProgram Kind = "program"
)

// Structure selects how records are grouped.
type Structure string

const (
	Nested Structure = "nested"
	Flat   Structure = "flat"
)

// Structures lists the valid structures.
var Structures = []Structure{Nested, Flat}

// ParseStructure validates a structure name.
func ParseStructure(s string) (Structure, error) {
	v := Structure(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Structures, v) {
		return v, nil
	}
	return "", fmt.Errorf("unknown structure %q (must be nested or flat)", s)
}

// Partition is one output document's worth of records, in slide order.
type Partition struct {
	Session roster.Session
	Kind    Kind
	Program string // empty for summa partitions
	Side    string // empty for summa and flat partitions
	Records []roster.Record
}

// Name is a short human-readable identifier such as "morning/summa" or
// "afternoon/S1 Informatika/L".
func (p Partition) Name() string {
	parts := []string{p.Session.String()}
	if p.Kind == KindSumma {
		parts = append(parts, "summa")
	} else {
		parts = append(parts, p.Program)
	}
	if p.Side != "" {
		parts = append(parts, p.Side)
	}
	return strings.Join(parts, "/")
}

// Len returns the number of records.
func (p Partition) Len() int { return len(p.Records) }

// Options configures [Build].
type Options struct {
	Structure Structure // Nested when empty
}

// Build partitions records. Partitions with no records are never returned.
func Build(records []roster.Record, opts Options) ([]Partition, []observability.Warning) {
	var warnings []observability.Warning
	var kept []roster.Record
	for _, r := range records {
		if roster.Blank(r.Program) && (opts.Structure == Flat || r.Tier() != honors.SummaCumlaude) {
			warnings = append(warnings, observability.Warning{
				Source:  "partition",
				Subject: r.Label(),
				Message: "blank program, record dropped",
			})
			continue
		}
		kept = append(kept, r)
	}

	var out []Partition
	for _, session := range roster.Sessions {
		var inSession []roster.Record
		for _, r := range kept {
			if r.Session == session {
				inSession = append(inSession, r)
			}
		}
		if len(inSession) == 0 {
			continue
		}
		if opts.Structure == Flat {
			out = append(out, flat(session, inSession)...)
		} else {
			out = append(out, nested(session, inSession)...)
		}
	}
	return out, warnings
}

func nested(session roster.Session, records []roster.Record) []Partition {
	var out []Partition

	var summa, rest []roster.Record
	for _, r := range records {
		if r.Tier() == honors.SummaCumlaude {
			summa = append(summa, r)
		} else {
			rest = append(rest, r)
		}
	}
	if len(summa) > 0 {
		SortBySeat(summa)
		out = append(out, Partition{Session: session, Kind: KindSumma, Records: summa})
	}

	for _, g := range groupBy(rest, func(r roster.Record) string { return r.Program }) {
		bySide := groupBy(g.records, roster.Record.Side)
		slices.SortStableFunc(bySide, func(a, b group) int { return CompareSides(a.key, b.key) })
		for _, s := range bySide {
			SortByPriority(s.records)
			out = append(out, Partition{
				Session: session,
				Kind:    KindProgram,
				Program: g.key,
				Side:    s.key,
				Records: s.records,
			})
		}
	}
	return out
}

func flat(session roster.Session, records []roster.Record) []Partition {
	var out []Partition
	for _, g := range groupBy(records, func(r roster.Record) string { return r.Program }) {
		SortBySeat(g.records)
		out = append(out, Partition{
			Session: session,
			Kind:    KindProgram,
			Program: g.key,
			Records: g.records,
		})
	}
	return out
}

type group struct {
	key     string
	records []roster.Record
}

// groupBy groups records by key in order of first appearance.
func groupBy(records []roster.Record, key func(roster.Record) string) []group {
	var groups []group
	index := make(map[string]int)
	for _, r := range records {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, group{key: k})
		}
		groups[i].records = append(groups[i].records, r)
	}
	return groups
}

// CompareSides orders L before R before any other side; other sides
// compare alphabetically.
func CompareSides(a, b string) int {
	return cmp.Or(cmp.Compare(sideRank(a), sideRank(b)), strings.Compare(a, b))
}

func sideRank(s string) int {
	switch s {
	case "L":
		return 0
	case "R":
		return 1
	default:
		return 2
	}
}

// SortBySeat stably orders records by seat key.
func SortBySeat(records []roster.Record) {
	slices.SortStableFunc(records, func(a, b roster.Record) int {
		return seat.Compare(a.SeatKey(), b.SeatKey())
	})
}

// SortByPriority stably orders records by honors priority, then seat key.
func SortByPriority(records []roster.Record) {
	slices.SortStableFunc(records, func(a, b roster.Record) int {
		return cmp.Or(
			cmp.Compare(honors.Priority(a.Tier()), honors.Priority(b.Tier())),
			seat.Compare(a.SeatKey(), b.SeatKey()),
		)
	})
}
