package deck

import (
	"cmp"
	"slices"
	"strings"

	"github.com/matzehuels/gradslides/pkg/roster"
)

// HonorsCount is one line of the honors distribution: how often a raw
// HONORS value occurs and the tier it classifies as.
type HonorsCount struct {
	Text  string `json:"text"`
	Tier  string `json:"tier"`
	Count int    `json:"count"`
}

// HonorsDistribution counts distinct HONORS values, most frequent first.
// Values are compared after trimming; blank values count under "".
func HonorsDistribution(records []roster.Record) []HonorsCount {
	idx := make(map[string]int)
	var out []HonorsCount
	for _, r := range records {
		text := strings.TrimSpace(r.Honors)
		if roster.Blank(text) {
			text = ""
		}
		i, ok := idx[text]
		if !ok {
			i = len(out)
			idx[text] = i
			out = append(out, HonorsCount{Text: text, Tier: r.Tier().String()})
		}
		out[i].Count++
	}
	slices.SortStableFunc(out, func(a, b HonorsCount) int {
		return cmp.Or(cmp.Compare(b.Count, a.Count), cmp.Compare(a.Text, b.Text))
	})
	return out
}

// Stats summarises a run.
type Stats struct {
	Records   int           `json:"records"`
	Decks     int           `json:"decks"`
	Slides    int           `json:"slides"`
	Photos    int           `json:"photos"`    // slides with a photo
	Employers int           `json:"employers"` // slides with an employer
	Failed    int           `json:"failed,omitempty"`
	Honors    []HonorsCount `json:"honors,omitempty"`
}
