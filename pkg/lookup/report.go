package lookup

import (
	"github.com/matzehuels/gradslides/pkg/roster"
)

// Match is the employer lookup outcome for one graduate.
type Match struct {
	Name     string
	Key      string
	Employer Option[string]
}

// Report summarises how many graduates an employer table covers.
type Report struct {
	Total   int
	Matched int
	Matches []Match
}

// Rate returns the share of matched graduates in percent, 0 when there
// were none.
func (r Report) Rate() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Matched) / float64(r.Total) * 100
}

// MatchReport looks every named record up in employers. Records without a
// name are not counted.
func MatchReport(records []roster.Record, employers Employers) Report {
	var r Report
	for _, rec := range records {
		if roster.Blank(rec.FullName) {
			continue
		}
		m := Match{
			Name:     rec.FullName,
			Key:      NameKey(rec.FullName),
			Employer: employers.Resolve(rec.FullName),
		}
		r.Total++
		if m.Employer.IsSome() {
			r.Matched++
		}
		r.Matches = append(r.Matches, m)
	}
	return r
}
