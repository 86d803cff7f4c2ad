package deck

import (
	"github.com/matzehuels/gradslides/pkg/errors"
	"github.com/matzehuels/gradslides/pkg/io"
	"github.com/matzehuels/gradslides/pkg/lookup"
	"github.com/matzehuels/gradslides/pkg/observability"
	"github.com/matzehuels/gradslides/pkg/roster"
)

// TableResult reports how one input table loaded.
type TableResult struct {
	Path    string `json:"path"`
	Records int    `json:"records"`
	Err     error  `json:"-"`
}

// LoadInputs reads every input table.
//
// A table that cannot be read is reported as a warning and skipped; the
// others still load. Only when no table could be read at all does
// LoadInputs return an error, with code NO_DATA. An empty list is
// INVALID_INPUT.
func LoadInputs(inputs []Input) ([]roster.Record, []TableResult, []observability.Warning, error) {
	if len(inputs) == 0 {
		return nil, nil, nil, errors.New(errors.ErrCodeInvalidInput, "no input tables configured")
	}
	var (
		records  []roster.Record
		results  []TableResult
		warnings []observability.Warning
		loaded   int
	)
	for _, in := range inputs {
		recs, ws, err := roster.Load(in.Path, in.Session)
		results = append(results, TableResult{Path: in.Path, Records: len(recs), Err: err})
		if err != nil {
			warnings = append(warnings, observability.Warning{
				Source:  "roster",
				Subject: in.Path,
				Message: errors.UserMessage(err) + ", table skipped",
			})
			continue
		}
		loaded++
		records = append(records, recs...)
		warnings = append(warnings, ws...)
	}
	if loaded == 0 {
		return nil, results, warnings, errors.New(errors.ErrCodeNoData, "none of the %d input tables could be read", len(inputs))
	}
	return records, results, warnings, nil
}

// LoadEmployers reads the employer table at path. An empty path yields an
// empty lookup. A table that cannot be read is a warning, not an error:
// slides are generated without employers.
func LoadEmployers(path string) (lookup.Employers, []observability.Warning) {
	if path == "" {
		return lookup.Employers{}, nil
	}
	t, err := io.ImportTable(path)
	if err != nil {
		return lookup.Employers{}, []observability.Warning{{
			Source:  "employers",
			Subject: path,
			Message: errors.UserMessage(err) + ", employers disabled",
		}}
	}
	return lookup.BuildEmployers(t)
}
