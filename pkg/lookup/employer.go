package lookup

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/matzehuels/gradslides/pkg/io"
	"github.com/matzehuels/gradslides/pkg/observability"
	"github.com/matzehuels/gradslides/pkg/roster"
)

// Header spellings of the employer table.
var (
	NameColumns     = []string{"NAME", "Nama"}
	EmployerColumns = []string{"EMPLOYER", "Nama Perusahaan"}
)

// Employers maps graduate names to employers.
type Employers struct {
	byName map[string]string
}

// NameKey folds a full name for lookup: trimmed, upper-cased, NFC
// normalised. Names typed with decomposed accents match composed ones.
func NameKey(name string) string {
	s := strings.TrimSpace(norm.NFC.String(name))
	return cases.Upper(language.Und).String(s)
}

// BuildEmployers reads NAME and EMPLOYER columns from t. Rows where either
// value is blank are skipped. When a name appears twice the later row
// wins and a warning is returned.
func BuildEmployers(t *io.Table) (Employers, []observability.Warning) {
	var warnings []observability.Warning
	e := Employers{byName: make(map[string]string)}

	nameCol, empCol := t.Index(NameColumns...), t.Index(EmployerColumns...)
	if nameCol < 0 || empCol < 0 {
		warnings = append(warnings, observability.Warning{
			Source:  "employers",
			Subject: t.Source,
			Message: "table needs NAME and EMPLOYER columns, employer lookup disabled",
		})
		return e, warnings
	}

	for _, row := range t.Rows {
		name, employer := row.Get(nameCol), row.Get(empCol)
		if roster.Blank(name) || roster.Blank(employer) {
			continue
		}
		key := NameKey(name)
		if prev, ok := e.byName[key]; ok && prev != employer {
			warnings = append(warnings, observability.Warning{
				Source:  "employers",
				Subject: name,
				Message: fmt.Sprintf("listed twice (line %d), %q replaces %q", row.Line, employer, prev),
			})
		}
		e.byName[key] = employer
	}
	return e, warnings
}

// Len returns the number of known names.
func (e Employers) Len() int { return len(e.byName) }

// Resolve returns the employer of the graduate named name. Matching is
// exact apart from case and surrounding whitespace.
func (e Employers) Resolve(name string) Option[string] {
	if e.byName == nil || roster.Blank(name) {
		return None[string]()
	}
	if v, ok := e.byName[NameKey(name)]; ok {
		return Some(v)
	}
	return None[string]()
}
