package deck

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/matzehuels/gradslides/pkg/partition"
)

var (
	unsafeChars = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	separators  = regexp.MustCompile(`[-\s]+`)
)

// unnamed replaces a program name with nothing left after sanitising.
const unnamed = "unnamed"

// Sanitize turns a program name into a folder or file name: characters
// other than letters, digits, underscore, whitespace and hyphen are
// removed, the result is trimmed, and runs of whitespace and hyphens become
// a single underscore.
//
//	Sanitize("S1 Teknik Informatika (Reguler)") == "S1_Teknik_Informatika_Reguler"
func Sanitize(name string) string {
	s := unsafeChars.ReplaceAllString(name, "")
	s = strings.TrimSpace(s)
	return separators.ReplaceAllString(s, "_")
}

func safeName(name string) string {
	if s := Sanitize(name); s != "" {
		return s
	}
	return unnamed
}

// Stem returns the output path of p without extension.
func (o Options) Stem(p partition.Partition) string {
	dir := filepath.Join(o.OutputDir, o.SessionFolder(p.Session))
	switch {
	case p.Kind == partition.KindSumma:
		return filepath.Join(dir, SummaFolder, SummaStem)
	case p.Side == "":
		return filepath.Join(dir, safeName(p.Program))
	default:
		return filepath.Join(dir, safeName(p.Program), SidePrefix+strings.ToLower(safeName(p.Side)))
	}
}

// uniqueStem returns stem, or stem with a numeric suffix when another deck
// already uses it. seen maps the lower-cased stems handed out so far to the
// deck that took them; clash names that deck when a suffix was needed.
func uniqueStem(seen map[string]string, stem, name string) (unique, clash string) {
	unique = stem
	for n := 2; ; n++ {
		key := strings.ToLower(unique)
		owner, taken := seen[key]
		if !taken {
			seen[key] = name
			return unique, clash
		}
		if clash == "" {
			clash = owner
		}
		unique = fmt.Sprintf("%s_%d", stem, n)
	}
}

// TestModeStem returns the test-mode output path without extension.
func (o Options) TestModeStem() string {
	return filepath.Join(o.OutputDir, TestFolder, TestStem)
}

// ManifestPath returns where the run manifest is written.
func (o Options) ManifestPath() string {
	return filepath.Join(o.OutputDir, ManifestFile)
}
