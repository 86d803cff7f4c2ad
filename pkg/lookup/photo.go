// Package lookup resolves the per-student assets that live outside the
// roster: graduation photos on disk and employer names from a separate
// table.
//
// Both lookups are tolerant. A missing photo or an unknown name is an
// absent [Option], never an error; the slide is still produced without it.
package lookup

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultPhotoPattern names a student's photo inside its program folder.
// The verb receives the student ID.
const DefaultPhotoPattern = "%s_graduation_1.jpg"

// PhotoFinder locates photos laid out as <Dir>/<program>/<id>_graduation_1.jpg.
type PhotoFinder struct {
	Dir     string
	Pattern string // file name pattern, DefaultPhotoPattern when empty
}

// Path returns where the photo for studentID in program is expected,
// whether or not it exists.
func (f PhotoFinder) Path(studentID, program string) string {
	pattern := f.Pattern
	if pattern == "" {
		pattern = DefaultPhotoPattern
	}
	name := strings.ReplaceAll(pattern, "%s", strings.TrimSpace(studentID))
	return filepath.Join(f.Dir, strings.TrimSpace(program), name)
}

// FindPhoto returns the photo path when the file exists. An empty student
// ID or program yields None.
func (f PhotoFinder) FindPhoto(studentID, program string) Option[string] {
	if strings.TrimSpace(studentID) == "" || strings.TrimSpace(program) == "" {
		return None[string]()
	}
	path := f.Path(studentID, program)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return None[string]()
	}
	return Some(path)
}
