// Package outpath maps generated folder specifications onto absolute
// paths under the base output directory.
package outpath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/raphi011/pix/internal/sanitize"
)

// ErrEscapesBase reports a folder specification whose ".." segments climb
// out of the base output directory. Callers fall back to the base
// directory itself.
var ErrEscapesBase = errors.New("folder specification escapes the base output directory")

// Resolve joins a folder specification onto baseDir. Empty and "."
// segments are dropped, ".." passes through unsanitized, everything else
// is sanitized. The result always stays under baseDir: on escape, baseDir
// is returned together with ErrEscapesBase.
func Resolve(baseDir, folderSpec string) (string, error) {
	segs := []string{baseDir}
	for _, seg := range strings.Split(folderSpec, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			segs = append(segs, seg)
		default:
			if s := sanitize.Segment(seg); s != "" {
				segs = append(segs, s)
			}
		}
	}
	dir := filepath.Join(segs...)

	rel, err := filepath.Rel(baseDir, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return baseDir, ErrEscapesBase
	}
	return dir, nil
}

// Ensure creates dir and any missing parents.
func Ensure(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return nil
}
