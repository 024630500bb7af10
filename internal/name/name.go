// Package name assembles resolved template tokens into base filenames and
// folder specifications, and formats final filenames with their counter.
package name

import (
	"fmt"
	"strings"

	"github.com/raphi011/pix/internal/sanitize"
	"github.com/raphi011/pix/internal/template"
)

// DefaultBase is substituted when a built base name comes out empty.
const DefaultBase = "pix"

// Position states where the counter sits relative to the base name.
type Position string

const (
	PositionFirst Position = "first"
	PositionLast  Position = "last"
)

// ParsePosition validates a counter position read from config or flags.
func ParsePosition(s string) (Position, error) {
	switch Position(s) {
	case PositionFirst, PositionLast:
		return Position(s), nil
	}
	return "", fmt.Errorf("invalid counter position %q, must be %q or %q", s, PositionFirst, PositionLast)
}

// Base builds the filename base from resolved tokens, seeded with the
// configured prefix. An empty result falls back to DefaultBase.
func Base(resolved []template.Resolved, prefix, delimiter string) string {
	base := build(resolved, prefix, delimiter)
	if base == "" {
		return DefaultBase
	}
	return base
}

// Folder builds the folder specification from resolved tokens. Empty means
// no subfolder; there is no prefix seed and no default.
func Folder(resolved []template.Resolved, delimiter string) string {
	return build(resolved, "", delimiter)
}

func build(resolved []template.Resolved, prefix, delimiter string) string {
	acc := prefix
	for _, r := range resolved {
		if !r.OK {
			// Unresolved tokens contribute nothing, not even a
			// delimiter.
			continue
		}
		switch r.Token.Kind {
		case template.KindPathMarker:
			seg := sanitize.Segment(r.Value)
			if seg == "" {
				continue
			}
			if acc != "" && !strings.HasSuffix(acc, "/") {
				acc += "/"
			}
			acc += seg
		case template.KindDate:
			acc = appendPart(acc, sanitize.Segment(r.Value), delimiter)
		default:
			acc = appendPart(acc, sanitize.Segment(sanitize.TrimModelExt(r.Value)), delimiter)
		}
	}
	return strings.Trim(acc, delimiter+"./")
}

func appendPart(acc, part, delimiter string) string {
	if part == "" {
		return acc
	}
	if acc != "" && !strings.HasSuffix(acc, "/") {
		acc += delimiter
	}
	return acc + part
}

// Filename formats the final filename: the counter zero-padded to digits,
// placed before or after the base, extension appended unconditionally.
func Filename(base string, counter, digits int, pos Position, delimiter, ext string) string {
	c := fmt.Sprintf("%0*d", digits, counter)
	if pos == PositionFirst {
		return c + delimiter + base + ext
	}
	return base + delimiter + c + ext
}
