// Package sanitize normalizes strings into safe, portable filesystem
// path segments.
package sanitize

import (
	"strings"
	"unicode"
)

// MaxLen is the maximum length of a sanitized segment, in runes.
const MaxLen = 200

// placeholder replaces characters that are illegal in filenames on at
// least one supported platform.
const placeholder = '_'

// reserved device names on Windows. A segment equal to one of these
// (case-insensitive) gets an underscore prefix.
var reserved = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {},
	"COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {},
	"LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

// modelExts are model-weights file extensions that show up in checkpoint
// and LoRA parameter values. They carry no information in a generated
// name.
var modelExts = []string{".safetensors", ".ckpt", ".pt", ".bin", ".pth"}

// Segment normalizes one path/name segment: forbidden characters become
// underscores, surrounding whitespace and dots are trimmed, overlong
// segments are truncated, and reserved device names get an underscore
// prefix. Segment is idempotent: Segment(Segment(s)) == Segment(s).
func Segment(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '<', '>', ':', '"', '|', '?', '*', '\\':
			b.WriteRune(placeholder)
		default:
			b.WriteRune(r)
		}
	}

	out := trimEdges(b.String())

	// Truncation can expose new trailing dots or spaces, so trim again.
	if runes := []rune(out); len(runes) > MaxLen {
		out = trimEdges(string(runes[:MaxLen]))
	}

	if isReserved(out) {
		out = "_" + out
	}

	return out
}

// TrimModelExt strips one trailing model-weights extension from a
// parameter value, so "sd_xl_base.safetensors" becomes "sd_xl_base".
func TrimModelExt(s string) string {
	for _, ext := range modelExts {
		if strings.HasSuffix(s, ext) {
			return s[:len(s)-len(ext)]
		}
	}
	return s
}

func trimEdges(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return r == '.' || unicode.IsSpace(r)
	})
}

func isReserved(s string) bool {
	_, ok := reserved[strings.ToUpper(s)]
	return ok
}
