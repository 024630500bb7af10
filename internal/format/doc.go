// Package format renders values for human-readable command output.
//
// Timestamps shown in tables use [RelativeTime]: recent times collapse to
// "just now", "5m ago" or "yesterday", and anything a week or older falls
// back to the plain date. Machine-readable output (--json) never goes
// through this package; it carries full RFC 3339 timestamps instead.
package format
