// Package doctor checks the pix environment and repairs what it can.
//
// A run inspects, in order:
//
//   - the global config file, and a local .pix.toml override when present
//   - every configured value, via config.Problems
//   - the output directory (existence plus a write probe)
//   - a counter scan dry run against the output directory
//   - the history file
//
// Each [Check] carries a [Status] and, where a safe automatic repair
// exists, a [FixAction] that [Apply] executes for `pix doctor --fix`.
// Repairs only create what is missing; doctor never rewrites an existing
// file.
package doctor
