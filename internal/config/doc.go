// Package config handles loading and validation of pix configuration.
//
// Configuration is read from ~/.pix/config.toml, with per-directory
// overrides from a .pix.toml in the working directory.
//
// # Configuration Sources (highest priority first)
//
//   - Command-line flags (--prefix, --format, --out, ...)
//   - --preset overlay (replaces both templates)
//   - .pix.toml in the working directory
//   - Global config file (or the file named by --config)
//   - Default values
//
// # Key Settings
//
//   - prefix: seed for every generated filename (default: "pix")
//   - filename_template / foldername_template: comma-separated token
//     lists resolved against the params file
//   - delimiter: separator between name parts (default: "-")
//   - format, quality: output encoding
//   - counter_digits, counter_position, per_directory_counter: counter
//     formatting and scoping
//   - output_dir: root for all generated paths (default: "output")
//   - job_data: sidecar metadata export ("off", "basic", "full")
//   - history: record saves in ~/.pix/history.json
//
// # Validation
//
// Load only fails on unreadable or syntactically invalid files. Semantic
// checks live in Config.Problems, which classifies findings as errors
// (bad quality, digits, position, format, templates that can never
// resolve) or warnings (odd delimiters, unsafe prefix characters). The
// validate and doctor commands print them; the save pipeline refuses to
// start on the error subset.
//
// # Presets
//
// Presets are built-in template pairs (see Presets). They only replace
// the two template fields, never the rest of the config.
package config
