// Package prompt provides simple interactive prompts.
//
// This package contains standalone interactive prompts for common
// user input scenarios. For more complex multi-step flows, see
// the wizard package.
//
// Available prompts:
//   - [Confirm]: Yes/No confirmation prompt
//   - [Select]: Single selection from a list
package prompt
