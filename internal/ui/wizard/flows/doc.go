// Package flows provides command-specific wizard implementations.
//
// Each flow is a complete interactive wizard for a specific pix
// command. Flows use the framework and steps packages to build
// multi-step interactive experiences.
//
// Available flows:
//   - [Setup]: Guided configuration for pix config init --interactive
package flows
