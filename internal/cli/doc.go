// Package cli translates command-line arguments into an app.Config. It owns
// flag parsing, usage text, and argument validation, keeping the entrypoint
// in cmd/cli thin.
package cli
