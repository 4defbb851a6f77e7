package config

import "context"

// Loader is the interface for a format-specific plan loader. A path may name
// a single plan file or a directory of plan files; directory contents are
// merged into one model.
type Loader interface {
	// Load reads plan configuration from the given path and translates it
	// into the format-agnostic model. Implementations apply settings
	// defaults before returning.
	Load(ctx context.Context, path string) (*Plan, error)
}
