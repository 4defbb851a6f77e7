// Package config defines the format-agnostic plan model consumed by the
// execution engine, along with the Loader interface that format-specific
// adapters (HCL, YAML) implement to produce it.
package config
