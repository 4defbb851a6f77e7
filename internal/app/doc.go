// Package app encapsulates the application's dependencies, configuration,
// and lifecycle: it builds the logger, loads and validates the plan,
// registers capability modules, and drives the engine in the selected
// execution mode.
package app
