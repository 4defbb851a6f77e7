// Package report defines the lifecycle notification interface produced by
// the execution engine, plus the built-in console and no-op reporters.
// Every callback fires exactly once per corresponding entity transition, in
// the order those transitions occur.
package report
