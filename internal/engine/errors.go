package engine

import "fmt"

// UnknownTaskTypeError indicates a task whose type tag has no registered
// handler. It is fatal to that task only; the run continues.
type UnknownTaskTypeError struct {
	Type string
}

func (e *UnknownTaskTypeError) Error() string {
	return fmt.Sprintf("no handler registered for task type %q", e.Type)
}

// GroupError wraps a group failure propagated under fail-fast.
type GroupError struct {
	Phase string
	Group string
	Err   error
}

func (e *GroupError) Error() string {
	return fmt.Sprintf("group %q in phase %q failed: %v", e.Group, e.Phase, e.Err)
}

func (e *GroupError) Unwrap() error { return e.Err }

// PhaseError wraps a phase failure propagated under fail-fast.
type PhaseError struct {
	Phase string
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("phase %q failed: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error { return e.Err }
