// Package engine implements the execution core: dependency-ordered
// scheduling of phases and groups, concurrency-limited task dispatch within
// a group, per-task retry with backoff, fail-fast propagation, and
// checkpoint gating.
//
// The engine never branches on a task's type tag; handlers and validation
// checks are looked up in the capability registry and invoked through their
// interfaces. All run state (the result map and the completed-groups set)
// is owned by the Orchestrator instance, so multiple engines can run in one
// process without cross-contamination.
package engine
