// Package registry holds the capability registries that map a task's type
// tag to its handler and a validation check's kind tag to its check
// implementation. The engine is polymorphic over these capabilities and
// never branches on a type tag itself; adding a task type means registering
// a new handler, not editing the engine.
package registry
