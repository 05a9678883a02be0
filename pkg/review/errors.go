package review

import "fmt"

// ValidationError rejects malformed input to a mutating store operation.
// The operation has no effect.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports an operation referencing an entity id that does
// not exist. Entity operations fail loudly because a missing entity
// indicates a data-load inconsistency worth surfacing; region removals
// stay lenient and never raise this.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// EmptySelectionError reports a projection attempt with nothing to apply.
// Callers should disable the apply action instead of invoking the
// projector, but the projector guards regardless.
type EmptySelectionError struct{}

func (e *EmptySelectionError) Error() string {
	return "nothing to apply: no approved entities and no custom redactions"
}
