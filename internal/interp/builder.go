package interp

import (
	"fmt"

	"chirp/internal/source"
)

// EntityID identifies a spawned entity. The interpreter never inspects it,
// only threads it back into SceneBuilder calls.
type EntityID uint64

// MethodCtx carries one method invocation to the scene builder. Name and
// Args reference the source buffer (or a substitution buffer) and must not
// be retained past the call.
type MethodCtx struct {
	Name     []byte
	Args     []byte // raw argument bytes, parens included when written
	NameSpan source.Span
	ArgsSpan source.Span
	Handles  *Handles
}

// SceneBuilder receives the scene events in document order: an entity is
// spawned, then parented, then its methods apply, then its children follow.
type SceneBuilder interface {
	SpawnEntity() EntityID
	SetParent(child, parent EntityID)
	ApplyMethod(entity EntityID, ctx *MethodCtx) error
}

// NoSuchMethodError is returned by ApplyMethod when the method name does
// not resolve to a handler. The interpreter points the diagnostic at the
// method name rather than the arguments.
type NoSuchMethodError struct {
	Name string
}

func (e *NoSuchMethodError) Error() string {
	return fmt.Sprintf("no method named %q", e.Name)
}
