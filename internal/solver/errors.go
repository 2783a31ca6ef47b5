package solver

import (
	"fmt"

	"github.com/funvibe/typeclass/internal/typesystem"
)

// NoInstanceFoundError indicates the chains were exhausted and no
// superclass discharge was available.
type NoInstanceFoundError struct {
	Constraint typesystem.Constraint
}

func (e *NoInstanceFoundError) Error() string {
	return fmt.Sprintf("no type class instance was found for %s", e.Constraint)
}

func NewNoInstanceFoundError(c typesystem.Constraint) *NoInstanceFoundError {
	return &NoInstanceFoundError{Constraint: c}
}

// AmbiguousInstanceError indicates an ambiguous match stopped chain
// traversal. The user-facing message is the same as for a plain absence;
// the types stay distinct for diagnostics and tests.
type AmbiguousInstanceError struct {
	Constraint typesystem.Constraint
	Blocking   string
}

func (e *AmbiguousInstanceError) Error() string {
	return fmt.Sprintf("no type class instance was found for %s", e.Constraint)
}

func NewAmbiguousInstanceError(c typesystem.Constraint, blocking string) *AmbiguousInstanceError {
	return &AmbiguousInstanceError{Constraint: c, Blocking: blocking}
}

// DepthExceededError indicates recursive prerequisite resolution did not
// terminate within the configured bound.
type DepthExceededError struct {
	Constraint typesystem.Constraint
}

func (e *DepthExceededError) Error() string {
	return fmt.Sprintf("constraint resolution did not terminate while solving %s", e.Constraint)
}

func NewDepthExceededError(c typesystem.Constraint) *DepthExceededError {
	return &DepthExceededError{Constraint: c}
}
