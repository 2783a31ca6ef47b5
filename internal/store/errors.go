package store

import "fmt"

// OrphanInstanceError indicates an instance declared in neither the
// class's defining module nor a defining module of any head argument type.
type OrphanInstanceError struct {
	Instance string
	Class    string
	Module   string
}

func (e *OrphanInstanceError) Error() string {
	return fmt.Sprintf("orphan instance %s: module %s defines neither class %s nor any type in the instance head", e.Instance, e.Module, e.Class)
}

func NewOrphanInstanceError(instance, class, module string) *OrphanInstanceError {
	return &OrphanInstanceError{Instance: instance, Class: class, Module: module}
}

// SuperclassCycleError indicates a class that is its own transitive superclass.
type SuperclassCycleError struct {
	Class string
}

func (e *SuperclassCycleError) Error() string {
	return fmt.Sprintf("class %s is its own transitive superclass", e.Class)
}

func NewSuperclassCycleError(class string) *SuperclassCycleError {
	return &SuperclassCycleError{Class: class}
}

// FunctionalDependencyCycleError indicates a dependency whose outputs
// feed its own inputs within a single resolution step.
type FunctionalDependencyCycleError struct {
	Class string
	Param string
}

func (e *FunctionalDependencyCycleError) Error() string {
	return fmt.Sprintf("class %s: functional dependency determines its own determiner %s", e.Class, e.Param)
}

func NewFunctionalDependencyCycleError(class, param string) *FunctionalDependencyCycleError {
	return &FunctionalDependencyCycleError{Class: class, Param: param}
}

// FunctionalDependencyConflictError indicates two dependencies of one
// class that could simultaneously determine the same parameter.
type FunctionalDependencyConflictError struct {
	Class string
	Param string
}

func (e *FunctionalDependencyConflictError) Error() string {
	return fmt.Sprintf("class %s: parameter %s is determined by more than one functional dependency", e.Class, e.Param)
}

func NewFunctionalDependencyConflictError(class, param string) *FunctionalDependencyConflictError {
	return &FunctionalDependencyConflictError{Class: class, Param: param}
}

// OverlappingInstanceError indicates two instances of one class whose
// heads are the same shape but which belong to different chains, so
// declaration order cannot arbitrate between them.
type OverlappingInstanceError struct {
	Class    string
	Existing string
	New      string
}

func (e *OverlappingInstanceError) Error() string {
	return fmt.Sprintf("overlapping instances for class %s: %s and %s", e.Class, e.Existing, e.New)
}

func NewOverlappingInstanceError(class, existing, newer string) *OverlappingInstanceError {
	return &OverlappingInstanceError{Class: class, Existing: existing, New: newer}
}
