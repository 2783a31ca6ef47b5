// Package store holds the immutable snapshot of declared classes,
// instances and modules that resolution runs against. The snapshot is
// assembled once by Build, validated (orphans, superclass cycles,
// functional dependency well-formedness, chain overlap) and never
// mutated afterwards, so concurrent resolution calls read it without
// locking.
//
// Classes and instances are interned into flat tables addressed by
// integer ids; graph walks over superclasses and chains are index
// operations, not pointer chasing.
package store

import (
	"github.com/funvibe/typeclass/internal/typesystem"
)

// ClassID indexes the class table.
type ClassID int

// InstanceID indexes the instance table.
type InstanceID int

// Class is an interned class declaration.
type Class struct {
	ID      ClassID
	Name    string
	Module  string
	Params  []string
	Supers  []Superclass
	FunDeps []FunDep
}

// Arity returns the number of parameter slots.
func (c *Class) Arity() int {
	return len(c.Params)
}

// Superclass is one superclass constraint of a class. ArgIndices maps
// each superclass parameter position to the subclass parameter index
// that instantiates it.
type Superclass struct {
	Class      ClassID
	ArgIndices []int
}

// FunDep is a functional dependency over parameter indices.
type FunDep struct {
	From []int
	To   []int
}

// Instance is an interned instance declaration. Chain and Pos fix its
// place in the class's ordered chains; both are assigned from
// declaration order and never change.
type Instance struct {
	ID          InstanceID
	Name        string
	Class       ClassID
	Module      string
	Head        []typesystem.Type
	Constraints []typesystem.Constraint
	Chain       int
	Pos         int
}

// Store is the assembled snapshot.
type Store struct {
	classes       []Class
	classIndex    map[string]ClassID
	instances     []Instance
	instanceIndex map[string]InstanceID
	chains        map[ClassID][][]InstanceID
	typeModules   map[string]string
	modules       []string
}

// Class looks a class up by name.
func (s *Store) Class(name string) (*Class, bool) {
	id, ok := s.classIndex[name]
	if !ok {
		return nil, false
	}
	return &s.classes[id], true
}

// ClassByID returns the class for an interned id.
func (s *Store) ClassByID(id ClassID) *Class {
	return &s.classes[id]
}

// Instance returns the instance for an interned id.
func (s *Store) Instance(id InstanceID) *Instance {
	return &s.instances[id]
}

// InstanceByName looks an instance up by its declared or generated name.
func (s *Store) InstanceByName(name string) (*Instance, bool) {
	id, ok := s.instanceIndex[name]
	if !ok {
		return nil, false
	}
	return &s.instances[id], true
}

// Chains returns the class's chains in declaration order; each chain is
// an ordered sequence of instance ids. Callers must not modify the
// returned slices.
func (s *Store) Chains(class ClassID) [][]InstanceID {
	return s.chains[class]
}

// Superclasses returns the direct superclass edges of a class.
func (s *Store) Superclasses(class ClassID) []Superclass {
	return s.classes[class].Supers
}

// DefiningModuleOf reports which module defines a nominal type.
func (s *Store) DefiningModuleOf(typeName string) (string, bool) {
	m, ok := s.typeModules[typeName]
	return m, ok
}

// Modules lists the loaded module names in declaration order.
func (s *Store) Modules() []string {
	return s.modules
}

// InstanceCount reports how many instances were admitted.
func (s *Store) InstanceCount() int {
	return len(s.instances)
}
