package solver

import (
	"github.com/funvibe/typeclass/internal/store"
	"github.com/funvibe/typeclass/internal/typesystem"
)

// dischargeFromGivens tries to discharge a constraint from the ambient
// evidence: either a given for the same class with the same arguments,
// or a given for a class that transitively lists the constraint's class
// as a superclass, with its parameter mapping carrying the arguments
// over. Returns nil when no given applies.
func (r *Resolver) dischargeFromGivens(c typesystem.Constraint, givens []typesystem.Constraint) *Solution {
	for gi, given := range givens {
		if given.Class == c.Class && argsEqual(given.Args, c.Args) {
			return &Solution{Given: &givens[gi]}
		}
	}
	for gi, given := range givens {
		if path, ok := r.superclassPath(given, c); ok {
			return &Solution{Given: &givens[gi], SuperPath: path}
		}
	}
	return nil
}

// superclassPath searches breadth-first up the superclass graph from the
// given's class for the constraint's class, composing the parameter
// mappings along the way. The returned path lists, per step, the index
// of the superclass edge taken, which is how evidence structures are
// projected at the use site.
func (r *Resolver) superclassPath(given typesystem.Constraint, c typesystem.Constraint) ([]int, bool) {
	cls, ok := r.store.Class(given.Class)
	if !ok || len(given.Args) != cls.Arity() {
		return nil, false
	}

	type step struct {
		class ClassMapping
		path  []int
	}
	start := ClassMapping{Class: cls.ID, ArgIndices: identityMapping(cls.Arity())}
	queue := []step{{class: start}}
	visited := map[store.ClassID]bool{cls.ID: true}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for i, sup := range r.store.Superclasses(curr.class.Class) {
			mapped := curr.class.compose(sup)
			path := append(append([]int{}, curr.path...), i)

			if r.store.ClassByID(sup.Class).Name == c.Class {
				if mapped.argsMatch(given.Args, c.Args) {
					return path, true
				}
			}
			if !visited[sup.Class] {
				visited[sup.Class] = true
				queue = append(queue, step{class: mapped, path: path})
			}
		}
	}
	return nil, false
}

// ClassMapping tracks, for a class reached over superclass edges, which
// given argument instantiates each of its parameters.
type ClassMapping struct {
	Class      store.ClassID
	ArgIndices []int
}

func (m ClassMapping) compose(sup store.Superclass) ClassMapping {
	indices := make([]int, len(sup.ArgIndices))
	for i, idx := range sup.ArgIndices {
		indices[i] = m.ArgIndices[idx]
	}
	return ClassMapping{Class: sup.Class, ArgIndices: indices}
}

func (m ClassMapping) argsMatch(givenArgs, want []typesystem.Type) bool {
	if len(m.ArgIndices) != len(want) {
		return false
	}
	for i, idx := range m.ArgIndices {
		if !typesystem.Equal(givenArgs[idx], want[i]) {
			return false
		}
	}
	return true
}

func identityMapping(n int) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return indices
}

func argsEqual(a, b []typesystem.Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !typesystem.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
