package solver

import (
	"github.com/funvibe/typeclass/internal/store"
)

// RequiredConcrete closes a set of concretely known parameter indices
// under the class's functional dependencies: whenever every determiner
// of a dependency is known, its determined indices become known too.
// The closure is monotone over a finite set, so the fixpoint is reached
// in at most one pass per dependency.
func RequiredConcrete(cls *store.Class, known map[int]bool) map[int]bool {
	out := make(map[int]bool, len(known))
	for i := range known {
		out[i] = true
	}

	for changed := true; changed; {
		changed = false
		for _, dep := range cls.FunDeps {
			covered := true
			for _, i := range dep.From {
				if !out[i] {
					covered = false
					break
				}
			}
			if !covered {
				continue
			}
			for _, i := range dep.To {
				if !out[i] {
					out[i] = true
					changed = true
				}
			}
		}
	}
	return out
}
