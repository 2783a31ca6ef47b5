// Package solver resolves class constraints against an assembled store
// snapshot. Resolution is pure and read-only: independent calls may run
// concurrently over one store.
package solver

import (
	"errors"

	"github.com/funvibe/typeclass/internal/config"
	"github.com/funvibe/typeclass/internal/store"
	"github.com/funvibe/typeclass/internal/typesystem"
)

// instSuffix renames instance head variables before matching so they can
// never collide with use-site variables.
const instSuffix = "inst"

// Resolver answers constraint-resolution queries against one store.
type Resolver struct {
	store    *store.Store
	maxDepth int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMaxDepth overrides the recursive prerequisite depth bound.
func WithMaxDepth(n int) Option {
	return func(r *Resolver) {
		r.maxDepth = n
	}
}

// New creates a resolver over an assembled, validated store.
func New(st *store.Store, opts ...Option) *Resolver {
	r := &Resolver{store: st, maxDepth: config.DefaultMaxResolutionDepth}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Solution is the evidence produced for one constraint. Either Instance
// is set (possibly with recursively solved Prereqs), or Given is set
// when the constraint was discharged from ambient evidence, with
// SuperPath listing the superclass edge indices walked from the given's
// class (empty for a direct given).
type Solution struct {
	Instance  *store.Instance
	Subst     typesystem.Subst
	Prereqs   []*Solution
	Given     *typesystem.Constraint
	SuperPath []int
}

// Resolve discharges a constraint: first through the class's own chains,
// then, if no chain entry applied, through the ambient givens via the
// superclass graph. Prerequisites of a selected instance are resolved
// recursively; they never influence which instance is selected.
func (r *Resolver) Resolve(c typesystem.Constraint, givens []typesystem.Constraint) (*Solution, error) {
	return r.resolve(c, givens, 0)
}

func (r *Resolver) resolve(c typesystem.Constraint, givens []typesystem.Constraint, depth int) (*Solution, error) {
	if depth > r.maxDepth {
		return nil, NewDepthExceededError(c)
	}

	cls, ok := r.store.Class(c.Class)
	if !ok || len(c.Args) != cls.Arity() {
		return nil, NewNoInstanceFoundError(c)
	}

	inst, subst, err := r.resolveDirect(cls, c)
	if err == nil {
		sol := &Solution{Instance: inst, Subst: subst}
		for _, pre := range inst.Constraints {
			renamed := typesystem.Constraint{Class: pre.Class}
			for _, arg := range pre.Args {
				renamed.Args = append(renamed.Args, typesystem.RenameTypeVars(arg, instSuffix))
			}
			sub, err := r.resolve(renamed.Apply(subst), givens, depth+1)
			if err != nil {
				return nil, err
			}
			sol.Prereqs = append(sol.Prereqs, sub)
		}
		return sol, nil
	}

	var notFound *NoInstanceFoundError
	if errors.As(err, &notFound) {
		if sol := r.dischargeFromGivens(c, givens); sol != nil {
			return sol, nil
		}
	}
	return nil, err
}

// resolveDirect walks the class's chains in declaration order. The first
// Matched entry wins; earlier entries shadow later ones, which is what
// makes an `else` catch-all work. An Ambiguous entry stops the whole
// search: the engine cannot prove the entry will not apply once the
// use-site unknowns are instantiated, so nothing after it may be chosen.
func (r *Resolver) resolveDirect(cls *store.Class, c typesystem.Constraint) (*store.Instance, typesystem.Subst, error) {
	for _, chain := range r.store.Chains(cls.ID) {
		for _, id := range chain {
			inst := r.store.Instance(id)
			kind, subst := r.matchInstance(cls, inst, c.Args)
			switch kind {
			case typesystem.Matched:
				return inst, subst, nil
			case typesystem.Ambiguous:
				return nil, nil, NewAmbiguousInstanceError(c, inst.Name)
			}
		}
	}
	return nil, nil, NewNoInstanceFoundError(c)
}

// matchInstance matches one instance head against the constraint
// arguments, with functional dependency handling: an ambiguous position
// whose value is determined by concretely known determiners is matched
// through the instance head instead, and the determined types are
// propagated into the substitution.
func (r *Resolver) matchInstance(cls *store.Class, inst *store.Instance, args []typesystem.Type) (typesystem.MatchKind, typesystem.Subst) {
	head := make([]typesystem.Type, len(inst.Head))
	for i, h := range inst.Head {
		head[i] = typesystem.RenameTypeVars(h, instSuffix)
	}

	subst := typesystem.Subst{}
	kinds := make([]typesystem.MatchKind, len(head))
	overall := typesystem.Matched
	for i := range head {
		kinds[i] = typesystem.MatchInto(head[i], args[i], subst)
		overall = overall.Combine(kinds[i])
	}
	if overall == typesystem.Matched {
		return typesystem.Matched, subst
	}
	if overall == typesystem.NoMatch {
		return typesystem.NoMatch, nil
	}

	if len(cls.FunDeps) == 0 {
		return typesystem.Ambiguous, nil
	}

	known := make(map[int]bool)
	for i, arg := range args {
		if !typesystem.HasFreeVariables(arg) {
			known[i] = true
		}
	}
	determined := RequiredConcrete(cls, known)
	for i, kind := range kinds {
		if kind == typesystem.Ambiguous && (known[i] || !determined[i]) {
			return typesystem.Ambiguous, nil
		}
	}

	// Every ambiguous position is determined by positions that matched
	// concretely. Bind the use-site unknowns to the instance's types by
	// matching in the opposite direction.
	for i, kind := range kinds {
		if kind != typesystem.Ambiguous {
			continue
		}
		det := head[i].Apply(subst)
		switch typesystem.MatchInto(args[i], det, subst) {
		case typesystem.NoMatch:
			return typesystem.NoMatch, nil
		case typesystem.Ambiguous:
			return typesystem.Ambiguous, nil
		}
	}
	return typesystem.Matched, subst
}
