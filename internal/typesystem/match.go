package typesystem

// MatchKind is the three-valued outcome of matching an instance head
// position against a constraint argument.
//
// Dominance order when combining positions: NoMatch > Ambiguous > Matched.
// A structural mismatch anywhere makes the instance inapplicable regardless
// of any ambiguous position; otherwise a single ambiguous position taints
// the whole head.
type MatchKind int

const (
	Matched MatchKind = iota
	NoMatch
	Ambiguous
)

func (k MatchKind) String() string {
	switch k {
	case Matched:
		return "Matched"
	case NoMatch:
		return "NoMatch"
	case Ambiguous:
		return "Ambiguous"
	}
	return "Unknown"
}

// Combine folds another position outcome into k under the dominance order.
func (k MatchKind) Combine(other MatchKind) MatchKind {
	if k == NoMatch || other == NoMatch {
		return NoMatch
	}
	if k == Ambiguous || other == Ambiguous {
		return Ambiguous
	}
	return Matched
}

// MatchResult is the outcome of matching a full instance head.
// Subst is populated only when Kind is Matched.
type MatchResult struct {
	Kind  MatchKind
	Subst Subst
}

// Match compares an instance head against constraint arguments pairwise.
//
// Head variables bind to whatever stands on the constraint side, including
// existential variables. A concrete head position facing an existential
// constraint variable is Ambiguous: the instance would apply only for some
// later instantiation of that variable. Conflicting bindings for the same
// head variable across positions force NoMatch when the conflict is
// provable, Ambiguous when either side still contains unknowns.
func Match(head, args []Type) MatchResult {
	if len(head) != len(args) {
		return MatchResult{Kind: NoMatch}
	}

	subst := Subst{}
	result := Matched
	for i := range head {
		result = result.Combine(MatchInto(head[i], args[i], subst))
		if result == NoMatch {
			return MatchResult{Kind: NoMatch}
		}
	}
	if result != Matched {
		return MatchResult{Kind: result}
	}
	return MatchResult{Kind: Matched, Subst: subst}
}

// MatchInto matches a single head position against a single constraint
// argument, accumulating head-variable bindings into subst. Callers that
// need per-position outcomes (functional dependency handling) share one
// subst across positions so binding conflicts are still detected.
func MatchInto(head, arg Type, subst Subst) MatchKind {
	switch h := head.(type) {
	case TVar:
		if prev, ok := subst[h.Name]; ok {
			if Equal(prev, arg) {
				return Matched
			}
			if HasFreeVariables(prev) || HasFreeVariables(arg) {
				// The conflict might vanish once the unknowns are
				// instantiated, so it cannot rule the instance out.
				return Ambiguous
			}
			return NoMatch
		}
		subst[h.Name] = arg
		return Matched

	case TCon:
		switch a := arg.(type) {
		case TCon:
			if h.Name == a.Name {
				return Matched
			}
			return NoMatch
		case TVar:
			// Could match only if the existential variable happens to be
			// instantiated to exactly this constructor.
			return Ambiguous
		case TApp:
			return NoMatch
		}

	case TApp:
		switch a := arg.(type) {
		case TVar:
			return Ambiguous
		case TCon:
			return NoMatch
		case TApp:
			if len(h.Args) != len(a.Args) {
				return NoMatch
			}
			result := MatchInto(h.Constructor, a.Constructor, subst)
			if result == NoMatch {
				return NoMatch
			}
			for i := range h.Args {
				result = result.Combine(MatchInto(h.Args[i], a.Args[i], subst))
				if result == NoMatch {
					return NoMatch
				}
			}
			return result
		}
	}
	return NoMatch
}
