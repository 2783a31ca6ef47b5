package typesystem

import (
	"fmt"
	"strings"
)

// Type is the interface for all types in our system.
//
// A resolver type is a tree over type variables and nominal constructor
// applications. Variables appearing in an instance head are bindable
// pattern variables; variables appearing in a constraint are existential
// unknowns of the use site.
type Type interface {
	String() string
	Apply(Subst) Type
	FreeTypeVariables() []TVar
}

// TVar represents a type variable (e.g. 'a', 'b', 't1').
type TVar struct {
	Name string
}

func (t TVar) String() string {
	return t.Name
}

func (t TVar) Apply(s Subst) Type {
	return ApplyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TVar) FreeTypeVariables() []TVar {
	return []TVar{t}
}

// TCon represents a nominal type constructor (e.g. Int, Bool, List).
type TCon struct {
	Name   string
	Module string // Optional defining module, used for diagnostics
}

func (t TCon) String() string {
	return t.Name
}

func (t TCon) Apply(s Subst) Type {
	return ApplyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TCon) FreeTypeVariables() []TVar {
	return []TVar{}
}

// TApp represents a type application (e.g. List<Int>).
type TApp struct {
	Constructor Type
	Args        []Type
}

func (t TApp) String() string {
	if len(t.Args) == 0 {
		return t.Constructor.String()
	}
	args := []string{}
	for _, arg := range t.Args {
		args = append(args, arg.String())
	}
	return fmt.Sprintf("%s<%s>", t.Constructor.String(), strings.Join(args, ", "))
}

func (t TApp) Apply(s Subst) Type {
	return ApplyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TApp) FreeTypeVariables() []TVar {
	vars := []TVar{}
	vars = append(vars, t.Constructor.FreeTypeVariables()...)
	for _, arg := range t.Args {
		vars = append(vars, arg.FreeTypeVariables()...)
	}
	return uniqueTVars(vars)
}

// ApplyWithCycleCheck applies substitution with cycle detection.
// This is the main entry point for substitution application.
func ApplyWithCycleCheck(t Type, s Subst, visited map[string]bool) Type {
	if t == nil {
		return nil
	}

	switch typ := t.(type) {
	case TVar:
		// Check for cycle
		if visited[typ.Name] {
			return typ // Break cycle - return the variable as-is
		}

		if replacement, ok := s[typ.Name]; ok {
			// Check for direct self-reference
			if tv, ok := replacement.(TVar); ok && tv.Name == typ.Name {
				return typ
			}
			// Mark as visited and recursively apply
			newVisited := copyVisited(visited)
			newVisited[typ.Name] = true
			return ApplyWithCycleCheck(replacement, s, newVisited)
		}
		return typ

	case TApp:
		newArgs := make([]Type, len(typ.Args))
		for i, arg := range typ.Args {
			newArgs[i] = ApplyWithCycleCheck(arg, s, visited)
		}
		newCtor := ApplyWithCycleCheck(typ.Constructor, s, visited)

		// Flatten nested TApp: if constructor is TApp, merge args
		// e.g. (Result<String>)<B> becomes Result<String, B>
		if ctorApp, ok := newCtor.(TApp); ok {
			mergedArgs := make([]Type, 0, len(ctorApp.Args)+len(newArgs))
			mergedArgs = append(mergedArgs, ctorApp.Args...)
			mergedArgs = append(mergedArgs, newArgs...)
			return TApp{
				Constructor: ctorApp.Constructor,
				Args:        mergedArgs,
			}
		}

		return TApp{
			Constructor: newCtor,
			Args:        newArgs,
		}

	case TCon:
		return typ // Constructors don't change

	default:
		return t.Apply(s)
	}
}

func copyVisited(m map[string]bool) map[string]bool {
	newMap := make(map[string]bool, len(m))
	for k, v := range m {
		newMap[k] = v
	}
	return newMap
}

func uniqueTVars(vars []TVar) []TVar {
	unique := []TVar{}
	seen := map[string]bool{}
	for _, v := range vars {
		if !seen[v.Name] {
			seen[v.Name] = true
			unique = append(unique, v)
		}
	}
	return unique
}

// Equal reports structural equality of two types.
func Equal(t1, t2 Type) bool {
	switch a := t1.(type) {
	case TVar:
		b, ok := t2.(TVar)
		return ok && a.Name == b.Name
	case TCon:
		b, ok := t2.(TCon)
		return ok && a.Name == b.Name
	case TApp:
		b, ok := t2.(TApp)
		if !ok || len(a.Args) != len(b.Args) {
			return false
		}
		if !Equal(a.Constructor, b.Constructor) {
			return false
		}
		for i := range a.Args {
			if !Equal(a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// HasFreeVariables reports whether t contains any type variable.
func HasFreeVariables(t Type) bool {
	return len(t.FreeTypeVariables()) > 0
}

// BaseConstructor returns the outermost constructor of t, unwrapping
// nested applications. Returns false for a bare variable or a
// variable-headed application.
func BaseConstructor(t Type) (TCon, bool) {
	switch typ := t.(type) {
	case TCon:
		return typ, true
	case TApp:
		return BaseConstructor(typ.Constructor)
	}
	return TCon{}, false
}

// Subst is a mapping from Type Variables to Types.
type Subst map[string]Type

// Compose combines two substitutions.
func (s1 Subst) Compose(s2 Subst) Subst {
	subst := Subst{}
	for k, v := range s2 {
		subst[k] = v
	}
	for k, v := range s1 {
		subst[k] = v.Apply(s2)
	}
	return subst
}

// Constraint is an obligation that an instance of Class exists for Args.
// Args may contain existential variables of the use site.
type Constraint struct {
	Class string
	Args  []Type
}

func (c Constraint) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", c.Class, strings.Join(args, ", "))
}

// Apply applies a substitution to every argument of the constraint.
func (c Constraint) Apply(s Subst) Constraint {
	newArgs := make([]Type, len(c.Args))
	for i, a := range c.Args {
		newArgs[i] = a.Apply(s)
	}
	return Constraint{Class: c.Class, Args: newArgs}
}
