package solver

import (
	"errors"
	"testing"

	"github.com/funvibe/typeclass/internal/decl"
	"github.com/funvibe/typeclass/internal/store"
	"github.com/funvibe/typeclass/internal/typesystem"
)

func fixtureModules() []decl.ModuleDecl {
	return []decl.ModuleDecl{
		{
			Name: "data.show",
			Types: []decl.TypeDecl{
				{Name: "String"},
				{Name: "Boolean"},
				{Name: "Int"},
				{Name: "CustomType"},
				{Name: "List", Arity: 1},
				{Name: "Tuple", Arity: 2},
			},
			Classes: []decl.ClassDecl{
				{Name: "MyShow", Params: []string{"a"}},
				{Name: "PairShow", Params: []string{"a"}},
				{Name: "ListShow", Params: []string{"a"}},
			},
			Instances: []decl.InstanceDecl{
				{Name: "myShowString", Class: "MyShow", Head: []string{"String"}},
				{Name: "myShowBoolean", Class: "MyShow", Head: []string{"Boolean"}, Else: true},
				{Name: "myShowDefault", Class: "MyShow", Head: []string{"a"}, Else: true},

				{Name: "pairShowTupleString", Class: "PairShow", Head: []string{"Tuple<String, a>"}},
				{Name: "pairShowDefault", Class: "PairShow", Head: []string{"b"}, Else: true},

				{Name: "listShowString", Class: "ListShow", Head: []string{"String"}},
				{
					Name:  "listShowList",
					Class: "ListShow",
					Head:  []string{"List<a>"},
					Constraints: []decl.ConstraintDecl{
						{Class: "ListShow", Args: []string{"a"}},
					},
				},
			},
		},
		{
			Name: "control.monad",
			Classes: []decl.ClassDecl{
				{Name: "Applicative", Params: []string{"m"}},
				{Name: "Monad", Params: []string{"m"}, Supers: []decl.SuperDecl{
					{Class: "Applicative", Params: []string{"m"}},
				}},
				{Name: "MonadFail", Params: []string{"m"}, Supers: []decl.SuperDecl{
					{Class: "Monad", Params: []string{"m"}},
				}},
			},
		},
		{
			Name: "data.typeequals",
			Classes: []decl.ClassDecl{
				{Name: "TypeEquals", Params: []string{"a", "b"}, FunDeps: []decl.FunDepDecl{
					{From: []string{"a"}, To: []string{"b"}},
					{From: []string{"b"}, To: []string{"a"}},
				}},
			},
			Instances: []decl.InstanceDecl{
				{Name: "teIntString", Class: "TypeEquals", Head: []string{"Int", "String"}},
			},
		},
		{
			Name:    "control.loop",
			Classes: []decl.ClassDecl{{Name: "Loop", Params: []string{"a"}}},
			Instances: []decl.InstanceDecl{
				{
					Name:  "loopList",
					Class: "Loop",
					Head:  []string{"List<a>"},
					Constraints: []decl.ConstraintDecl{
						{Class: "Loop", Args: []string{"List<a>"}},
					},
				},
			},
		},
	}
}

func buildFixture(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Build(fixtureModules())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return s
}

func mustType(t *testing.T, src string) typesystem.Type {
	t.Helper()
	typ, err := decl.ParseType(src)
	if err != nil {
		t.Fatalf("ParseType(%q) failed: %v", src, err)
	}
	return typ
}

func constraint(t *testing.T, class string, args ...string) typesystem.Constraint {
	t.Helper()
	c := typesystem.Constraint{Class: class}
	for _, a := range args {
		c.Args = append(c.Args, mustType(t, a))
	}
	return c
}

func TestResolveChainOrder(t *testing.T) {
	r := New(buildFixture(t))

	tests := []struct {
		arg  string
		want string
	}{
		{arg: "String", want: "myShowString"},
		{arg: "Boolean", want: "myShowBoolean"},
		{arg: "CustomType", want: "myShowDefault"},
		{arg: "List<Int>", want: "myShowDefault"},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			sol, err := r.Resolve(constraint(t, "MyShow", tt.arg), nil)
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			if sol.Instance == nil || sol.Instance.Name != tt.want {
				t.Errorf("resolved %v, want %s", sol.Instance, tt.want)
			}
		})
	}
}

func TestAmbiguityPoisonsChain(t *testing.T) {
	r := New(buildFixture(t))

	// Tuple<l, r> with both sides unknown: the Tuple<String, a> entry
	// might apply once l is instantiated, so the catch-all after it must
	// not be chosen.
	_, err := r.Resolve(constraint(t, "PairShow", "Tuple<l, r>"), nil)
	var ambiguous *AmbiguousInstanceError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("Resolve = %v, want AmbiguousInstanceError", err)
	}
	if ambiguous.Blocking != "pairShowTupleString" {
		t.Errorf("blocking instance = %s, want pairShowTupleString", ambiguous.Blocking)
	}

	// Concrete first component picks the chain entry normally.
	sol, err := r.Resolve(constraint(t, "PairShow", "Tuple<String, Int>"), nil)
	if err != nil || sol.Instance.Name != "pairShowTupleString" {
		t.Errorf("Resolve = %v, %v, want pairShowTupleString", sol, err)
	}

	// A head that cannot match at all falls through to the catch-all.
	sol, err = r.Resolve(constraint(t, "PairShow", "Tuple<Int, Int>"), nil)
	if err != nil || sol.Instance.Name != "pairShowDefault" {
		t.Errorf("Resolve = %v, %v, want pairShowDefault", sol, err)
	}
}

func TestAmbiguityMessageMatchesAbsence(t *testing.T) {
	c := constraint(t, "PairShow", "Tuple<l, r>")
	ambiguous := NewAmbiguousInstanceError(c, "pairShowTupleString")
	absent := NewNoInstanceFoundError(c)
	if ambiguous.Error() != absent.Error() {
		t.Errorf("user-facing messages differ: %q vs %q", ambiguous.Error(), absent.Error())
	}
}

func TestSuperclassDischarge(t *testing.T) {
	r := New(buildFixture(t))
	given := constraint(t, "MonadFail", "m")

	// Applicative<m> has no chain at all; the MonadFail given reaches it
	// through Monad.
	sol, err := r.Resolve(constraint(t, "Applicative", "m"), []typesystem.Constraint{given})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if sol.Given == nil || sol.Given.Class != "MonadFail" {
		t.Fatalf("solution not discharged from the given: %+v", sol)
	}
	if len(sol.SuperPath) != 2 {
		t.Errorf("superclass path length = %d, want 2", len(sol.SuperPath))
	}

	// A given for the class itself discharges directly.
	sol, err = r.Resolve(constraint(t, "Monad", "m"), []typesystem.Constraint{constraint(t, "Monad", "m")})
	if err != nil || sol.Given == nil || len(sol.SuperPath) != 0 {
		t.Errorf("direct given discharge = %+v, %v", sol, err)
	}

	// The given's argument must line up with the constraint's.
	_, err = r.Resolve(constraint(t, "Applicative", "n"), []typesystem.Constraint{given})
	var notFound *NoInstanceFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("Resolve = %v, want NoInstanceFoundError", err)
	}

	// Without any given there is nothing to discharge from.
	_, err = r.Resolve(constraint(t, "Applicative", "m"), nil)
	if !errors.As(err, &notFound) {
		t.Errorf("Resolve = %v, want NoInstanceFoundError", err)
	}
}

func TestFunctionalDependencyPropagation(t *testing.T) {
	r := New(buildFixture(t))

	// Left known: the dependency a -> b selects the instance and fixes t.
	sol, err := r.Resolve(constraint(t, "TypeEquals", "Int", "t"), nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if sol.Instance.Name != "teIntString" {
		t.Fatalf("resolved %s, want teIntString", sol.Instance.Name)
	}
	if got, ok := sol.Subst["t"]; !ok || got.String() != "String" {
		t.Errorf("t bound to %v, want String", got)
	}

	// Right known: b -> a works symmetrically.
	sol, err = r.Resolve(constraint(t, "TypeEquals", "u", "String"), nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got, ok := sol.Subst["u"]; !ok || got.String() != "Int" {
		t.Errorf("u bound to %v, want Int", got)
	}

	// Neither known: nothing determines anything, genuinely ambiguous.
	_, err = r.Resolve(constraint(t, "TypeEquals", "u", "t"), nil)
	var ambiguous *AmbiguousInstanceError
	if !errors.As(err, &ambiguous) {
		t.Errorf("Resolve = %v, want AmbiguousInstanceError", err)
	}

	// Known determiner that matches but a determined side that cannot.
	_, err = r.Resolve(constraint(t, "TypeEquals", "Int", "Boolean"), nil)
	var notFound *NoInstanceFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("Resolve = %v, want NoInstanceFoundError", err)
	}
}

func TestPrerequisiteResolution(t *testing.T) {
	r := New(buildFixture(t))

	sol, err := r.Resolve(constraint(t, "ListShow", "List<String>"), nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if sol.Instance.Name != "listShowList" {
		t.Fatalf("resolved %s, want listShowList", sol.Instance.Name)
	}
	if len(sol.Prereqs) != 1 {
		t.Fatalf("got %d prerequisites, want 1", len(sol.Prereqs))
	}
	if sol.Prereqs[0].Instance.Name != "listShowString" {
		t.Errorf("prerequisite resolved %s, want listShowString", sol.Prereqs[0].Instance.Name)
	}

	// Nested prerequisites recurse.
	sol, err = r.Resolve(constraint(t, "ListShow", "List<List<String>>"), nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if sol.Prereqs[0].Instance.Name != "listShowList" {
		t.Errorf("inner prerequisite resolved %s, want listShowList", sol.Prereqs[0].Instance.Name)
	}

	// An unsatisfiable prerequisite fails the whole call.
	_, err = r.Resolve(constraint(t, "ListShow", "List<Int>"), nil)
	var notFound *NoInstanceFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Resolve = %v, want NoInstanceFoundError", err)
	}
	if notFound.Constraint.String() != "ListShow<Int>" {
		t.Errorf("failure names %s, want the prerequisite ListShow<Int>", notFound.Constraint)
	}
}

func TestResolutionDepthLimit(t *testing.T) {
	r := New(buildFixture(t), WithMaxDepth(8))

	_, err := r.Resolve(constraint(t, "Loop", "List<Int>"), nil)
	var depth *DepthExceededError
	if !errors.As(err, &depth) {
		t.Fatalf("Resolve = %v, want DepthExceededError", err)
	}

	// The failure type stays distinct from plain absence.
	var notFound *NoInstanceFoundError
	if errors.As(err, &notFound) {
		t.Errorf("depth failure should not read as NoInstanceFound")
	}
}

func TestResolutionFailuresAreRecoverable(t *testing.T) {
	r := New(buildFixture(t))

	if _, err := r.Resolve(constraint(t, "Applicative", "m"), nil); err == nil {
		t.Fatal("expected a failure")
	}
	// An unresolved constraint must not corrupt the store for later calls.
	sol, err := r.Resolve(constraint(t, "MyShow", "String"), nil)
	if err != nil || sol.Instance.Name != "myShowString" {
		t.Errorf("Resolve after failure = %v, %v", sol, err)
	}
}

func TestResolveUnknownClass(t *testing.T) {
	r := New(buildFixture(t))
	_, err := r.Resolve(constraint(t, "Ghost", "Int"), nil)
	var notFound *NoInstanceFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("Resolve = %v, want NoInstanceFoundError", err)
	}
}
