package tests

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/typeclass/internal/decl"
	"github.com/funvibe/typeclass/internal/solver"
	"github.com/funvibe/typeclass/internal/store"
	"github.com/funvibe/typeclass/internal/typesystem"
)

// TestFixtures loads every declaration file under fixtures/ and runs its
// checks. Files named *_invalid.yaml are expected to be rejected at load
// time.
func TestFixtures(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("fixtures", "*.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no fixture files found")
	}

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			f, err := decl.LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile failed: %v", err)
			}

			st, err := store.Build(f.Modules)
			if strings.HasSuffix(path, "_invalid.yaml") {
				if err == nil {
					t.Fatalf("Build accepted an invalid fixture")
				}
				return
			}
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}

			r := solver.New(st)
			for _, check := range f.Checks {
				args, err := decl.ParseTypes(check.Args)
				if err != nil {
					t.Fatalf("check %s: %v", check.Class, err)
				}
				var givens []typesystem.Constraint
				for _, g := range check.Givens {
					c, err := decl.ParseConstraint(g)
					if err != nil {
						t.Fatalf("check %s: %v", check.Class, err)
					}
					givens = append(givens, c)
				}

				c := typesystem.Constraint{Class: check.Class, Args: args}
				sol, rerr := r.Resolve(c, givens)
				if got := outcomeOf(sol, rerr); got != check.Want {
					t.Errorf("%s: got %s, want %s", c, got, check.Want)
				}
			}
		})
	}
}

func outcomeOf(sol *solver.Solution, err error) string {
	if err != nil {
		var ambiguous *solver.AmbiguousInstanceError
		var depth *solver.DepthExceededError
		switch {
		case errors.As(err, &ambiguous):
			return "ambiguous"
		case errors.As(err, &depth):
			return "depth-exceeded"
		default:
			return "no-instance"
		}
	}
	if sol.Instance != nil {
		return sol.Instance.Name
	}
	return "given:" + sol.Given.Class
}
