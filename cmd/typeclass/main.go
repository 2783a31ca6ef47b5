package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/funvibe/typeclass/internal/decl"
	"github.com/funvibe/typeclass/internal/diagnostics"
	"github.com/funvibe/typeclass/internal/solver"
	"github.com/funvibe/typeclass/internal/store"
	"github.com/funvibe/typeclass/internal/typesystem"
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	switch args[0] {
	case "check":
		os.Exit(runCheck(args[1:]))
	case "help", "-h", "--help":
		usage()
	default:
		// Bare file arguments behave like `check`.
		os.Exit(runCheck(args))
	}
}

func usage() {
	fmt.Println("Usage: typeclass check <file.yaml>...")
	fmt.Println()
	fmt.Println("Loads class/instance declarations, runs the load-time checks")
	fmt.Println("(orphans, superclass cycles, functional dependencies, overlap)")
	fmt.Println("and resolves every constraint listed under checks:.")
}

func runCheck(paths []string) int {
	reporter := diagnostics.NewReporter(os.Stdout)
	if len(paths) == 0 {
		reporter.Errorf("no declaration files given")
		return 2
	}

	var modules []decl.ModuleDecl
	var checks []decl.CheckDecl
	for _, path := range paths {
		f, err := decl.LoadFile(path)
		if err != nil {
			reporter.Errorf("%v", err)
			return 1
		}
		modules = append(modules, f.Modules...)
		checks = append(checks, f.Checks...)
	}

	st, err := store.Build(modules)
	if err != nil {
		reporter.Errorf("%v", err)
		return 1
	}
	reporter.Infof("loaded %d modules, %d instances", len(st.Modules()), st.InstanceCount())

	r := solver.New(st)
	failed := 0
	for _, check := range checks {
		constraint, givens, err := parseCheck(check)
		if err != nil {
			reporter.Errorf("%v", err)
			failed++
			continue
		}

		sol, rerr := r.Resolve(constraint, givens)
		got := outcomeOf(sol, rerr)

		if check.Want != "" && got != check.Want {
			reporter.Errorf("%s: got %s, want %s", constraint, got, check.Want)
			failed++
			continue
		}
		if rerr != nil && check.Want == "" {
			reporter.Errorf("%s: %v", constraint, rerr)
			failed++
			continue
		}
		reporter.Okf("%s -> %s", constraint, got)
	}

	if failed > 0 {
		reporter.Errorf("%d of %d checks failed", failed, len(checks))
		return 1
	}
	return 0
}

func parseCheck(check decl.CheckDecl) (typesystem.Constraint, []typesystem.Constraint, error) {
	args, err := decl.ParseTypes(check.Args)
	if err != nil {
		return typesystem.Constraint{}, nil, fmt.Errorf("check %s: %v", check.Class, err)
	}
	givens := make([]typesystem.Constraint, 0, len(check.Givens))
	for _, g := range check.Givens {
		c, err := decl.ParseConstraint(g)
		if err != nil {
			return typesystem.Constraint{}, nil, fmt.Errorf("check %s: %v", check.Class, err)
		}
		givens = append(givens, c)
	}
	return typesystem.Constraint{Class: check.Class, Args: args}, givens, nil
}

// outcomeOf names a resolution result the way checks: entries expect it:
// the resolved instance name, "given:<class>" for a discharge, or one of
// the failure words.
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
