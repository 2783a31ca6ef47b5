// Package decl defines the structured declaration records the resolution
// engine consumes. An external declaration-collection pass (the parser of
// class / instance / else instance / derive instance forms) produces these
// records; the engine never reads source text itself. A YAML encoding of
// the same records is provided for fixtures and the command line tool.
package decl

// File is the top-level content of one declaration file.
type File struct {
	// Modules lists the declared modules in order.
	Modules []ModuleDecl `yaml:"modules"`

	// Checks lists constraints to resolve after loading. Used by the
	// command line tool and functional tests, ignored by the loader.
	Checks []CheckDecl `yaml:"checks,omitempty"`
}

// ModuleDecl declares one module with everything it defines.
type ModuleDecl struct {
	Name      string         `yaml:"module"`
	Types     []TypeDecl     `yaml:"types,omitempty"`
	Classes   []ClassDecl    `yaml:"classes,omitempty"`
	Instances []InstanceDecl `yaml:"instances,omitempty"`
}

// TypeDecl declares a nominal type constructor owned by its module.
// Only the name matters for orphan checking; arity is kept for
// diagnostics.
type TypeDecl struct {
	Name  string `yaml:"name"`
	Arity int    `yaml:"arity,omitempty"`
}

// ClassDecl declares a class: ordered parameter slots, superclass
// constraints and functional dependencies.
type ClassDecl struct {
	Name    string       `yaml:"name"`
	Params  []string     `yaml:"params"`
	Supers  []SuperDecl  `yaml:"supers,omitempty"`
	FunDeps []FunDepDecl `yaml:"fundeps,omitempty"`
}

// SuperDecl is a superclass constraint of a class declaration. Params
// names a subsequence or permutation of the declaring class's parameters,
// in superclass parameter order.
type SuperDecl struct {
	Class  string   `yaml:"class"`
	Params []string `yaml:"params"`
}

// FunDepDecl is a functional dependency (from -> to), both sides naming
// parameters of the declaring class.
type FunDepDecl struct {
	From []string `yaml:"from"`
	To   []string `yaml:"to"`
}

// InstanceDecl declares one instance. Head entries are type expressions
// in the surface syntax (e.g. "List<a>", lowercase names are variables).
// Else marks an `else instance` continuing the chain opened by the
// closest preceding instance of the same class in the same module.
type InstanceDecl struct {
	Name        string           `yaml:"name,omitempty"`
	Class       string           `yaml:"class"`
	Head        []string         `yaml:"head"`
	Constraints []ConstraintDecl `yaml:"constraints,omitempty"`
	Else        bool             `yaml:"else,omitempty"`
}

// ConstraintDecl is a class application in declaration syntax, used both
// for instance prerequisites and for check givens.
type ConstraintDecl struct {
	Class string   `yaml:"class"`
	Args  []string `yaml:"args"`
}

// CheckDecl is a constraint-resolution request: resolve Class applied to
// Args with the given ambient evidence in scope. Want optionally names
// the expected outcome for fixture assertions: the resolved instance
// name, or one of "no-instance", "ambiguous", "depth-exceeded".
type CheckDecl struct {
	Class  string           `yaml:"class"`
	Args   []string         `yaml:"args"`
	Givens []ConstraintDecl `yaml:"givens,omitempty"`
	Want   string           `yaml:"want,omitempty"`
}
