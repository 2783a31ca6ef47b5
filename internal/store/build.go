package store

import (
	"fmt"

	"github.com/funvibe/typeclass/internal/decl"
	"github.com/funvibe/typeclass/internal/typesystem"
)

// Build assembles and validates the snapshot from collected declarations.
// The first well-formedness violation aborts the build: an ill-formed
// program is rejected before any resolution runs.
func Build(modules []decl.ModuleDecl) (*Store, error) {
	s := &Store{
		classIndex:    make(map[string]ClassID),
		instanceIndex: make(map[string]InstanceID),
		chains:        make(map[ClassID][][]InstanceID),
		typeModules:   make(map[string]string),
	}

	// Pass 1: intern modules, types and class names. Classes may refer
	// to classes and types declared later or elsewhere, so bodies are
	// resolved in pass 2.
	for _, mod := range modules {
		s.modules = append(s.modules, mod.Name)
		for _, td := range mod.Types {
			if owner, ok := s.typeModules[td.Name]; ok {
				return nil, fmt.Errorf("type %s declared in both %s and %s", td.Name, owner, mod.Name)
			}
			s.typeModules[td.Name] = mod.Name
		}
		for _, cd := range mod.Classes {
			if _, ok := s.classIndex[cd.Name]; ok {
				return nil, fmt.Errorf("class %s declared more than once", cd.Name)
			}
			id := ClassID(len(s.classes))
			s.classIndex[cd.Name] = id
			s.classes = append(s.classes, Class{
				ID:     id,
				Name:   cd.Name,
				Module: mod.Name,
				Params: cd.Params,
			})
		}
	}

	// Pass 2: resolve superclass references and functional dependencies.
	for _, mod := range modules {
		for _, cd := range mod.Classes {
			cls := &s.classes[s.classIndex[cd.Name]]
			if err := s.resolveSupers(cls, cd); err != nil {
				return nil, err
			}
			if err := resolveFunDeps(cls, cd); err != nil {
				return nil, err
			}
		}
	}

	if err := s.detectSuperclassCycles(); err != nil {
		return nil, err
	}

	// Pass 3: admit instances, assemble chains, check orphans.
	for _, mod := range modules {
		if err := s.admitInstances(mod); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *Store) resolveSupers(cls *Class, cd decl.ClassDecl) error {
	paramIndex := make(map[string]int, len(cd.Params))
	for i, p := range cd.Params {
		if _, ok := paramIndex[p]; ok {
			return fmt.Errorf("class %s: duplicate parameter %s", cd.Name, p)
		}
		paramIndex[p] = i
	}

	for _, sup := range cd.Supers {
		supID, ok := s.classIndex[sup.Class]
		if !ok {
			return fmt.Errorf("class %s: unknown superclass %s", cd.Name, sup.Class)
		}
		supCls := &s.classes[supID]
		if len(sup.Params) != supCls.Arity() {
			return fmt.Errorf("class %s: superclass %s expects %d parameters, got %d", cd.Name, sup.Class, supCls.Arity(), len(sup.Params))
		}
		indices := make([]int, len(sup.Params))
		for i, p := range sup.Params {
			idx, ok := paramIndex[p]
			if !ok {
				return fmt.Errorf("class %s: superclass %s mentions unknown parameter %s", cd.Name, sup.Class, p)
			}
			indices[i] = idx
		}
		cls.Supers = append(cls.Supers, Superclass{Class: supID, ArgIndices: indices})
	}
	return nil
}

func resolveFunDeps(cls *Class, cd decl.ClassDecl) error {
	paramIndex := make(map[string]int, len(cls.Params))
	for i, p := range cls.Params {
		paramIndex[p] = i
	}

	determined := make(map[int]string) // param index -> first determining dep, for conflict reporting
	for di, fd := range cd.FunDeps {
		if len(fd.From) == 0 || len(fd.To) == 0 {
			return fmt.Errorf("class %s: functional dependency %d has an empty side", cls.Name, di)
		}
		dep := FunDep{}
		fromSet := make(map[int]bool)
		for _, p := range fd.From {
			idx, ok := paramIndex[p]
			if !ok {
				return fmt.Errorf("class %s: functional dependency mentions unknown parameter %s", cls.Name, p)
			}
			dep.From = append(dep.From, idx)
			fromSet[idx] = true
		}
		for _, p := range fd.To {
			idx, ok := paramIndex[p]
			if !ok {
				return fmt.Errorf("class %s: functional dependency mentions unknown parameter %s", cls.Name, p)
			}
			// An output feeding its own input cannot converge in one
			// resolution step.
			if fromSet[idx] {
				return NewFunctionalDependencyCycleError(cls.Name, p)
			}
			if _, dup := determined[idx]; dup {
				return NewFunctionalDependencyConflictError(cls.Name, p)
			}
			determined[idx] = p
			dep.To = append(dep.To, idx)
		}
		cls.FunDeps = append(cls.FunDeps, dep)
	}
	return nil
}

func (s *Store) admitInstances(mod decl.ModuleDecl) error {
	// The chain an `else instance` continues is the one opened by the
	// directly preceding instance of the same class in this module.
	var prev *Instance

	for _, id := range mod.Instances {
		cls, ok := s.Class(id.Class)
		if !ok {
			return fmt.Errorf("module %s: instance %s for unknown class %s", mod.Name, id.Name, id.Class)
		}
		if len(id.Head) != cls.Arity() {
			return fmt.Errorf("module %s: instance %s: class %s expects %d arguments, got %d", mod.Name, id.Name, cls.Name, cls.Arity(), len(id.Head))
		}

		head, err := decl.ParseTypes(id.Head)
		if err != nil {
			return fmt.Errorf("module %s: instance %s: %v", mod.Name, id.Name, err)
		}
		if err := s.checkHeadTypes(mod.Name, id.Name, head); err != nil {
			return err
		}

		constraints := make([]typesystem.Constraint, 0, len(id.Constraints))
		headVars := headVarNames(head)
		for _, cd := range id.Constraints {
			c, err := decl.ParseConstraint(cd)
			if err != nil {
				return fmt.Errorf("module %s: instance %s: %v", mod.Name, id.Name, err)
			}
			if _, ok := s.classIndex[c.Class]; !ok {
				return fmt.Errorf("module %s: instance %s: prerequisite names unknown class %s", mod.Name, id.Name, c.Class)
			}
			for _, arg := range c.Args {
				for _, v := range arg.FreeTypeVariables() {
					if !headVars[v.Name] {
						return fmt.Errorf("module %s: instance %s: prerequisite mentions variable %s not bound by the head", mod.Name, id.Name, v.Name)
					}
				}
			}
			constraints = append(constraints, c)
		}

		if _, ok := s.instanceIndex[id.Name]; ok {
			return fmt.Errorf("instance %s declared more than once", id.Name)
		}

		inst := Instance{
			ID:          InstanceID(len(s.instances)),
			Name:        id.Name,
			Class:       cls.ID,
			Module:      mod.Name,
			Head:        head,
			Constraints: constraints,
		}

		if err := s.checkOrphan(&inst, cls); err != nil {
			return err
		}

		chains := s.chains[cls.ID]
		if id.Else {
			if prev == nil || prev.Class != cls.ID {
				return fmt.Errorf("module %s: else instance %s does not follow an instance of class %s", mod.Name, id.Name, cls.Name)
			}
			inst.Chain = prev.Chain
			inst.Pos = prev.Pos + 1
			chains[inst.Chain] = append(chains[inst.Chain], inst.ID)
		} else {
			if err := s.checkOverlap(cls, &inst); err != nil {
				return err
			}
			inst.Chain = len(chains)
			inst.Pos = 0
			chains = append(chains, []InstanceID{inst.ID})
		}
		s.chains[cls.ID] = chains

		s.instanceIndex[inst.Name] = inst.ID
		s.instances = append(s.instances, inst)
		prev = &s.instances[len(s.instances)-1]
	}
	return nil
}

// checkHeadTypes rejects heads mentioning constructors no module defines;
// an undefined constructor could never license the instance under the
// orphan rule and signals a missing declaration.
func (s *Store) checkHeadTypes(module, instance string, head []typesystem.Type) error {
	var walk func(t typesystem.Type) error
	walk = func(t typesystem.Type) error {
		switch typ := t.(type) {
		case typesystem.TCon:
			if _, ok := s.typeModules[typ.Name]; !ok {
				return fmt.Errorf("module %s: instance %s: unknown type %s in head", module, instance, typ.Name)
			}
		case typesystem.TApp:
			if err := walk(typ.Constructor); err != nil {
				return err
			}
			for _, arg := range typ.Args {
				if err := walk(arg); err != nil {
					return err
				}
			}
		}
		return nil
	}
	for _, h := range head {
		if err := walk(h); err != nil {
			return err
		}
	}
	return nil
}

// checkOverlap rejects a new chain opening with the same head shape as
// any instance already admitted for the class. Within one chain,
// declaration order arbitrates between overlapping heads; across chains
// nothing does, so identical shapes are ill-formed.
func (s *Store) checkOverlap(cls *Class, inst *Instance) error {
	key := canonicalHead(inst.Head)
	for _, chain := range s.chains[cls.ID] {
		for _, id := range chain {
			existing := s.Instance(id)
			if canonicalHead(existing.Head) == key {
				return NewOverlappingInstanceError(cls.Name, existing.Name, inst.Name)
			}
		}
	}
	return nil
}

// canonicalHead renders a head with variables numbered by first
// occurrence, so alpha-equivalent heads compare equal.
func canonicalHead(head []typesystem.Type) string {
	rename := typesystem.Subst{}
	counter := 0
	key := ""
	for _, h := range head {
		for _, v := range h.FreeTypeVariables() {
			if _, ok := rename[v.Name]; !ok {
				rename[v.Name] = typesystem.TVar{Name: fmt.Sprintf("$%d", counter)}
				counter++
			}
		}
		key += h.Apply(rename).String() + ";"
	}
	return key
}

func headVarNames(head []typesystem.Type) map[string]bool {
	names := make(map[string]bool)
	for _, h := range head {
		for _, v := range h.FreeTypeVariables() {
			names[v.Name] = true
		}
	}
	return names
}
