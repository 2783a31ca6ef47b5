package store

import (
	"github.com/funvibe/typeclass/internal/typesystem"
)

// checkOrphan admits an instance iff its owning module defines the class,
// or defines the outermost constructor of at least one head argument.
// Anything else would let unrelated modules declare competing instances,
// breaking global uniqueness.
func (s *Store) checkOrphan(inst *Instance, cls *Class) error {
	if inst.Module == cls.Module {
		return nil
	}
	for _, h := range inst.Head {
		con, ok := typesystem.BaseConstructor(h)
		if !ok {
			continue // variable position, licenses nothing
		}
		if owner, ok := s.typeModules[con.Name]; ok && owner == inst.Module {
			return nil
		}
	}
	return NewOrphanInstanceError(inst.Name, cls.Name, inst.Module)
}
