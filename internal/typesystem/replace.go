package typesystem

// RenameTypeVars renames type variables to avoid collisions during matching.
// Renaming is deterministic, so separate calls with the same suffix produce
// consistent names across an instance head and its constraints.
func RenameTypeVars(t Type, suffix string) Type {
	vars := t.FreeTypeVariables()
	subst := make(Subst)
	for _, v := range vars {
		subst[v.Name] = TVar{Name: v.Name + "_" + suffix}
	}
	return t.Apply(subst)
}
