package store

// detectSuperclassCycles rejects any class that is reachable from itself
// over superclass edges. Colors: 0 unvisited, 1 on stack, 2 done.
func (s *Store) detectSuperclassCycles() error {
	color := make([]int, len(s.classes))

	var visit func(id ClassID) error
	visit = func(id ClassID) error {
		switch color[id] {
		case 1:
			return NewSuperclassCycleError(s.classes[id].Name)
		case 2:
			return nil
		}
		color[id] = 1
		for _, sup := range s.classes[id].Supers {
			if err := visit(sup.Class); err != nil {
				return err
			}
		}
		color[id] = 2
		return nil
	}

	for id := range s.classes {
		if err := visit(ClassID(id)); err != nil {
			return err
		}
	}
	return nil
}
