package milp

// setObjective builds the weighted sum from spec.md §4.3 "Objective
// (maximize)": reward scheduled sections and satisfied preferences,
// penalize missed preferences and capacity overflow.
func (m *Model) setObjective(w Weights) {
	terms := make(map[VarRef]float64)

	for key, x := range m.x {
		_ = key
		terms[x] += w.Schedule
	}
	for _, y := range m.y {
		terms[y] += w.Preference
	}
	for _, miss := range m.miss {
		terms[miss] += -w.Miss
	}
	for _, capOver := range m.capOver {
		terms[capOver] += -w.CapOver
	}

	m.solver.SetObjective(terms, Maximize)
}
