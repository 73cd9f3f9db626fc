package mdp

// DefaultStateLimit is the default cap on the number of states
// discovered by Reachable
const DefaultStateLimit = 20000

// Reachable expands a breadth-first frontier from start, returning the
// discovered states in discovery order. Terminal states are recorded but
// not expanded.
//
// Exploration stops once limit states have been discovered; if limit is
// not positive, DefaultStateLimit is used. The boolean return value
// reports whether the frontier was exhausted. A false value is not an
// error: callers work on the partial set.
func Reachable(m *Model, start State, limit int) ([]State, bool) {
	if limit <= 0 {
		limit = DefaultStateLimit
	}

	visited := map[State]bool{start: true}
	states := []State{start}

	for i := 0; i < len(states); i++ {
		s := states[i]
		if m.IsTerminal(s) {
			continue
		}
		for _, a := range actions {
			next, _ := m.Step(s, a)
			if visited[next] {
				continue
			}
			if len(states) >= limit {
				return states, false
			}
			visited[next] = true
			states = append(states, next)
		}
	}
	return states, true
}
