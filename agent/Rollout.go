package agent

import (
	"github.com/samuelfneumann/gridlearn/mdp"
)

// Episode is the trajectory of a rollout
type Episode struct {
	States   []mdp.State // Visited states, including the start
	Actions  []mdp.Action
	Rewards  []float64
	Return   float64 // Undiscounted
	Terminal bool    // Whether a terminal state was reached
}

// Steps returns the number of transitions in the episode
func (e Episode) Steps() int {
	return len(e.Actions)
}

// Rollout follows policy p in model m from start for at most maxSteps
// transitions. The rollout stops early at a terminal state or at a
// state in which p has no action.
func Rollout(m *mdp.Model, p Policy, start mdp.State, maxSteps int) Episode {
	ep := Episode{States: []mdp.State{start}}

	s := start
	for len(ep.Actions) < maxSteps {
		if m.IsTerminal(s) {
			ep.Terminal = true
			break
		}
		a, ok := p.Action(s)
		if !ok {
			break
		}

		next, r := m.Step(s, a)
		ep.States = append(ep.States, next)
		ep.Actions = append(ep.Actions, a)
		ep.Rewards = append(ep.Rewards, r)
		ep.Return += r
		s = next
	}
	ep.Terminal = ep.Terminal || m.IsTerminal(s)

	return ep
}
