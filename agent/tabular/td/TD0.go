package td

import (
	"fmt"

	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/mdp"
)

// TD0 implements TD(0) prediction:
//
//	V(s) += α (r + γ V(s') - V(s))
//
// States are given values once they are updated. Unvisited states,
// including terminal states, have value 0.
type TD0 struct {
	prediction
}

// NewTD0 creates a new TD(0) solver which evaluates a uniform random
// policy seeded with seed. Use SetPolicy to evaluate another policy.
func NewTD0(m *mdp.Model, c Config, seed uint64) (*TD0, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newTD0: %w", err)
	}
	return &TD0{newPrediction(m, c, seed)}, nil
}

// Run evaluates the policy from start. The returned Policy is the
// evaluated policy.
func (t *TD0) Run(start mdp.State) (agent.Policy, agent.Values, error) {
	if !t.model.Valid(start) {
		return nil, nil, fmt.Errorf("run: invalid start state %v", start)
	}
	t.run(start, t, "td(0)")
	return t.policy, t.values, nil
}

func (t *TD0) update(s, next mdp.State, r float64) {
	delta := r + t.config.Gamma*t.values.Get(next) - t.values.Get(s)
	t.values[s] += t.config.Alpha * delta
}

func (t *TD0) endEpisode() {}
