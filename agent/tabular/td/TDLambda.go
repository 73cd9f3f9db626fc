package td

import (
	"fmt"

	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/mdp"
)

// TDLambda implements TD(λ) prediction with accumulating eligibility
// traces. On each transition the trace of the current state is
// incremented, every traced state is moved by α δ E(s), and all traces
// decay by γλ. Traces are reset at the start of each episode and
// dropped once they reach zero, so λ = 0 reproduces TD(0).
type TDLambda struct {
	prediction
	lambda float64
	traces map[mdp.State]float64
}

// NewTDLambda creates a new TD(λ) solver which evaluates a uniform
// random policy seeded with seed. Use SetPolicy to evaluate another
// policy.
func NewTDLambda(m *mdp.Model, c LambdaConfig, seed uint64) (*TDLambda,
	error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newTDLambda: %w", err)
	}
	return &TDLambda{
		prediction: newPrediction(m, c.td0(), seed),
		lambda:     c.Lambda,
		traces:     make(map[mdp.State]float64),
	}, nil
}

// Run evaluates the policy from start. The returned Policy is the
// evaluated policy.
func (t *TDLambda) Run(start mdp.State) (agent.Policy, agent.Values,
	error) {
	if !t.model.Valid(start) {
		return nil, nil, fmt.Errorf("run: invalid start state %v", start)
	}
	t.run(start, t, "td(λ)")
	return t.policy, t.values, nil
}

// Traces returns the number of states with a nonzero trace
func (t *TDLambda) Traces() int {
	return len(t.traces)
}

func (t *TDLambda) update(s, next mdp.State, r float64) {
	delta := r + t.config.Gamma*t.values.Get(next) - t.values.Get(s)
	t.traces[s]++

	decay := t.config.Gamma * t.lambda
	for x, e := range t.traces {
		t.values[x] += t.config.Alpha * delta * e
		if e *= decay; e == 0 {
			delete(t.traces, x)
		} else {
			t.traces[x] = e
		}
	}
}

func (t *TDLambda) endEpisode() {
	t.traces = make(map[mdp.State]float64)
}
