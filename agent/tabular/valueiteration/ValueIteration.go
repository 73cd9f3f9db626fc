// Package valueiteration implements tabular Value Iteration
package valueiteration

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"

	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/mdp"
)

// ValueIteration computes optimal state values by repeated in-place
// Bellman optimality sweeps over a fixed, ordered set of states, then
// extracts the greedy policy.
type ValueIteration struct {
	model  *mdp.Model
	config Config
	logger zerolog.Logger

	iterations int
	converged  bool
}

// New creates a new ValueIteration solver
func New(m *mdp.Model, c Config) (*ValueIteration, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}
	return &ValueIteration{model: m, config: c, logger: zerolog.Nop()}, nil
}

// SetLogger sets the logger that progress is reported to
func (v *ValueIteration) SetLogger(l zerolog.Logger) {
	v.logger = l
}

// Iterations returns the number of sweeps of the last run
func (v *ValueIteration) Iterations() int {
	return v.iterations
}

// Converged returns whether the last run converged before reaching the
// iteration cap
func (v *ValueIteration) Converged() bool {
	return v.converged
}

// Run runs Value Iteration. The values of successor states outside the
// swept set are taken to be 0. Terminal states have value 0 and the
// action Stay.
func (v *ValueIteration) Run(start mdp.State) (agent.Policy, agent.Values,
	error) {
	if !v.model.Valid(start) {
		return nil, nil, fmt.Errorf("run: invalid start state %v", start)
	}

	states := v.states(start)
	values := make(agent.Values, len(states))
	for _, s := range states {
		values[s] = 0
	}

	v.iterations, v.converged = 0, false
	for v.iterations < v.config.MaxIterations {
		delta := 0.0
		for _, s := range states {
			if v.model.IsTerminal(s) {
				continue
			}

			old := values[s]
			values[s] = floats.Max(v.actionValues(s, values))
			delta = math.Max(delta, math.Abs(old-values[s]))
		}
		v.iterations++

		if delta < v.config.Theta {
			v.converged = true
			break
		}
	}

	if v.converged {
		v.logger.Debug().
			Int("iterations", v.iterations).
			Int("states", len(states)).
			Msg("value iteration converged")
	} else {
		v.logger.Warn().
			Int("iterations", v.iterations).
			Msg("value iteration reached iteration cap")
	}

	return v.extract(states, values), values, nil
}

// actionValues returns the one-step lookahead value of each action in
// state s
func (v *ValueIteration) actionValues(s mdp.State, values agent.Values) []float64 {
	q := make([]float64, mdp.NumActions)
	for i, a := range v.model.Actions() {
		next, r := v.model.Step(s, a)
		q[i] = r + v.config.Gamma*values.Get(next)
	}
	return q
}

// extract returns the greedy policy with respect to values, breaking
// ties by action enumeration order
func (v *ValueIteration) extract(states []mdp.State,
	values agent.Values) agent.TabularPolicy {
	actions := v.model.Actions()
	policy := make(agent.TabularPolicy, len(states))
	for _, s := range states {
		if v.model.IsTerminal(s) {
			policy[s] = mdp.Stay
			continue
		}
		policy[s] = actions[floats.MaxIdx(v.actionValues(s, values))]
	}
	return policy
}

// states returns the states to sweep
func (v *ValueIteration) states(start mdp.State) []mdp.State {
	if v.config.StateSet == Enumerate {
		states, err := v.model.AllStates()
		if err == nil {
			return states
		}
		if !errors.Is(err, mdp.ErrStateSpaceTooLarge) {
			panic(fmt.Sprintf("states: %v", err))
		}
		v.logger.Warn().
			Int("limit", mdp.MaxEnumerable).
			Msg("state space too large to enumerate, sweeping reachable " +
				"states")
	}

	states, complete := mdp.Reachable(v.model, start, v.config.StateLimit)
	if !complete {
		v.logger.Warn().
			Int("limit", v.config.StateLimit).
			Msg("reachable state set capped")
	}
	return states
}
