// Package policyiteration implements tabular Policy Iteration over the
// states reachable from a start state
package policyiteration

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/mdp"
)

// PolicyIteration alternates iterative policy evaluation and greedy
// policy improvement until the policy is stable
type PolicyIteration struct {
	model  *mdp.Model
	config Config
	logger zerolog.Logger

	iterations int
	stable     bool
}

// New creates a new PolicyIteration solver
func New(m *mdp.Model, c Config) (*PolicyIteration, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}
	return &PolicyIteration{model: m, config: c, logger: zerolog.Nop()}, nil
}

// SetLogger sets the logger that progress is reported to
func (p *PolicyIteration) SetLogger(l zerolog.Logger) {
	p.logger = l
}

// Iterations returns the number of improvement steps of the last run
func (p *PolicyIteration) Iterations() int {
	return p.iterations
}

// Stable returns whether the policy of the last run stopped changing
// before the iteration cap
func (p *PolicyIteration) Stable() bool {
	return p.stable
}

// Run runs Policy Iteration over the states reachable from start. The
// initial policy takes the first action everywhere. Terminal states
// have value 0 and the action Stay.
func (p *PolicyIteration) Run(start mdp.State) (agent.Policy, agent.Values,
	error) {
	if !p.model.Valid(start) {
		return nil, nil, fmt.Errorf("run: invalid start state %v", start)
	}

	states, complete := mdp.Reachable(p.model, start, p.config.StateLimit)
	if !complete {
		p.logger.Warn().
			Int("limit", p.config.StateLimit).
			Msg("reachable state set capped")
	}

	first := p.model.Actions()[0]
	policy := make(agent.TabularPolicy, len(states))
	values := make(agent.Values, len(states))
	for _, s := range states {
		policy[s] = first
		values[s] = 0
	}

	p.iterations, p.stable = 0, false
	for p.iterations < p.config.MaxIterations {
		p.evaluate(states, policy, values)
		p.iterations++

		if p.improve(states, policy, values) {
			p.stable = true
			break
		}
	}

	for _, s := range states {
		if p.model.IsTerminal(s) {
			policy[s] = mdp.Stay
		}
	}

	if p.stable {
		p.logger.Debug().
			Int("iterations", p.iterations).
			Int("states", len(states)).
			Msg("policy iteration stable")
	} else {
		p.logger.Warn().
			Int("iterations", p.iterations).
			Msg("policy iteration reached iteration cap")
	}

	return policy, values, nil
}

// evaluate sweeps the Bellman expectation backup of policy in place
// until the largest change is below Theta
func (p *PolicyIteration) evaluate(states []mdp.State,
	policy agent.TabularPolicy, values agent.Values) {
	for sweep := 0; sweep < p.config.MaxEvaluationSweeps; sweep++ {
		delta := 0.0
		for _, s := range states {
			if p.model.IsTerminal(s) {
				continue
			}

			old := values[s]
			next, r := p.model.Step(s, policy[s])
			values[s] = r + p.config.Gamma*values.Get(next)
			delta = math.Max(delta, math.Abs(old-values[s]))
		}

		if delta < p.config.Theta {
			return
		}
	}
	p.logger.Warn().
		Int("sweeps", p.config.MaxEvaluationSweeps).
		Msg("policy evaluation reached sweep cap")
}

// improve makes policy greedy with respect to values, keeping the
// current action of a state unless another is strictly better. It
// returns whether the policy is unchanged.
func (p *PolicyIteration) improve(states []mdp.State,
	policy agent.TabularPolicy, values agent.Values) bool {
	stable := true
	for _, s := range states {
		if p.model.IsTerminal(s) {
			continue
		}

		current := policy[s]
		best, bestValue := current, p.lookahead(s, current, values)
		for _, a := range p.model.Actions() {
			if v := p.lookahead(s, a, values); v > bestValue {
				best, bestValue = a, v
			}
		}

		if best != current {
			policy[s] = best
			stable = false
		}
	}
	return stable
}

func (p *PolicyIteration) lookahead(s mdp.State, a mdp.Action,
	values agent.Values) float64 {
	next, r := p.model.Step(s, a)
	return r + p.config.Gamma*values.Get(next)
}
