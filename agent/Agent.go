// Package agent defines the interfaces of tabular solvers and the
// registry used to construct them from configuration files
package agent

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/samuelfneumann/gridlearn/experiment/tracker"
	"github.com/samuelfneumann/gridlearn/mdp"
)

// Solver computes a policy and state values for an MDP, either by
// planning with the model or by learning from simulated episodes
type Solver interface {
	// Run solves the MDP from the start state. An error is returned
	// only if the start state is not a valid state of the model.
	Run(start mdp.State) (Policy, Values, error)
}

// Policy maps states to actions. The boolean return value is false
// when the policy has no action for a state, in which case a rollout
// following the policy should stop.
type Policy interface {
	Action(s mdp.State) (mdp.Action, bool)
}

// Logger is a Solver that reports its progress to a logger
type Logger interface {
	Solver
	SetLogger(zerolog.Logger)
}

// Learner is a Solver that learns from episodes, emitting a TimeStep
// to each registered Tracker on every transition
type Learner interface {
	Solver
	Register(tracker.Tracker)
}

// TabularPolicy is a deterministic Policy stored as a table
type TabularPolicy map[mdp.State]mdp.Action

// Action returns the action of the policy in state s
func (p TabularPolicy) Action(s mdp.State) (mdp.Action, bool) {
	a, ok := p[s]
	return a, ok
}

// Values maps states to their estimated values
type Values map[mdp.State]float64

// Get returns the value of state s, or 0 if s has no value
func (v Values) Get(s mdp.State) float64 {
	return v[s]
}

// String returns the values sorted by state
func (v Values) String() string {
	lines := make([]string, 0, len(v))
	for s, value := range v {
		lines = append(lines, fmt.Sprintf("%v: %.4f", s, value))
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n")
}
