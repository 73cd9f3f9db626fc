// Package qlearning implements tabular Q-learning with an ε-greedy
// behaviour policy
package qlearning

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/agent/tabular"
	"github.com/samuelfneumann/gridlearn/agent/tabular/policy"
	"github.com/samuelfneumann/gridlearn/environment"
	"github.com/samuelfneumann/gridlearn/experiment/tracker"
	"github.com/samuelfneumann/gridlearn/mdp"
	"github.com/samuelfneumann/gridlearn/timestep"
	"github.com/samuelfneumann/gridlearn/utils/floatutils"
)

// QLearning implements the Q-learning algorithm. The learned policy is
// greedy with respect to the action values and only acts in visited
// states.
type QLearning struct {
	model     *mdp.Model
	config    Config
	table     *tabular.QTable
	behaviour *policy.EGreedy
	ender     environment.Ender
	seed      uint64

	trackers tracker.Multi
	logger   zerolog.Logger
}

// New creates a new QLearning solver. Random actions are drawn from a
// source seeded with seed.
func New(m *mdp.Model, c Config, seed uint64) (*QLearning, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	q := &QLearning{
		model:  m,
		config: c,
		ender:  environment.NewStepLimit(c.MaxSteps),
		seed:   seed,
		logger: zerolog.Nop(),
	}
	if err := q.reset(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}
	return q, nil
}

// reset starts a new run with an empty QTable, the initial ε and a
// freshly seeded behaviour policy
func (q *QLearning) reset() error {
	table := tabular.NewQTable()
	behaviour, err := policy.NewEGreedy(q.config.Epsilon, table, q.seed)
	if err != nil {
		return err
	}
	q.table = table
	q.behaviour = behaviour
	return nil
}

// SetLogger sets the logger that progress is reported to
func (q *QLearning) SetLogger(l zerolog.Logger) {
	q.logger = l
}

// Register registers a Tracker to receive each TimeStep
func (q *QLearning) Register(t tracker.Tracker) {
	q.trackers = append(q.trackers, t)
}

// QTable returns the learned action values
func (q *QLearning) QTable() *tabular.QTable {
	return q.table
}

// Epsilon returns the current exploration probability
func (q *QLearning) Epsilon() float64 {
	return q.behaviour.Epsilon()
}

// Run runs Config.Episodes episodes of Q-learning from start
func (q *QLearning) Run(start mdp.State) (agent.Policy, agent.Values,
	error) {
	if !q.model.Valid(start) {
		return nil, nil, fmt.Errorf("run: invalid start state %v", start)
	}
	if err := q.reset(); err != nil {
		return nil, nil, fmt.Errorf("run: %w", err)
	}
	if q.model.IsTerminal(start) {
		q.logger.Warn().Msg("start state is terminal, nothing to learn")
		return q.table.Policy(), q.table.Values(), nil
	}

	timeouts := 0
	for i := 0; i < q.config.Episodes; i++ {
		if q.episode(start) == timestep.Timeout {
			timeouts++
		}

		epsilon := q.behaviour.Epsilon() * q.config.EpsilonDecay
		q.behaviour.SetEpsilon(floatutils.Clip(epsilon, q.config.MinEpsilon, 1))
	}

	q.logger.Debug().
		Int("episodes", q.config.Episodes).
		Int("timeouts", timeouts).
		Int("states", q.table.Len()).
		Float64("epsilon", q.behaviour.Epsilon()).
		Msg("q-learning finished")
	if timeouts == q.config.Episodes {
		q.logger.Warn().
			Int("maxSteps", q.config.MaxSteps).
			Msg("no episode reached a terminal state")
	}

	return q.table.Policy(), q.table.Values(), nil
}

// episode runs a single episode and returns the reason it ended
func (q *QLearning) episode(start mdp.State) timestep.EndType {
	gamma := q.config.Gamma
	s := start
	q.trackers.Track(timestep.New(timestep.First, 0, gamma, 0))

	for n := 1; ; n++ {
		a := q.behaviour.SelectAction(s)
		next, r := q.model.Step(s, a)

		target := r
		terminal := q.model.IsTerminal(next)
		if !terminal {
			target += gamma * q.table.Max(next)
		}
		old := q.table.Get(s, a)
		q.table.Set(s, a, old+q.config.Alpha*(target-old))

		step := timestep.New(timestep.Mid, r, gamma, n)
		if terminal {
			step.StepType = timestep.Last
			step.SetEnd(timestep.TerminalStateReached)
		} else {
			q.ender.End(&step)
		}
		q.trackers.Track(step)

		if step.Last() {
			return step.EndType()
		}
		s = next
	}
}
