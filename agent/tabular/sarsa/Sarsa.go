// Package sarsa implements tabular SARSA with an ε-greedy behaviour
// policy
package sarsa

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

// Sarsa implements the on-policy SARSA algorithm, bootstrapping from the
// action the behaviour policy takes next
type Sarsa struct {
	model     *mdp.Model
	config    Config
	table     *tabular.QTable
	behaviour *policy.EGreedy
	ender     environment.Ender
	seed      uint64

	trackers tracker.Multi
	logger   zerolog.Logger
}

// New creates a new Sarsa solver. Random actions are drawn from a
// source seeded with seed.
func New(m *mdp.Model, c Config, seed uint64) (*Sarsa, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	solver := &Sarsa{
		model:  m,
		config: c,
		ender:  environment.NewStepLimit(c.MaxSteps),
		seed:   seed,
		logger: zerolog.Nop(),
	}
	if err := solver.reset(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}
	return solver, nil
}

// reset starts a new run with an empty QTable, the initial ε and a
// freshly seeded behaviour policy
func (s *Sarsa) reset() error {
	table := tabular.NewQTable()
	behaviour, err := policy.NewEGreedy(s.config.Epsilon, table, s.seed)
	if err != nil {
		return err
	}
	s.table = table
	s.behaviour = behaviour
	return nil
}

// SetLogger sets the logger that progress is reported to
func (s *Sarsa) SetLogger(l zerolog.Logger) {
	s.logger = l
}

// Register registers a Tracker to receive each TimeStep
func (s *Sarsa) Register(t tracker.Tracker) {
	s.trackers = append(s.trackers, t)
}

// QTable returns the learned action values
func (s *Sarsa) QTable() *tabular.QTable {
	return s.table
}

// Epsilon returns the current exploration probability
func (s *Sarsa) Epsilon() float64 {
	return s.behaviour.Epsilon()
}

// Run runs Config.Episodes episodes of SARSA from start
func (s *Sarsa) Run(start mdp.State) (agent.Policy, agent.Values, error) {
	if !s.model.Valid(start) {
		return nil, nil, fmt.Errorf("run: invalid start state %v", start)
	}
	if err := s.reset(); err != nil {
		return nil, nil, fmt.Errorf("run: %w", err)
	}
	if s.model.IsTerminal(start) {
		s.logger.Warn().Msg("start state is terminal, nothing to learn")
		return s.table.Policy(), s.table.Values(), nil
	}

	timeouts := 0
	for i := 0; i < s.config.Episodes; i++ {
		if s.episode(start) == timestep.Timeout {
			timeouts++
		}

		epsilon := s.behaviour.Epsilon() * s.config.EpsilonDecay
		s.behaviour.SetEpsilon(floatutils.Clip(epsilon, s.config.MinEpsilon, 1))
	}

	s.logger.Debug().
		Int("episodes", s.config.Episodes).
		Int("timeouts", timeouts).
		Int("states", s.table.Len()).
		Float64("epsilon", s.behaviour.Epsilon()).
		Msg("sarsa finished")
	if timeouts == s.config.Episodes {
		s.logger.Warn().
			Int("maxSteps", s.config.MaxSteps).
			Msg("no episode reached a terminal state")
	}

	return s.table.Policy(), s.table.Values(), nil
}

// episode runs a single episode and returns the reason it ended
func (s *Sarsa) episode(start mdp.State) timestep.EndType {
	gamma := s.config.Gamma
	state := start
	action := s.behaviour.SelectAction(state)
	s.trackers.Track(timestep.New(timestep.First, 0, gamma, 0))

	for n := 1; ; n++ {
		next, r := s.model.Step(state, action)

		// The next action is chosen before the update so that the
		// update bootstraps from the action actually taken
		target := r
		terminal := s.model.IsTerminal(next)
		var nextAction mdp.Action
		if !terminal {
			nextAction = s.behaviour.SelectAction(next)
			target += gamma * s.table.Get(next, nextAction)
		}
		old := s.table.Get(state, action)
		s.table.Set(state, action, old+s.config.Alpha*(target-old))

		step := timestep.New(timestep.Mid, r, gamma, n)
		if terminal {
			step.StepType = timestep.Last
			step.SetEnd(timestep.TerminalStateReached)
		} else {
			s.ender.End(&step)
		}
		s.trackers.Track(step)

		if step.Last() {
			return step.EndType()
		}
		state, action = next, nextAction
	}
}
