// Package td implements tabular TD(0) and TD(λ) prediction of the
// state values of a fixed policy
package td

import (
	"github.com/rs/zerolog"

	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/agent/tabular/policy"
	"github.com/samuelfneumann/gridlearn/environment"
	"github.com/samuelfneumann/gridlearn/experiment/tracker"
	"github.com/samuelfneumann/gridlearn/mdp"
	"github.com/samuelfneumann/gridlearn/timestep"
)

// updater updates value estimates from a single transition
type updater interface {
	update(s, next mdp.State, r float64)
	endEpisode()
}

// prediction runs episodes of a fixed policy, handing each transition
// to an updater
type prediction struct {
	model     *mdp.Model
	policy    agent.Policy
	evaluated agent.Policy // Set by SetPolicy, nil for the random policy
	seed      uint64
	config    Config
	ender     environment.Ender
	values    agent.Values
	trackers  tracker.Multi
	logger    zerolog.Logger
}

func newPrediction(m *mdp.Model, c Config, seed uint64) prediction {
	return prediction{
		model:  m,
		policy: policy.NewRandom(seed),
		seed:   seed,
		config: c,
		ender:  environment.NewStepLimit(c.MaxSteps),
		values: make(agent.Values),
		logger: zerolog.Nop(),
	}
}

// SetPolicy sets the policy to evaluate
func (p *prediction) SetPolicy(pol agent.Policy) {
	p.evaluated = pol
	p.policy = pol
}

// reset starts a new run with no values. The random policy is reseeded
// so that every run evaluates the same sequence of actions.
func (p *prediction) reset() {
	p.values = make(agent.Values)
	if p.evaluated == nil {
		p.policy = policy.NewRandom(p.seed)
	}
}

// SetLogger sets the logger that progress is reported to
func (p *prediction) SetLogger(l zerolog.Logger) {
	p.logger = l
}

// Register registers a Tracker to receive each TimeStep
func (p *prediction) Register(t tracker.Tracker) {
	p.trackers = append(p.trackers, t)
}

// run runs Config.Episodes episodes from start with a new value table
func (p *prediction) run(start mdp.State, u updater, name string) {
	p.reset()
	if p.model.IsTerminal(start) {
		p.logger.Warn().Msg("start state is terminal, nothing to learn")
		return
	}
	if _, ok := p.policy.Action(start); !ok {
		p.logger.Warn().Msg("policy has no action in the start state")
		return
	}

	ends := make(map[timestep.EndType]int)
	for i := 0; i < p.config.Episodes; i++ {
		ends[p.episode(start, u)]++
		u.endEpisode()
	}

	p.logger.Debug().
		Int("episodes", p.config.Episodes).
		Int("timeouts", ends[timestep.Timeout]).
		Int("states", len(p.values)).
		Msg(name + " finished")
	if ends[timestep.Timeout] == p.config.Episodes {
		p.logger.Warn().
			Int("maxSteps", p.config.MaxSteps).
			Msg("no episode reached a terminal state")
	}
}

// episode runs a single episode and returns the reason it ended
func (p *prediction) episode(start mdp.State, u updater) timestep.EndType {
	gamma := p.config.Gamma
	s := start
	a, _ := p.policy.Action(s)
	p.trackers.Track(timestep.New(timestep.First, 0, gamma, 0))

	for n := 1; ; n++ {
		next, r := p.model.Step(s, a)
		u.update(s, next, r)

		step := timestep.New(timestep.Mid, r, gamma, n)
		if p.model.IsTerminal(next) {
			step.StepType = timestep.Last
			step.SetEnd(timestep.TerminalStateReached)
		} else if !p.ender.End(&step) {
			var ok bool
			if a, ok = p.policy.Action(next); !ok {
				step.StepType = timestep.Last
				step.SetEnd(timestep.NoAction)
			}
		}
		p.trackers.Track(step)

		if step.Last() {
			return step.EndType()
		}
		s = next
	}
}
