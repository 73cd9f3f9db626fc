package qlearning

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r1"

	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/mdp"
	"github.com/samuelfneumann/gridlearn/utils/floatutils"
)

func init() {
	agent.Register(agent.QLearning, Default())
}

var unit = r1.Interval{Min: 0, Max: 1}

// Config represents a configuration for the QLearning solver
type Config struct {
	Alpha float64 `yaml:"alpha"` // Learning rate
	Gamma float64 `yaml:"gamma"`

	// Epsilon is the initial probability of a random action. After each
	// episode it is multiplied by EpsilonDecay, down to MinEpsilon.
	Epsilon      float64 `yaml:"epsilon"`
	EpsilonDecay float64 `yaml:"epsilonDecay"`
	MinEpsilon   float64 `yaml:"minEpsilon"`

	Episodes int `yaml:"episodes"`
	MaxSteps int `yaml:"maxSteps"` // Per episode
}

// Default returns the default Config
func Default() Config {
	return Config{
		Alpha:        0.5,
		Gamma:        0.99,
		Epsilon:      0.1,
		EpsilonDecay: 1,
		MinEpsilon:   0,
		Episodes:     2000,
		MaxSteps:     500,
	}
}

// CreateSolver creates the QLearning solver from the Config
func (c Config) CreateSolver(m *mdp.Model, seed uint64) (agent.Solver,
	error) {
	return New(m, c, seed)
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Alpha <= 0 || c.Alpha > 1 {
		return fmt.Errorf("validate: alpha must be in (0, 1], got %v", c.Alpha)
	}
	if !floatutils.Contains(c.Gamma, unit) {
		return fmt.Errorf("validate: gamma must be in [0, 1], got %v", c.Gamma)
	}
	if !floatutils.Contains(c.Epsilon, unit) ||
		!floatutils.Contains(c.MinEpsilon, unit) {
		return fmt.Errorf("validate: epsilon must be in [0, 1]")
	}
	if c.MinEpsilon > c.Epsilon {
		return fmt.Errorf("validate: minEpsilon %v exceeds epsilon %v",
			c.MinEpsilon, c.Epsilon)
	}
	if c.EpsilonDecay <= 0 || c.EpsilonDecay > 1 {
		return fmt.Errorf("validate: epsilonDecay must be in (0, 1], got %v",
			c.EpsilonDecay)
	}
	if c.Episodes < 1 || c.MaxSteps < 1 {
		return fmt.Errorf("validate: episodes and maxSteps must be positive")
	}
	return nil
}

// Type returns the type of the solver constructed by the Config
func (c Config) Type() agent.Type {
	return agent.QLearning
}

// NumEpisodes returns the number of learning episodes
func (c Config) NumEpisodes() int {
	return c.Episodes
}
