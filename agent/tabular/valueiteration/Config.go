package valueiteration

import (
	"fmt"

	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/mdp"
)

func init() {
	// Register the Config type so that it can be typed using
	// agent.TypedConfig to help with serialization/deserialization.
	agent.Register(agent.ValueIteration, Default())
}

const (
	// Enumerate sweeps over the full state space
	Enumerate = "enumerate"

	// Reachable sweeps over the states reachable from the start state
	Reachable = "reachable"
)

// Config represents a configuration for the ValueIteration solver
type Config struct {
	Gamma         float64 `yaml:"gamma"`
	Theta         float64 `yaml:"theta"` // Convergence threshold
	MaxIterations int     `yaml:"maxIterations"`

	// StateSet determines which states are swept, either Enumerate or
	// Reachable. If the full state space is too large to enumerate, the
	// reachable states are swept instead.
	StateSet   string `yaml:"stateSet"`
	StateLimit int    `yaml:"stateLimit"` // Cap on reachable states
}

// Default returns the default Config
func Default() Config {
	return Config{
		Gamma:         0.99,
		Theta:         1e-3,
		MaxIterations: 5000,
		StateSet:      Enumerate,
		StateLimit:    mdp.DefaultStateLimit,
	}
}

// CreateSolver creates the ValueIteration solver from the Config
func (c Config) CreateSolver(m *mdp.Model, _ uint64) (agent.Solver, error) {
	return New(m, c)
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Gamma < 0 || c.Gamma > 1 {
		return fmt.Errorf("validate: gamma must be in [0, 1], got %v", c.Gamma)
	}
	if c.Theta <= 0 {
		return fmt.Errorf("validate: theta must be positive, got %v", c.Theta)
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("validate: maxIterations must be positive, got %v",
			c.MaxIterations)
	}
	if c.StateSet != Enumerate && c.StateSet != Reachable {
		return fmt.Errorf("validate: unknown state set %q", c.StateSet)
	}
	if c.StateLimit < 1 {
		return fmt.Errorf("validate: stateLimit must be positive, got %v",
			c.StateLimit)
	}
	return nil
}

// Type returns the type of the solver constructed by the Config
func (c Config) Type() agent.Type {
	return agent.ValueIteration
}
