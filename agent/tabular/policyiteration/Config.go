package policyiteration

import (
	"fmt"

	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/mdp"
)

func init() {
	agent.Register(agent.PolicyIteration, Default())
}

// Config represents a configuration for the PolicyIteration solver
type Config struct {
	Gamma         float64 `yaml:"gamma"`
	Theta         float64 `yaml:"theta"` // Evaluation threshold
	MaxIterations int     `yaml:"maxIterations"`

	// MaxEvaluationSweeps caps the sweeps of each policy evaluation
	MaxEvaluationSweeps int `yaml:"maxEvaluationSweeps"`
	StateLimit          int `yaml:"stateLimit"`
}

// Default returns the default Config
func Default() Config {
	return Config{
		Gamma:               0.99,
		Theta:               1e-3,
		MaxIterations:       100,
		MaxEvaluationSweeps: 10000,
		StateLimit:          mdp.DefaultStateLimit,
	}
}

// CreateSolver creates the PolicyIteration solver from the Config
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
	if c.MaxIterations < 1 || c.MaxEvaluationSweeps < 1 {
		return fmt.Errorf("validate: iteration caps must be positive")
	}
	if c.StateLimit < 1 {
		return fmt.Errorf("validate: stateLimit must be positive, got %v",
			c.StateLimit)
	}
	return nil
}

// Type returns the type of the solver constructed by the Config
func (c Config) Type() agent.Type {
	return agent.PolicyIteration
}
