package td

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r1"

	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/mdp"
	"github.com/samuelfneumann/gridlearn/utils/floatutils"
)

func init() {
	agent.Register(agent.TD0, Default())
	agent.Register(agent.TDLambda, DefaultLambda())
}

var unit = r1.Interval{Min: 0, Max: 1}

// Config represents a configuration for the TD(0) solver
type Config struct {
	Alpha    float64 `yaml:"alpha"`
	Gamma    float64 `yaml:"gamma"`
	Episodes int     `yaml:"episodes"`
	MaxSteps int     `yaml:"maxSteps"`
}

// Default returns the default TD(0) Config
func Default() Config {
	return Config{Alpha: 0.1, Gamma: 0.99, Episodes: 1000, MaxSteps: 500}
}

// CreateSolver creates the TD(0) solver from the Config. The solver
// follows a uniform random policy.
func (c Config) CreateSolver(m *mdp.Model, seed uint64) (agent.Solver,
	error) {
	return NewTD0(m, c, seed)
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Alpha <= 0 || c.Alpha > 1 {
		return fmt.Errorf("validate: alpha must be in (0, 1], got %v", c.Alpha)
	}
	if !floatutils.Contains(c.Gamma, unit) {
		return fmt.Errorf("validate: gamma must be in [0, 1], got %v", c.Gamma)
	}
	if c.Episodes < 1 || c.MaxSteps < 1 {
		return fmt.Errorf("validate: episodes and maxSteps must be positive")
	}
	return nil
}

// Type returns the type of the solver constructed by the Config
func (c Config) Type() agent.Type {
	return agent.TD0
}

// LambdaConfig represents a configuration for the TD(λ) solver
type LambdaConfig struct {
	Alpha    float64 `yaml:"alpha"`
	Gamma    float64 `yaml:"gamma"`
	Lambda   float64 `yaml:"lambda"` // Trace decay
	Episodes int     `yaml:"episodes"`
	MaxSteps int     `yaml:"maxSteps"`
}

// DefaultLambda returns the default TD(λ) Config
func DefaultLambda() LambdaConfig {
	return LambdaConfig{
		Alpha:    0.1,
		Gamma:    0.99,
		Lambda:   0.8,
		Episodes: 1000,
		MaxSteps: 500,
	}
}

// CreateSolver creates the TD(λ) solver from the Config. The solver
// follows a uniform random policy.
func (c LambdaConfig) CreateSolver(m *mdp.Model, seed uint64) (agent.Solver,
	error) {
	return NewTDLambda(m, c, seed)
}

// Validate ensures that the Config is valid
func (c LambdaConfig) Validate() error {
	if !floatutils.Contains(c.Lambda, unit) {
		return fmt.Errorf("validate: lambda must be in [0, 1], got %v",
			c.Lambda)
	}
	return c.td0().Validate()
}

// Type returns the type of the solver constructed by the Config
func (c LambdaConfig) Type() agent.Type {
	return agent.TDLambda
}

// td0 returns the TD(0) Config sharing the settings of c
func (c LambdaConfig) td0() Config {
	return Config{
		Alpha:    c.Alpha,
		Gamma:    c.Gamma,
		Episodes: c.Episodes,
		MaxSteps: c.MaxSteps,
	}
}

// NumEpisodes returns the number of learning episodes
func (c Config) NumEpisodes() int {
	return c.Episodes
}

// NumEpisodes returns the number of learning episodes
func (c LambdaConfig) NumEpisodes() int {
	return c.Episodes
}
