// Package experiment implements functionality for running experiments:
// a single trial of a solver on a generated grid, the replay of the
// solver's policy on the grid, and benchmarks of the shortest-path
// planners. Experiments are configured with YAML files.
package experiment

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/agent/tabular/valueiteration"
	"github.com/samuelfneumann/gridlearn/environment/envconfig"
	"github.com/samuelfneumann/gridlearn/planner"
)

// Config represents a configuration of an experiment. In YAML, a Config
// is written as
//
//	seed: 42
//	planner: astar
//	environment:
//	  size: 6
//	  goals: 2
//	solver:
//	  type: QLearning
//	  config:
//	    episodes: 5000
//
// Fields that are omitted keep their default values.
type Config struct {
	Seed         uint64            `yaml:"seed"`
	Environment  envconfig.Config  `yaml:"environment"`
	Planner      string            `yaml:"planner"`
	Solver       agent.TypedConfig `yaml:"solver"`
	RolloutSteps int               `yaml:"rolloutSteps"` // Greedy rollout cap
	Benchmark    BenchmarkConfig   `yaml:"benchmark"`
}

// DefaultConfig returns the default experiment Config: value iteration
// on the default environment, with A* as the planner
func DefaultConfig() Config {
	return Config{
		Seed:         42,
		Environment:  envconfig.Default(),
		Planner:      planner.AStarName,
		Solver:       agent.NewTypedConfig(valueiteration.Default()),
		RolloutSteps: 1000,
		Benchmark:    DefaultBenchmark(),
	}
}

// Validate returns an error describing why the Config is invalid
func (c Config) Validate() error {
	if err := c.Environment.Validate(); err != nil {
		return fmt.Errorf("validate: environment: %w", err)
	}
	if _, err := planner.Get(c.Planner); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if c.Solver.Config == nil {
		return fmt.Errorf("validate: no solver configured")
	}
	if err := c.Solver.Validate(); err != nil {
		return fmt.Errorf("validate: solver %v: %w", c.Solver.Type, err)
	}
	if c.RolloutSteps < 1 {
		return fmt.Errorf("validate: rolloutSteps must be positive, got %d",
			c.RolloutSteps)
	}
	if err := c.Benchmark.Validate(); err != nil {
		return fmt.Errorf("validate: benchmark: %w", err)
	}
	return nil
}

// ParseConfig decodes a YAML Config. Fields missing from data take
// their default values and unknown fields are an error.
func ParseConfig(data []byte) (Config, error) {
	c := DefaultConfig()
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return Config{}, fmt.Errorf("parseConfig: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("parseConfig: %w", err)
	}
	return c, nil
}

// LoadConfig reads and decodes the YAML Config at path
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("loadConfig: %v", err)
	}
	return ParseConfig(data)
}

// Marshal encodes the Config as YAML
func (c Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal: %v", err)
	}
	return data, nil
}
