// Package envconfig provides configuration structs for configuring
// grid worlds and the item-collection MDP over them. Environment
// configurations in this package are YAML serializable.
package envconfig

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/gridlearn/environment"
	"github.com/samuelfneumann/gridlearn/environment/gridworld"
	"github.com/samuelfneumann/gridlearn/mdp"
)

// Corner names a corner of the grid to start in
type Corner string

// Corners available for configuration. The empty Corner draws a corner
// uniformly at random.
const (
	RandomCorner Corner = ""
	TopLeft      Corner = "top-left"
	TopRight     Corner = "top-right"
	BottomLeft   Corner = "bottom-left"
	BottomRight  Corner = "bottom-right"
)

// Position returns the cell of the corner on a size x size grid. The
// second return value is false for RandomCorner and unknown corners.
func (c Corner) Position(size int) (environment.Position, bool) {
	n := size - 1
	switch c {
	case TopLeft:
		return environment.Position{Row: 0, Col: 0}, true
	case TopRight:
		return environment.Position{Row: 0, Col: n}, true
	case BottomLeft:
		return environment.Position{Row: n, Col: 0}, true
	case BottomRight:
		return environment.Position{Row: n, Col: n}, true
	}
	return environment.Position{}, false
}

// Config implements a specific configuration of a grid world and the
// MDP over it. If Layout is set, the grid is parsed from it and the
// generation settings are ignored.
type Config struct {
	Size         int      `yaml:"size"`
	NumGoalCells int      `yaml:"goals"`
	ItemsPerGoal int      `yaml:"items"`
	ObstacleProb float64  `yaml:"obstacleProb"`
	Start        Corner   `yaml:"start"`
	Layout       []string `yaml:"layout,omitempty"`

	Capacity int         `yaml:"capacity"`
	Rewards  mdp.Rewards `yaml:"rewards"`
	Terminal string      `yaml:"terminal"`
}

// Default returns the default environment Config
func Default() Config {
	return Config{
		Size:         10,
		NumGoalCells: 10,
		ItemsPerGoal: 5,
		ObstacleProb: 0.12,
		Capacity:     3,
		Rewards:      mdp.DefaultRewards(),
		Terminal:     mdp.TerminalDelivered.String(),
	}
}

// Validate returns an error describing why the Config is invalid
func (c Config) Validate() error {
	if c.Layout == nil {
		if err := c.Grid().Validate(); err != nil {
			return err
		}
	}
	if c.Start != RandomCorner {
		if _, ok := c.Start.Position(2); !ok {
			return fmt.Errorf("validate: unknown start corner %q", c.Start)
		}
	}
	if c.Capacity < 1 {
		return fmt.Errorf("validate: capacity must be positive, got %d",
			c.Capacity)
	}
	if _, err := mdp.ParseTerminalRule(c.Terminal); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}

// Grid returns the generator Config described by c
func (c Config) Grid() gridworld.Config {
	gc := gridworld.Config{
		Size:         c.Size,
		NumGoalCells: c.NumGoalCells,
		ItemsPerGoal: c.ItemsPerGoal,
		ObstacleProb: c.ObstacleProb,
	}
	if start, ok := c.Start.Position(c.Size); ok {
		gc.Start = &start
	}
	return gc
}

// Model returns the MDP Config described by c
func (c Config) Model() (mdp.Config, error) {
	terminal, err := mdp.ParseTerminalRule(c.Terminal)
	if err != nil {
		return mdp.Config{}, err
	}
	return mdp.Config{
		Capacity: c.Capacity,
		Rewards:  c.Rewards,
		Terminal: terminal,
	}, nil
}

// CreateGrid returns the grid described by the Config. Generated grids
// are drawn from a source seeded with seed.
func (c Config) CreateGrid(seed uint64) (*gridworld.GridWorld, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("createGrid: %w", err)
	}

	if c.Layout != nil {
		g, err := gridworld.Parse(c.Layout)
		if err != nil {
			return nil, fmt.Errorf("createGrid: %w", err)
		}
		return g, nil
	}

	g, err := gridworld.New(c.Grid(), rand.NewSource(seed))
	if err != nil {
		return nil, fmt.Errorf("createGrid: %w", err)
	}
	return g, nil
}

// Create returns the grid and the MDP model described by the Config
func (c Config) Create(seed uint64) (*gridworld.GridWorld, *mdp.Model,
	error) {
	g, err := c.CreateGrid(seed)
	if err != nil {
		return nil, nil, err
	}

	mc, err := c.Model()
	if err != nil {
		return nil, nil, fmt.Errorf("create: %w", err)
	}
	m, err := mdp.New(g, mc)
	if err != nil {
		return nil, nil, fmt.Errorf("create: %w", err)
	}
	return g, m, nil
}
