package agent

import (
	"github.com/samuelfneumann/gridlearn/mdp"
)

// Config represents a configuration for creating a Solver
type Config interface {
	// CreateSolver creates the Solver that the config describes
	CreateSolver(m *mdp.Model, seed uint64) (Solver, error)

	// Validate returns an error describing whether or not the
	// configuration is valid
	Validate() error

	// Type returns the type of Solver the Config creates
	Type() Type
}

// EpisodicConfig is a Config of a Solver that learns over a fixed
// number of episodes
type EpisodicConfig interface {
	Config
	NumEpisodes() int
}
