// Package tabulartest provides small MDPs with known optimal solutions
// for testing tabular solvers
package tabulartest

import (
	"testing"

	"github.com/samuelfneumann/gridlearn/environment/gridworld"
	"github.com/samuelfneumann/gridlearn/mdp"
)

const (
	// OptimalSteps is the length of an optimal episode in Corner
	OptimalSteps = 4

	// OptimalReturn is the undiscounted return of an optimal episode in
	// Corner
	OptimalReturn = -4 + 10 + 20
)

// Corner returns a 3x3 model with the start in the top left, a single
// item in the top right and a carrying capacity of 1. The optimal
// episode walks right twice to collect the item and left twice to
// deliver it.
func Corner(tb testing.TB) *mdp.Model {
	tb.Helper()

	g := gridworld.MustParse(
		"S.1",
		"...",
		"...",
	)
	return model(tb, g, 1)
}

// Detour returns a 4x4 model whose single goal is behind a wall, with
// two items and a carrying capacity of 1, so two round trips are
// needed
func Detour(tb testing.TB) *mdp.Model {
	tb.Helper()

	g := gridworld.MustParse(
		"S..2",
		"##.#",
		"....",
		"....",
	)
	return model(tb, g, 1)
}

// DetourOptimalSteps is the length of an optimal episode in Detour
const DetourOptimalSteps = 12

func model(tb testing.TB, g *gridworld.GridWorld, capacity int) *mdp.Model {
	c := mdp.DefaultConfig()
	c.Capacity = capacity

	m, err := mdp.New(g, c)
	if err != nil {
		tb.Fatal(err)
	}
	return m
}
