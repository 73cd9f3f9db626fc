package environment

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// CornerStarter returns starting cells sampled from a uniform
// categorical distribution over the four corners of a square grid
type CornerStarter struct {
	corners []Position
	rand    distuv.Categorical
}

// NewCornerStarter returns a new CornerStarter for a size x size grid.
// Samples are drawn from src, which the caller seeds explicitly.
func NewCornerStarter(size int, src rand.Source) CornerStarter {
	corners := Corners(size)

	// Create the weights for the uniform categorical distribution
	weights := make([]float64, len(corners))
	for i := range weights {
		weights[i] = 1.0 / float64(len(weights))
	}

	return CornerStarter{corners, distuv.NewCategorical(weights, src)}
}

// Start returns a starting corner
func (c CornerStarter) Start() Position {
	return c.corners[int(c.rand.Rand())]
}

// SingleStart always starts at the same cell
type SingleStart struct {
	start Position
}

// NewSingleStart returns a Starter that always returns p
func NewSingleStart(p Position) SingleStart {
	return SingleStart{p}
}

// Start returns the starting cell
func (s SingleStart) Start() Position {
	return s.start
}
