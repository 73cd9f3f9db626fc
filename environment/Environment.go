// Package environment outlines the types shared by the grid environments:
// cell positions, start-state distributions and episode enders.
package environment

import (
	"fmt"

	"github.com/samuelfneumann/gridlearn/timestep"
)

// Position is a (row, col) cell of a grid
type Position struct {
	Row int
	Col int
}

// Add returns the position offset by (dr, dc)
func (p Position) Add(dr, dc int) Position {
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// Deltas are the four unit moves of the 4-neighbourhood, in the order
// down, up, right, left
var Deltas = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Manhattan returns the L1 distance between two positions
func Manhattan(a, b Position) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

// Neighbours4 returns the in-bounds 4-neighbours of p on a size x size
// grid, in the order of Deltas
func Neighbours4(p Position, size int) []Position {
	neighbours := make([]Position, 0, len(Deltas))
	for _, d := range Deltas {
		nb := p.Add(d[0], d[1])
		if nb.Row < 0 || nb.Row >= size || nb.Col < 0 || nb.Col >= size {
			continue
		}
		neighbours = append(neighbours, nb)
	}
	return neighbours
}

// Corners returns the four corners of a size x size grid
func Corners(size int) []Position {
	n := size - 1
	return []Position{{0, 0}, {0, n}, {n, 0}, {n, n}}
}

// IsCorner returns whether p is a corner of a size x size grid
func IsCorner(p Position, size int) bool {
	for _, c := range Corners(size) {
		if c == p {
			return true
		}
	}
	return false
}

// Starter implements a distribution of starting cells
type Starter interface {
	Start() Position
}

// Ender determines when an episode should end. If the episode should
// be ended, End() modifies the timestep so that its StepType is
// timestep.Last and sets its EndType.
type Ender interface {
	End(*timestep.TimeStep) bool
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
