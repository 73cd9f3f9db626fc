// Package gridworld implements the square item-collection gridworld: a
// grid of empty, obstacle and goal cells, a start corner, and goal cells
// holding items that an agent picks up and returns to the start.
package gridworld

import (
	"fmt"
	"strings"

	"github.com/samuelfneumann/gridlearn/environment"
)

// Cell is the kind of a single grid cell
type Cell int

const (
	Empty Cell = iota
	Obstacle
	Goal
)

func (c Cell) String() string {
	switch c {
	case Obstacle:
		return "Obstacle"
	case Goal:
		return "Goal"
	default:
		return "Empty"
	}
}

// GoalCell is a goal position and the number of items remaining there
type GoalCell struct {
	environment.Position
	Remaining int
}

// Snapshot is an independent copy of a GridWorld's layout, used by
// renderers and other consumers which should never hold the grid itself
type Snapshot struct {
	Cells [][]Cell
	Start environment.Position
	Goals []GoalCell
}

// GridWorld represents a square gridworld with obstacles and goal cells
//
// Once generated, a GridWorld only changes through PickItems, which
// depletes goal cells. Simulations should operate on a Copy so that the
// generated grid is never modified.
type GridWorld struct {
	size      int
	cells     []Cell // row-major
	start     environment.Position
	goals     []GoalCell
	goalIndex map[environment.Position]int

	obstacleProb float64
	attempts     int
}

// Size returns the side length of the grid
func (g *GridWorld) Size() int {
	return g.size
}

// Dims gets the rows and columns of the GridWorld
func (g *GridWorld) Dims() (r, c int) {
	return g.size, g.size
}

// Start returns the start cell, where items are dropped off
func (g *GridWorld) Start() environment.Position {
	return g.start
}

// InBounds returns whether p lies within the grid
func (g *GridWorld) InBounds(p environment.Position) bool {
	return p.Row >= 0 && p.Row < g.size && p.Col >= 0 && p.Col < g.size
}

// At returns the kind of cell p. Out of bounds positions are reported
// as obstacles.
func (g *GridWorld) At(p environment.Position) Cell {
	if !g.InBounds(p) {
		return Obstacle
	}
	return g.cells[p.Row*g.size+p.Col]
}

// IsObstacle returns whether p is an obstacle or out of bounds
func (g *GridWorld) IsObstacle(p environment.Position) bool {
	return g.At(p) == Obstacle
}

// IsGoal returns whether p is a goal cell with items remaining
func (g *GridWorld) IsGoal(p environment.Position) bool {
	return g.Remaining(p) > 0
}

// Remaining returns the number of items remaining at p
func (g *GridWorld) Remaining(p environment.Position) int {
	idx, ok := g.goalIndex[p]
	if !ok {
		return 0
	}
	return g.goals[idx].Remaining
}

// Goals returns the goal cells in their fixed generation order
func (g *GridWorld) Goals() []GoalCell {
	goals := make([]GoalCell, len(g.goals))
	copy(goals, g.goals)
	return goals
}

// GoalPositions returns the positions of the goal cells in their fixed
// generation order
func (g *GridWorld) GoalPositions() []environment.Position {
	positions := make([]environment.Position, len(g.goals))
	for i, goal := range g.goals {
		positions[i] = goal.Position
	}
	return positions
}

// PickItems picks up to amount items from the goal cell at p and
// returns the number actually picked. When a goal cell runs out of
// items it reverts to an empty cell.
func (g *GridWorld) PickItems(p environment.Position, amount int) int {
	idx, ok := g.goalIndex[p]
	if !ok || amount <= 0 {
		return 0
	}

	picked := g.goals[idx].Remaining
	if amount < picked {
		picked = amount
	}
	g.goals[idx].Remaining -= picked

	if g.goals[idx].Remaining == 0 {
		g.set(p, Empty)
	}
	return picked
}

// ItemsRemaining returns the total number of items left on the grid
func (g *GridWorld) ItemsRemaining() int {
	total := 0
	for _, goal := range g.goals {
		total += goal.Remaining
	}
	return total
}

// ObstacleProb returns the obstacle probability the grid was finally
// generated with, which is lower than the configured probability if
// generation had to be relaxed
func (g *GridWorld) ObstacleProb() float64 {
	return g.obstacleProb
}

// Attempts returns the number of generation attempts needed to produce
// the grid
func (g *GridWorld) Attempts() int {
	return g.attempts
}

// Copy returns a deep copy of the GridWorld which shares no state with
// the original
func (g *GridWorld) Copy() *GridWorld {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)

	goalIndex := make(map[environment.Position]int, len(g.goalIndex))
	for p, i := range g.goalIndex {
		goalIndex[p] = i
	}

	return &GridWorld{
		size:         g.size,
		cells:        cells,
		start:        g.start,
		goals:        g.Goals(),
		goalIndex:    goalIndex,
		obstacleProb: g.obstacleProb,
		attempts:     g.attempts,
	}
}

// Snapshot returns the grid layout, start and goal counts
func (g *GridWorld) Snapshot() Snapshot {
	cells := make([][]Cell, g.size)
	for r := range cells {
		cells[r] = make([]Cell, g.size)
		copy(cells[r], g.cells[r*g.size:(r+1)*g.size])
	}
	return Snapshot{Cells: cells, Start: g.start, Goals: g.Goals()}
}

// Reachable returns the set of cells reachable from `from` by
// 4-connected moves through non-obstacle cells
func (g *GridWorld) Reachable(from environment.Position) map[environment.Position]bool {
	visited := make(map[environment.Position]bool)
	if g.IsObstacle(from) {
		return visited
	}

	visited[from] = true
	queue := []environment.Position{from}
	for len(queue) > 0 {
		pos := queue[0]
		queue = queue[1:]

		for _, nb := range environment.Neighbours4(pos, g.size) {
			if visited[nb] || g.IsObstacle(nb) {
				continue
			}
			visited[nb] = true
			queue = append(queue, nb)
		}
	}
	return visited
}

// AllGoalsReachable returns whether every goal cell can be reached from
// the start cell
func (g *GridWorld) AllGoalsReachable() bool {
	visited := g.Reachable(g.start)
	for _, goal := range g.goals {
		if !visited[goal.Position] {
			return false
		}
	}
	return true
}

// String returns the grid in the layout format accepted by Parse. Goal
// cells holding more than 9 items are printed as '+'.
func (g *GridWorld) String() string {
	var b strings.Builder
	for r := 0; r < g.size; r++ {
		for c := 0; c < g.size; c++ {
			p := environment.Position{Row: r, Col: c}
			b.WriteByte(g.symbol(p))
		}
		if r < g.size-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (g *GridWorld) symbol(p environment.Position) byte {
	switch {
	case p == g.start:
		return 'S'
	case g.At(p) == Obstacle:
		return '#'
	case g.IsGoal(p):
		if n := g.Remaining(p); n <= 9 {
			return byte('0' + n)
		}
		return '+'
	default:
		return '.'
	}
}

func (g *GridWorld) set(p environment.Position, c Cell) {
	g.cells[p.Row*g.size+p.Col] = c
}

func (g *GridWorld) addGoal(p environment.Position, items int) {
	if _, ok := g.goalIndex[p]; ok {
		panic(fmt.Sprintf("addGoal: duplicate goal cell %v", p))
	}
	g.goalIndex[p] = len(g.goals)
	g.goals = append(g.goals, GoalCell{Position: p, Remaining: items})
	if items > 0 {
		g.set(p, Goal)
	}
}
