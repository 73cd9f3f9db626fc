// Package planner implements shortest-path planners on 4-connected grids
// with uniform edge costs: breadth-first search, Dijkstra's algorithm and
// A* with the Manhattan distance heuristic.
//
// All planners return the path from start to goal including both
// endpoints, or an empty path if the goal cannot be reached. Path lengths
// are identical across planners for identical inputs; which of several
// equally short paths is returned depends on exploration order.
package planner

import (
	"errors"
	"fmt"

	"github.com/samuelfneumann/gridlearn/environment"
)

// ErrUnknownPlanner is returned when looking up a planner by a name
// that is not registered
var ErrUnknownPlanner = errors.New("unknown planner")

// Grid is the obstacle geometry planners search over
type Grid interface {
	InBounds(environment.Position) bool
	IsObstacle(environment.Position) bool
}

// Planner computes a shortest path from start to goal
type Planner func(g Grid, start, goal environment.Position) []environment.Position

// Planner names
const (
	BFSName      = "bfs"
	DijkstraName = "dijkstra"
	AStarName    = "astar"
)

var planners = map[string]Planner{
	BFSName:      BFS,
	DijkstraName: Dijkstra,
	AStarName:    AStar,
}

// Names returns the names of all planners in canonical order
func Names() []string {
	return []string{BFSName, DijkstraName, AStarName}
}

// Get returns the planner with the given name
func Get(name string) (Planner, error) {
	p, ok := planners[name]
	if !ok {
		return nil, fmt.Errorf("get: %w %q", ErrUnknownPlanner, name)
	}
	return p, nil
}

// passable returns whether p can be occupied
func passable(g Grid, p environment.Position) bool {
	return g.InBounds(p) && !g.IsObstacle(p)
}

// neighbours returns the passable 4-neighbours of p
func neighbours(g Grid, p environment.Position) []environment.Position {
	nbs := make([]environment.Position, 0, len(environment.Deltas))
	for _, d := range environment.Deltas {
		if nb := p.Add(d[0], d[1]); passable(g, nb) {
			nbs = append(nbs, nb)
		}
	}
	return nbs
}

// reconstruct walks parent pointers back from goal to start and returns
// the path in start to goal order
func reconstruct(parent map[environment.Position]environment.Position,
	start, goal environment.Position) []environment.Position {
	path := []environment.Position{goal}
	for cur := goal; cur != start; {
		cur = parent[cur]
		path = append(path, cur)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
