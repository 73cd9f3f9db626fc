package planner

import "github.com/samuelfneumann/gridlearn/environment"

// AStar finds a shortest path with a frontier ordered by accumulated
// distance plus the Manhattan distance to the goal. Without diagonal
// moves the Manhattan distance never overestimates the remaining cost
// and is consistent, so AStar returns paths as short as Dijkstra's.
func AStar(g Grid, start, goal environment.Position) []environment.Position {
	return bestFirst(g, start, goal, func(p environment.Position) int {
		return environment.Manhattan(p, goal)
	})
}
