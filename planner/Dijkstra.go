package planner

import "github.com/samuelfneumann/gridlearn/environment"

// Dijkstra finds a shortest path with a frontier ordered by accumulated
// distance
func Dijkstra(g Grid, start, goal environment.Position) []environment.Position {
	return bestFirst(g, start, goal, func(environment.Position) int { return 0 })
}
