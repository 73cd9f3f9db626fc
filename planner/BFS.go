package planner

import "github.com/samuelfneumann/gridlearn/environment"

// BFS finds a shortest path by exploring cells in strict level order
func BFS(g Grid, start, goal environment.Position) []environment.Position {
	if !passable(g, start) || !passable(g, goal) {
		return nil
	}

	parent := map[environment.Position]environment.Position{start: start}
	queue := []environment.Position{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur == goal {
			return reconstruct(parent, start, goal)
		}

		for _, nb := range neighbours(g, cur) {
			if _, seen := parent[nb]; seen {
				continue
			}
			parent[nb] = cur
			queue = append(queue, nb)
		}
	}
	return nil
}
