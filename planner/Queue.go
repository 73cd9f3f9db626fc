package planner

import (
	"container/heap"

	"github.com/samuelfneumann/gridlearn/environment"
)

// entry is a cell in the frontier. Cost is the accumulated distance to
// the cell, priority the key the frontier is ordered by.
type entry struct {
	pos      environment.Position
	cost     int
	priority int
	seq      int
}

// frontier implements heap.Interface as a min-priority queue. Entries
// with equal priority are popped in insertion order.
type frontier struct {
	entries []entry
	pushed  int
}

func (f frontier) Len() int { return len(f.entries) }

func (f frontier) Less(i, j int) bool {
	if f.entries[i].priority != f.entries[j].priority {
		return f.entries[i].priority < f.entries[j].priority
	}
	return f.entries[i].seq < f.entries[j].seq
}

func (f frontier) Swap(i, j int) {
	f.entries[i], f.entries[j] = f.entries[j], f.entries[i]
}

func (f *frontier) Push(x interface{}) {
	f.entries = append(f.entries, x.(entry))
}

func (f *frontier) Pop() interface{} {
	old := f.entries
	n := len(old)
	item := old[n-1]
	f.entries = old[:n-1]
	return item
}

// push adds a cell to the frontier
func (f *frontier) push(pos environment.Position, cost, priority int) {
	heap.Push(f, entry{pos: pos, cost: cost, priority: priority, seq: f.pushed})
	f.pushed++
}

// pop removes and returns the entry with the lowest priority
func (f *frontier) pop() entry {
	return heap.Pop(f).(entry)
}

// bestFirst runs a best-first search ordered by cost + h(cell). With
// h = 0 this is Dijkstra's algorithm. Entries whose cost no longer
// matches the best known distance of their cell are stale and skipped.
func bestFirst(g Grid, start, goal environment.Position,
	h func(environment.Position) int) []environment.Position {
	if !passable(g, start) || !passable(g, goal) {
		return nil
	}

	dist := map[environment.Position]int{start: 0}
	parent := map[environment.Position]environment.Position{start: start}

	f := &frontier{}
	f.push(start, 0, h(start))

	for f.Len() > 0 {
		cur := f.pop()
		if best, ok := dist[cur.pos]; !ok || cur.cost != best {
			continue
		}

		if cur.pos == goal {
			return reconstruct(parent, start, goal)
		}

		for _, nb := range neighbours(g, cur.pos) {
			cost := cur.cost + 1
			if best, ok := dist[nb]; ok && cost >= best {
				continue
			}
			dist[nb] = cost
			parent[nb] = cur.pos
			f.push(nb, cost, cost+h(nb))
		}
	}
	return nil
}
