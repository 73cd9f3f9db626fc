// Package tabular implements the action-value table shared by the
// tabular control solvers
package tabular

import (
	"gonum.org/v1/gonum/floats"

	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/mdp"
)

// QTable stores action values for each visited state, one row per
// state with one entry per action in enumeration order. Rows are
// inserted explicitly with Ensure; reads of absent rows return zero
// without inserting.
type QTable struct {
	rows map[mdp.State][]float64
}

// NewQTable returns a new empty QTable
func NewQTable() *QTable {
	return &QTable{rows: make(map[mdp.State][]float64)}
}

// Ensure returns the row of state s, inserting a zero-initialised row
// if s has not been seen before
func (q *QTable) Ensure(s mdp.State) []float64 {
	row, ok := q.rows[s]
	if !ok {
		row = make([]float64, mdp.NumActions)
		q.rows[s] = row
	}
	return row
}

// Has returns whether s has a row
func (q *QTable) Has(s mdp.State) bool {
	_, ok := q.rows[s]
	return ok
}

// Get returns the value of action a in state s
func (q *QTable) Get(s mdp.State, a mdp.Action) float64 {
	row, ok := q.rows[s]
	if !ok {
		return 0
	}
	return row[a.Index()]
}

// Set sets the value of action a in state s
func (q *QTable) Set(s mdp.State, a mdp.Action, v float64) {
	q.Ensure(s)[a.Index()] = v
}

// Max returns the largest action value in state s
func (q *QTable) Max(s mdp.State) float64 {
	row, ok := q.rows[s]
	if !ok {
		return 0
	}
	return floats.Max(row)
}

// Greedy returns the first action of maximal value in state s
func (q *QTable) Greedy(s mdp.State) mdp.Action {
	row, ok := q.rows[s]
	if !ok {
		return mdp.Actions()[0]
	}
	return mdp.Actions()[floats.MaxIdx(row)]
}

// Len returns the number of states with a row
func (q *QTable) Len() int {
	return len(q.rows)
}

// States returns the states with a row, in no particular order
func (q *QTable) States() []mdp.State {
	states := make([]mdp.State, 0, len(q.rows))
	for s := range q.rows {
		states = append(states, s)
	}
	return states
}

// Policy returns the greedy policy over the states with a row
func (q *QTable) Policy() agent.TabularPolicy {
	policy := make(agent.TabularPolicy, len(q.rows))
	for s := range q.rows {
		policy[s] = q.Greedy(s)
	}
	return policy
}

// Values returns the largest action value of each state with a row
func (q *QTable) Values() agent.Values {
	values := make(agent.Values, len(q.rows))
	for s, row := range q.rows {
		values[s] = floats.Max(row)
	}
	return values
}
