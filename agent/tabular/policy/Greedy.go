package policy

import (
	"github.com/samuelfneumann/gridlearn/agent/tabular"
	"github.com/samuelfneumann/gridlearn/mdp"
)

// Greedy implements the greedy policy over a QTable. It has no action
// in states without a row.
type Greedy struct {
	table *tabular.QTable
}

// NewGreedy returns a new greedy policy over table
func NewGreedy(table *tabular.QTable) Greedy {
	return Greedy{table}
}

// Action returns the first action of maximal value in state s
func (g Greedy) Action(s mdp.State) (mdp.Action, bool) {
	if !g.table.Has(s) {
		return mdp.Stay, false
	}
	return g.table.Greedy(s), true
}
