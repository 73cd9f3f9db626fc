// Package policy implements policies over tabular action values
package policy

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/samuelfneumann/gridlearn/agent/tabular"
	"github.com/samuelfneumann/gridlearn/mdp"
)

// EGreedy implements an ε-greedy policy over a QTable
type EGreedy struct {
	table   *tabular.QTable
	epsilon float64
	seed    rand.Source // Source for random number generation
}

// NewEGreedy constructs a new EGreedy policy, where e=epislon is the
// probability with which a random action is selected
func NewEGreedy(e float64, table *tabular.QTable, seed uint64) (*EGreedy,
	error) {
	if e < 0 || e > 1 {
		return nil, fmt.Errorf("newEGreedy: epsilon must be in [0, 1], "+
			"got %v", e)
	}
	return &EGreedy{table, e, rand.NewSource(seed)}, nil
}

// SelectAction selects an action in state s. States without a row in
// the QTable are inserted with zero action values.
func (p *EGreedy) SelectAction(s mdp.State) mdp.Action {
	p.table.Ensure(s)
	greedy := p.table.Greedy(s).Index()

	// Calculate the ε probability of choosing any action at random
	prob := p.epsilon / float64(mdp.NumActions)
	actionProbabilities := make([]float64, mdp.NumActions)
	for i := range actionProbabilities {
		actionProbabilities[i] = prob
	}

	// Adjust the probability of choosing the greedy action
	actionProbabilities[greedy] += 1.0 - p.epsilon

	// Sample an action given the action probabilities
	dist := distuv.NewCategorical(actionProbabilities, p.seed)
	return mdp.Actions()[int(dist.Rand())]
}

// Action implements the agent.Policy interface
func (p *EGreedy) Action(s mdp.State) (mdp.Action, bool) {
	return p.SelectAction(s), true
}

// SetEpsilon sets the probability of selecting a random action
func (p *EGreedy) SetEpsilon(e float64) {
	p.epsilon = e
}

// Epsilon returns the probability of selecting a random action
func (p *EGreedy) Epsilon() float64 {
	return p.epsilon
}
