package policy

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/samuelfneumann/gridlearn/mdp"
)

// Random selects actions uniformly at random
type Random struct {
	dist distuv.Categorical
}

// NewRandom returns a new uniform random policy
func NewRandom(seed uint64) Random {
	weights := make([]float64, mdp.NumActions)
	for i := range weights {
		weights[i] = 1.0
	}
	return Random{distuv.NewCategorical(weights, rand.NewSource(seed))}
}

// Action returns a random action. Random policies act in every state.
func (r Random) Action(mdp.State) (mdp.Action, bool) {
	return mdp.Actions()[int(r.dist.Rand())], true
}
