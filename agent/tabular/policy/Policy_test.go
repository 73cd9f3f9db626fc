package policy

import (
	"testing"

	"github.com/samuelfneumann/gridlearn/agent/tabular"
	"github.com/samuelfneumann/gridlearn/environment"
	"github.com/samuelfneumann/gridlearn/mdp"
)

var state = mdp.NewState(environment.Position{}, 0, []int{1})

func TestEGreedyZeroEpsilonIsGreedy(t *testing.T) {
	q := tabular.NewQTable()
	q.Set(state, mdp.Left, 1)

	p, err := NewEGreedy(0, q, 1)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		if a := p.SelectAction(state); a != mdp.Left {
			t.Fatalf("selected %v, want Left", a)
		}
	}
}

func TestEGreedyInsertsRows(t *testing.T) {
	q := tabular.NewQTable()
	p, err := NewEGreedy(0.5, q, 1)
	if err != nil {
		t.Fatal(err)
	}

	p.SelectAction(state)
	if !q.Has(state) {
		t.Error("selection did not insert a row")
	}
}

func TestEGreedyExplores(t *testing.T) {
	q := tabular.NewQTable()
	q.Set(state, mdp.Up, 1)

	p, err := NewEGreedy(1, q, 3)
	if err != nil {
		t.Fatal(err)
	}
	counts := make(map[mdp.Action]int)
	for i := 0; i < 5000; i++ {
		counts[p.SelectAction(state)]++
	}

	for _, a := range mdp.Actions() {
		if counts[a] < 800 || counts[a] > 1200 {
			t.Errorf("action %v selected %d times out of 5000", a, counts[a])
		}
	}
}

func TestEGreedyInvalidEpsilon(t *testing.T) {
	if _, err := NewEGreedy(1.5, tabular.NewQTable(), 0); err == nil {
		t.Error("expected error for epsilon > 1")
	}
}

func TestGreedy(t *testing.T) {
	q := tabular.NewQTable()
	g := NewGreedy(q)

	if _, ok := g.Action(state); ok {
		t.Error("greedy policy acted in an unseen state")
	}

	q.Set(state, mdp.Stay, 2)
	if a, ok := g.Action(state); !ok || a != mdp.Stay {
		t.Errorf("action = %v, %v, want Stay", a, ok)
	}
}

func TestRandom(t *testing.T) {
	r := NewRandom(7)
	seen := make(map[mdp.Action]bool)
	for i := 0; i < 500; i++ {
		a, ok := r.Action(state)
		if !ok {
			t.Fatal("random policy has no action")
		}
		seen[a] = true
	}
	if len(seen) != mdp.NumActions {
		t.Errorf("random policy selected only %v", seen)
	}
}
