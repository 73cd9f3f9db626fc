package sarsa

import (
	"math"
	"reflect"
	"testing"

	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/agent/tabular/tabulartest"
	"github.com/samuelfneumann/gridlearn/agent/tabular/valueiteration"
	"github.com/samuelfneumann/gridlearn/environment"
	"github.com/samuelfneumann/gridlearn/experiment/tracker"
	"github.com/samuelfneumann/gridlearn/mdp"
	"github.com/samuelfneumann/gridlearn/timestep"
)

func TestMatchesValueIteration(t *testing.T) {
	m := tabulartest.Corner(t)
	start := m.StartState()

	vi, err := valueiteration.New(m, valueiteration.Default())
	if err != nil {
		t.Fatal(err)
	}
	viPolicy, _, err := vi.Run(start)
	if err != nil {
		t.Fatal(err)
	}
	want := agent.Rollout(m, viPolicy, start, 100)

	c := Default()
	c.Epsilon = 1
	c.EpsilonDecay = 0.995
	c.MinEpsilon = 0.01
	c.MaxSteps = 100

	s, err := New(m, c, 4)
	if err != nil {
		t.Fatal(err)
	}
	policy, _, err := s.Run(start)
	if err != nil {
		t.Fatal(err)
	}
	got := agent.Rollout(m, policy, start, 100)

	if got.Return != want.Return || got.Steps() != want.Steps() {
		t.Errorf("sarsa rollout (%v, %d steps), value iteration (%v, %d steps)",
			got.Return, got.Steps(), want.Return, want.Steps())
	}
	if !got.Terminal {
		t.Error("sarsa rollout did not reach a terminal state")
	}
}

func TestEpisodesEndOnTerminalOrTimeout(t *testing.T) {
	m := tabulartest.Detour(t)
	c := Default()
	c.Episodes = 30
	c.MaxSteps = 15

	s, err := New(m, c, 8)
	if err != nil {
		t.Fatal(err)
	}
	lengths := tracker.NewEpisodeLength("")
	s.Register(lengths)

	if _, _, err := s.Run(m.StartState()); err != nil {
		t.Fatal(err)
	}

	ended := lengths.Ended(timestep.Timeout) +
		lengths.Ended(timestep.TerminalStateReached)
	if ended != c.Episodes {
		t.Errorf("%d of %d episodes ended", ended, c.Episodes)
	}
	for i, n := range lengths.Data() {
		if n > c.MaxSteps {
			t.Errorf("episode %d ran %d steps past the cap", i, n)
		}
	}
}

func TestGreedyPolicyOnlyInVisitedStates(t *testing.T) {
	m := tabulartest.Corner(t)
	c := Default()
	c.Episodes = 1
	c.MaxSteps = 3

	s, err := New(m, c, 0)
	if err != nil {
		t.Fatal(err)
	}
	policy, _, err := s.Run(m.StartState())
	if err != nil {
		t.Fatal(err)
	}

	// Four steps are needed to carry the item to the far corner
	far := mdp.NewState(environment.Position{Row: 2, Col: 2}, 1, []int{0})
	if s.QTable().Has(far) {
		t.Errorf("%v visited within three steps", far)
	}
	if _, ok := policy.Action(far); ok {
		t.Error("policy acts in an unvisited state")
	}
}

func TestInvalidStart(t *testing.T) {
	m := tabulartest.Corner(t)
	s, err := New(m, Default(), 0)
	if err != nil {
		t.Fatal(err)
	}

	start := mdp.NewState(environment.Position{}, 0, []int{1, 1})
	if _, _, err := s.Run(start); err == nil {
		t.Error("expected error for wrong goal count")
	}
}

func TestRunsAreIndependent(t *testing.T) {
	m := tabulartest.Corner(t)
	start := m.StartState()
	c := Default()
	c.Episodes = 100
	c.Epsilon = 1
	c.EpsilonDecay = 0.98

	s, err := New(m, c, 6)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.Run(start); err != nil {
		t.Fatal(err)
	}
	_, second, err := s.Run(start)
	if err != nil {
		t.Fatal(err)
	}

	fresh, err := New(m, c, 6)
	if err != nil {
		t.Fatal(err)
	}
	_, want, err := fresh.Run(start)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(second, want) {
		t.Error("second run differs from a new solver's run")
	}
	if s.Epsilon() != fresh.Epsilon() {
		t.Errorf("epsilon = %v after two runs, want %v", s.Epsilon(),
			fresh.Epsilon())
	}
}

// TestUpdateUsesNextAction checks that the first update of an episode
// bootstraps from the value of the action selected in the next state,
// not from the largest action value there
func TestUpdateUsesNextAction(t *testing.T) {
	m := tabulartest.Corner(t)
	start := m.StartState()

	c := Default()
	c.Epsilon = 1
	c.Episodes = 1
	c.MaxSteps = 1

	// Distinct action values in every state one step from the start,
	// increasing with the action index so that Stay is greedy
	initial := make(map[mdp.State][]float64)
	for _, a := range m.Actions() {
		next, _ := m.Step(start, a)
		if _, ok := initial[next]; ok {
			continue
		}
		row := make([]float64, mdp.NumActions)
		for j := range row {
			row[j] = float64(10*(len(initial)+1) + j)
		}
		initial[next] = row
	}

	onPolicy := 0
	for seed := uint64(0); seed < 10; seed++ {
		s, err := New(m, c, seed)
		if err != nil {
			t.Fatal(err)
		}
		for state, row := range initial {
			for j, a := range m.Actions() {
				s.table.Set(state, a, row[j])
			}
		}

		if end := s.episode(start); end != timestep.Timeout {
			t.Fatalf("episode ended with %v, want a timeout", end)
		}

		// Exactly one action value of the start state was updated
		var taken []mdp.Action
		for j, a := range m.Actions() {
			if s.table.Get(start, a) != initial[start][j] {
				taken = append(taken, a)
			}
		}
		if len(taken) != 1 {
			t.Fatalf("seed %d: %d action values updated, want 1", seed,
				len(taken))
		}
		a := taken[0]
		next, r := m.Step(start, a)
		old := initial[start][a.Index()]
		got := s.table.Get(start, a)

		// Solve the update for the bootstrapped value, which must be one
		// of the action values of the next state
		bootstrap := ((got-old)/c.Alpha - r + old) / c.Gamma
		matched := -1
		for j, v := range initial[next] {
			if math.Abs(v-bootstrap) < 1e-9 {
				matched = j
			}
		}
		if matched < 0 {
			t.Fatalf("seed %d: update bootstrapped from %v, not an action "+
				"value of %v", seed, bootstrap, next)
		}

		nextAction := mdp.Actions()[matched]
		want := old + c.Alpha*(r+c.Gamma*s.table.Get(next, nextAction)-old)
		if next == start && nextAction == a {
			want = old + c.Alpha*(r+c.Gamma*old-old)
		}
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("seed %d: Q(%v, %v) = %v, want %v", seed, start, a, got,
				want)
		}

		maxTarget := old + c.Alpha*(r+c.Gamma*s.table.Max(next)-old)
		if next != start && nextAction != mdp.Stay && got == maxTarget {
			t.Errorf("seed %d: update used the largest action value", seed)
		}
		if nextAction != mdp.Stay {
			onPolicy++
		}
	}

	if onPolicy == 0 {
		t.Error("every next action was greedy, the update rule is untested")
	}
}

func TestConfigValidate(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}

	c.Epsilon, c.MinEpsilon = 0, 0.1
	if err := c.Validate(); err == nil {
		t.Error("expected error for minEpsilon above epsilon")
	}

	c.Epsilon, c.MinEpsilon = 0.1, 0.1
	if err := c.Validate(); err != nil {
		t.Errorf("equal epsilons rejected: %v", err)
	}
}
