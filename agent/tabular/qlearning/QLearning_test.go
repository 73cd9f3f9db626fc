package qlearning

import (
	"reflect"
	"testing"

	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/agent/tabular/tabulartest"
	"github.com/samuelfneumann/gridlearn/experiment/tracker"
	"github.com/samuelfneumann/gridlearn/mdp"
)

func decaying() Config {
	c := Default()
	c.Epsilon = 1
	c.EpsilonDecay = 0.995
	c.MinEpsilon = 0.01
	c.MaxSteps = 100
	return c
}

func TestLearnsOptimalRollout(t *testing.T) {
	m := tabulartest.Corner(t)
	q, err := New(m, decaying(), 1)
	if err != nil {
		t.Fatal(err)
	}

	policy, values, err := q.Run(m.StartState())
	if err != nil {
		t.Fatal(err)
	}

	ep := agent.Rollout(m, policy, m.StartState(), 100)
	if !ep.Terminal || ep.Steps() != tabulartest.OptimalSteps {
		t.Errorf("rollout terminal %v after %d steps, want %d", ep.Terminal,
			ep.Steps(), tabulartest.OptimalSteps)
	}
	if ep.Return != tabulartest.OptimalReturn {
		t.Errorf("return = %v, want %v", ep.Return, tabulartest.OptimalReturn)
	}

	if len(values) != q.QTable().Len() {
		t.Errorf("%d values for %d visited states", len(values),
			q.QTable().Len())
	}
	if q.Epsilon() != 0.01 {
		t.Errorf("epsilon = %v, want decay to 0.01", q.Epsilon())
	}
}

func TestTracksEpisodes(t *testing.T) {
	m := tabulartest.Corner(t)
	c := decaying()
	c.Episodes = 50
	c.MaxSteps = 20

	q, err := New(m, c, 2)
	if err != nil {
		t.Fatal(err)
	}
	returns := tracker.NewReturn("")
	lengths := tracker.NewEpisodeLength("")
	q.Register(returns)
	q.Register(lengths)

	if _, _, err := q.Run(m.StartState()); err != nil {
		t.Fatal(err)
	}

	if len(returns.Data()) != c.Episodes || len(lengths.Data()) != c.Episodes {
		t.Fatalf("tracked %d returns and %d lengths, want %d",
			len(returns.Data()), len(lengths.Data()), c.Episodes)
	}
	for i, n := range lengths.Data() {
		if n < tabulartest.OptimalSteps || n > c.MaxSteps {
			t.Errorf("episode %d has length %d", i, n)
		}
		if returns.Data()[i] > tabulartest.OptimalReturn {
			t.Errorf("episode %d return %v exceeds optimum", i,
				returns.Data()[i])
		}
	}
}

func TestDeterministic(t *testing.T) {
	m := tabulartest.Corner(t)
	c := decaying()
	c.Episodes = 20

	var values []agent.Values
	for i := 0; i < 2; i++ {
		q, err := New(m, c, 9)
		if err != nil {
			t.Fatal(err)
		}
		_, v, err := q.Run(m.StartState())
		if err != nil {
			t.Fatal(err)
		}
		values = append(values, v)
	}

	if len(values[0]) != len(values[1]) {
		t.Fatalf("same seed visited %d and %d states", len(values[0]),
			len(values[1]))
	}
	for s, v := range values[0] {
		if values[1][s] != v {
			t.Errorf("same seed learned different values at %v", s)
		}
	}
}

func TestTerminalStart(t *testing.T) {
	m := tabulartest.Corner(t)
	q, err := New(m, Default(), 0)
	if err != nil {
		t.Fatal(err)
	}

	start := mdp.NewState(m.Start(), 0, []int{0})
	policy, values, err := q.Run(start)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := policy.Action(start); ok || len(values) != 0 {
		t.Error("terminal start should learn nothing")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []func(*Config){
		func(c *Config) { c.Alpha = 0 },
		func(c *Config) { c.Gamma = -0.1 },
		func(c *Config) { c.Epsilon = 2 },
		func(c *Config) { c.EpsilonDecay = 0 },
		func(c *Config) { c.Episodes = 0 },
		func(c *Config) { c.MaxSteps = 0 },
		func(c *Config) { c.Epsilon, c.MinEpsilon = 0, 0.1 },
	}

	for i, modify := range tests {
		c := Default()
		modify(&c)
		if _, err := New(tabulartest.Corner(t), c, 0); err == nil {
			t.Errorf("test %d: expected error for %+v", i, c)
		}
	}
}

func TestRunsAreIndependent(t *testing.T) {
	m := tabulartest.Corner(t)
	start := m.StartState()
	c := decaying()
	c.Episodes = 100

	q, err := New(m, c, 3)
	if err != nil {
		t.Fatal(err)
	}
	_, first, err := q.Run(start)
	if err != nil {
		t.Fatal(err)
	}
	firstStart := first[start]
	if _, _, err := q.Run(start); err != nil {
		t.Fatal(err)
	}

	fresh, err := New(m, c, 3)
	if err != nil {
		t.Fatal(err)
	}
	_, want, err := fresh.Run(start)
	if err != nil {
		t.Fatal(err)
	}

	if first[start] != firstStart {
		t.Errorf("second run changed the returned start value from %v to %v",
			firstStart, first[start])
	}
	if !reflect.DeepEqual(q.QTable().Values(), want) {
		t.Error("second run differs from a new solver's run")
	}
	if q.Epsilon() != fresh.Epsilon() {
		t.Errorf("epsilon = %v after two runs, want %v", q.Epsilon(),
			fresh.Epsilon())
	}
}
