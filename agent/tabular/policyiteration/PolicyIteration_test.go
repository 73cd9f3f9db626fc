package policyiteration

import (
	"math"
	"testing"

	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/agent/tabular/tabulartest"
	"github.com/samuelfneumann/gridlearn/agent/tabular/valueiteration"
	"github.com/samuelfneumann/gridlearn/environment"
	"github.com/samuelfneumann/gridlearn/mdp"
)

func TestOptimalRollout(t *testing.T) {
	m := tabulartest.Corner(t)
	pi, err := New(m, Default())
	if err != nil {
		t.Fatal(err)
	}

	policy, _, err := pi.Run(m.StartState())
	if err != nil {
		t.Fatal(err)
	}
	if !pi.Stable() {
		t.Errorf("policy not stable after %d iterations", pi.Iterations())
	}

	ep := agent.Rollout(m, policy, m.StartState(), 100)
	if !ep.Terminal || ep.Steps() != tabulartest.OptimalSteps {
		t.Errorf("rollout terminal %v after %d steps, want %d", ep.Terminal,
			ep.Steps(), tabulartest.OptimalSteps)
	}
	if ep.Return != tabulartest.OptimalReturn {
		t.Errorf("return = %v, want %v", ep.Return, tabulartest.OptimalReturn)
	}
}

func TestAgreesWithValueIteration(t *testing.T) {
	m := tabulartest.Detour(t)
	start := m.StartState()

	pi, err := New(m, Default())
	if err != nil {
		t.Fatal(err)
	}
	piPolicy, piValues, err := pi.Run(start)
	if err != nil {
		t.Fatal(err)
	}

	c := valueiteration.Default()
	c.StateSet = valueiteration.Reachable
	vi, err := valueiteration.New(m, c)
	if err != nil {
		t.Fatal(err)
	}
	viPolicy, viValues, err := vi.Run(start)
	if err != nil {
		t.Fatal(err)
	}

	if d := math.Abs(piValues[start] - viValues[start]); d > 0.2 {
		t.Errorf("start values differ by %v: %v, %v", d, piValues[start],
			viValues[start])
	}

	piEp := agent.Rollout(m, piPolicy, start, 100)
	viEp := agent.Rollout(m, viPolicy, start, 100)
	if piEp.Return != viEp.Return || piEp.Steps() != viEp.Steps() {
		t.Errorf("rollouts differ: pi (%v, %d), vi (%v, %d)", piEp.Return,
			piEp.Steps(), viEp.Return, viEp.Steps())
	}
	if piEp.Steps() != tabulartest.DetourOptimalSteps {
		t.Errorf("rollout took %d steps, want %d", piEp.Steps(),
			tabulartest.DetourOptimalSteps)
	}
}

func TestTerminalStay(t *testing.T) {
	m := tabulartest.Corner(t)
	pi, err := New(m, Default())
	if err != nil {
		t.Fatal(err)
	}
	policy, values, err := pi.Run(m.StartState())
	if err != nil {
		t.Fatal(err)
	}

	found := false
	for s, v := range values {
		if !m.IsTerminal(s) {
			continue
		}
		found = true
		if a, _ := policy.Action(s); a != mdp.Stay || v != 0 {
			t.Errorf("terminal %v: action %v, value %v", s, a, v)
		}
	}
	if !found {
		t.Error("no terminal state in the reachable set")
	}
}

func TestCappedStateSet(t *testing.T) {
	m := tabulartest.Detour(t)
	c := Default()
	c.StateLimit = 5

	pi, err := New(m, c)
	if err != nil {
		t.Fatal(err)
	}
	policy, values, err := pi.Run(m.StartState())
	if err != nil {
		t.Fatal(err)
	}
	if len(values) != 5 || len(policy.(agent.TabularPolicy)) != 5 {
		t.Errorf("capped run covers %d states, want 5", len(values))
	}
}

func TestInvalidStart(t *testing.T) {
	m := tabulartest.Corner(t)
	pi, err := New(m, Default())
	if err != nil {
		t.Fatal(err)
	}

	start := mdp.NewState(environment.Position{}, 2, []int{1})
	if _, _, err := pi.Run(start); err == nil {
		t.Error("expected error for over-capacity start")
	}
}

func TestConfigValidate(t *testing.T) {
	c := Default()
	c.MaxEvaluationSweeps = 0
	if err := c.Validate(); err == nil {
		t.Error("expected error for zero evaluation sweeps")
	}
	if err := Default().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}
