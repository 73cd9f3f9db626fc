package mdp

import (
	"errors"
	"math"
	"testing"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/gridlearn/environment"
	"github.com/samuelfneumann/gridlearn/environment/gridworld"
)

func pos(r, c int) environment.Position {
	return environment.Position{Row: r, Col: c}
}

func newModel(t *testing.T, g *gridworld.GridWorld, capacity int,
	terminal TerminalRule) *Model {
	t.Helper()

	c := DefaultConfig()
	c.Capacity = capacity
	c.Terminal = terminal
	m, err := New(g, c)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func corridor() *gridworld.GridWorld {
	return gridworld.MustParse(
		"S...2",
		".....",
		".#...",
		".....",
		".....",
	)
}

func TestStepPickUp(t *testing.T) {
	m := newModel(t, corridor(), 3, TerminalDelivered)

	s := NewState(pos(0, 3), 0, []int{2})
	next, reward := m.Step(s, Right)

	want := NewState(pos(0, 4), 2, []int{0})
	if next != want {
		t.Errorf("step = %v, want %v", next, want)
	}
	if reward != -1+2*10 {
		t.Errorf("reward = %v, want %v", reward, -1+2*10)
	}
}

func TestStepPartialPickUp(t *testing.T) {
	m := newModel(t, corridor(), 3, TerminalDelivered)

	s := NewState(pos(1, 4), 2, []int{2})
	next, reward := m.Step(s, Up)

	want := NewState(pos(0, 4), 3, []int{1})
	if next != want {
		t.Errorf("step = %v, want %v", next, want)
	}
	if reward != 9 {
		t.Errorf("reward = %v, want 9", reward)
	}

	// Full agents pick nothing up
	next, reward = m.Step(next, Stay)
	if next != want || reward != -1 {
		t.Errorf("stay while full = (%v, %v), want (%v, -1)", next, reward,
			want)
	}
}

func TestStepDeposit(t *testing.T) {
	m := newModel(t, corridor(), 3, TerminalDelivered)

	s := NewState(pos(0, 1), 2, []int{0})
	next, reward := m.Step(s, Left)

	want := NewState(pos(0, 0), 0, []int{0})
	if next != want {
		t.Errorf("step = %v, want %v", next, want)
	}
	if reward != -1+2*20 {
		t.Errorf("reward = %v, want %v", reward, -1+2*20)
	}
	if !m.IsTerminal(next) {
		t.Errorf("%v should be terminal", next)
	}
}

func TestStepBlocked(t *testing.T) {
	m := newModel(t, corridor(), 3, TerminalDelivered)

	tests := []struct {
		s State
		a Action
	}{
		{NewState(pos(0, 0), 0, []int{2}), Up},
		{NewState(pos(0, 0), 0, []int{2}), Left},
		{NewState(pos(4, 4), 1, []int{1}), Down},
		{NewState(pos(1, 1), 0, []int{2}), Down}, // obstacle at (2, 1)
		{NewState(pos(3, 3), 0, []int{2}), Stay},
	}

	for _, test := range tests {
		next, reward := m.Step(test.s, test.a)
		if next != test.s {
			t.Errorf("%v from %v moved to %v", test.a, test.s, next)
		}
		if reward != -1 {
			t.Errorf("%v from %v: reward %v, want -1", test.a, test.s, reward)
		}
	}
}

func TestStepPure(t *testing.T) {
	g := corridor()
	m := newModel(t, g, 2, TerminalDelivered)

	s := NewState(pos(0, 3), 0, []int{2})
	before := s.String()

	n1, r1 := m.Step(s, Right)
	n2, r2 := m.Step(s, Right)
	if n1 != n2 || r1 != r2 {
		t.Errorf("step not deterministic: (%v, %v) != (%v, %v)", n1, r1, n2, r2)
	}
	if s.String() != before {
		t.Errorf("step mutated its argument: %v != %v", s, before)
	}
	if g.ItemsRemaining() != 2 {
		t.Errorf("step mutated the grid: %d items remain", g.ItemsRemaining())
	}
}

func TestRandomWalkInvariants(t *testing.T) {
	g, err := gridworld.New(gridworld.Config{Size: 6, NumGoalCells: 3,
		ItemsPerGoal: 4, ObstacleProb: 0.15}, rand.NewSource(11))
	if err != nil {
		t.Fatal(err)
	}
	m := newModel(t, g, 3, TerminalDelivered)
	total := g.ItemsRemaining()
	rng := rand.New(rand.NewSource(5))

	s := m.StartState()
	delivered := 0
	for i := 0; i < 5000; i++ {
		a := actions[rng.Intn(len(actions))]
		next, _ := m.Step(s, a)

		if !m.Valid(next) {
			t.Fatalf("invalid state %v", next)
		}
		if environment.Manhattan(s.Position, next.Position) > 1 {
			t.Fatalf("%v -> %v is not a unit move", s, next)
		}
		for j := 0; j < next.NumGoals(); j++ {
			if next.Remaining(j) > s.Remaining(j) {
				t.Fatalf("goal %d refilled: %v -> %v", j, s, next)
			}
		}
		if next.Carried < s.Carried {
			if next.Position != m.Start() || next.Carried != 0 {
				t.Fatalf("items lost away from start: %v -> %v", s, next)
			}
			delivered += s.Carried
		}
		if next.Carried+next.TotalRemaining()+delivered != total {
			t.Fatalf("items not conserved at %v", next)
		}

		s = next
		if m.IsTerminal(s) {
			s = m.StartState()
			delivered = 0
		}
	}
}

func TestTerminalRules(t *testing.T) {
	collected := NewState(pos(0, 4), 2, []int{0})
	delivered := NewState(pos(0, 0), 0, []int{0})
	pending := NewState(pos(0, 0), 0, []int{1})
	away := NewState(pos(4, 4), 0, []int{0})

	tests := []struct {
		rule TerminalRule
		s    State
		want bool
	}{
		{TerminalDelivered, collected, false},
		{TerminalDelivered, delivered, true},
		{TerminalDelivered, pending, false},
		{TerminalDelivered, away, false},
		{TerminalCollected, collected, true},
		{TerminalCollected, delivered, true},
		{TerminalCollected, pending, false},
		{TerminalCollected, away, true},
	}

	for _, test := range tests {
		m := newModel(t, corridor(), 3, test.rule)
		if got := m.IsTerminal(test.s); got != test.want {
			t.Errorf("%v: isTerminal(%v) = %v, want %v", test.rule, test.s,
				got, test.want)
		}
	}
}

func TestParseTerminalRule(t *testing.T) {
	for _, rule := range []TerminalRule{TerminalDelivered, TerminalCollected} {
		got, err := ParseTerminalRule(rule.String())
		if err != nil || got != rule {
			t.Errorf("parse %v = %v, %v", rule, got, err)
		}
	}
	if _, err := ParseTerminalRule("returned"); err == nil {
		t.Error("expected error for unknown rule")
	}
}

func TestNewInvalidCapacity(t *testing.T) {
	c := DefaultConfig()
	c.Capacity = 0
	if _, err := New(corridor(), c); err == nil {
		t.Error("expected error for zero capacity")
	}
}

func TestAllStates(t *testing.T) {
	g := gridworld.MustParse(
		"S.2",
		".#.",
		"...",
	)
	m := newModel(t, g, 1, TerminalDelivered)

	states, err := m.AllStates()
	if err != nil {
		t.Fatal(err)
	}

	// 8 passable cells, 2 carried counts, 3 goal counts
	if len(states) != 48 {
		t.Errorf("len(states) = %d, want 48", len(states))
	}
	if n, ok := m.NumStates(); !ok || n != len(states) {
		t.Errorf("numStates = %d, %v, want %d", n, ok, len(states))
	}
	if first := NewState(pos(0, 0), 0, []int{0}); states[0] != first {
		t.Errorf("first state = %v, want %v", states[0], first)
	}

	seen := make(map[State]bool)
	for _, s := range states {
		if seen[s] {
			t.Errorf("duplicate state %v", s)
		}
		seen[s] = true
		if !m.Valid(s) {
			t.Errorf("invalid state %v", s)
		}
	}
	if !seen[m.StartState()] {
		t.Error("start state not enumerated")
	}
}

func TestAllStatesTooLarge(t *testing.T) {
	g, err := gridworld.New(gridworld.Config{Size: 10, NumGoalCells: 5,
		ItemsPerGoal: 9}, rand.NewSource(0))
	if err != nil {
		t.Fatal(err)
	}
	m := newModel(t, g, 3, TerminalDelivered)

	if _, ok := m.NumStates(); ok {
		t.Error("numStates should overflow the enumeration limit")
	}
	if _, err := m.AllStates(); !errors.Is(err, ErrStateSpaceTooLarge) {
		t.Errorf("expected ErrStateSpaceTooLarge, got %v", err)
	}
}

func TestNumStatesHugeCounts(t *testing.T) {
	g := gridworld.MustParse(
		"S.1",
		"...",
		"...",
	)
	m := newModel(t, g, math.MaxInt, TerminalDelivered)

	if n, ok := m.NumStates(); ok {
		t.Errorf("numStates = %d for capacity %d", n, m.Capacity())
	}
	if _, err := m.AllStates(); !errors.Is(err, ErrStateSpaceTooLarge) {
		t.Errorf("expected ErrStateSpaceTooLarge, got %v", err)
	}

	// Just under the limit: 9 cells, MaxEnumerable/18 carried counts and
	// 2 goal counts
	m = newModel(t, g, MaxEnumerable/18-1, TerminalDelivered)
	if n, ok := m.NumStates(); !ok || n != 9*(MaxEnumerable/18)*2 {
		t.Errorf("numStates = %d, %v", n, ok)
	}
}

func TestReachable(t *testing.T) {
	m := newModel(t, corridor(), 3, TerminalDelivered)
	start := m.StartState()

	states, complete := Reachable(m, start, 0)
	if !complete {
		t.Fatal("small state space should be fully explored")
	}
	if states[0] != start {
		t.Errorf("first state = %v, want %v", states[0], start)
	}

	seen := make(map[State]bool)
	foundTerminal := false
	for _, s := range states {
		if seen[s] {
			t.Errorf("duplicate state %v", s)
		}
		seen[s] = true
		if !m.Valid(s) {
			t.Errorf("invalid state %v", s)
		}
		foundTerminal = foundTerminal || m.IsTerminal(s)
	}
	if !foundTerminal {
		t.Error("no terminal state reached")
	}

	// Every successor of a non-terminal state is discovered
	for _, s := range states {
		if m.IsTerminal(s) {
			continue
		}
		for _, a := range m.Actions() {
			if next, _ := m.Step(s, a); !seen[next] {
				t.Errorf("successor %v of %v not discovered", next, s)
			}
		}
	}

	capped, complete := Reachable(m, start, 10)
	if complete || len(capped) != 10 {
		t.Errorf("capped exploration = %d states, complete %v", len(capped),
			complete)
	}
	for i := range capped {
		if capped[i] != states[i] {
			t.Errorf("capped order differs at %d: %v != %v", i, capped[i],
				states[i])
		}
	}
}

func TestStateString(t *testing.T) {
	s := NewState(pos(1, 2), 3, []int{0, 4})
	if got, want := s.String(), "((1, 2), 3, (0, 4))"; got != want {
		t.Errorf("string = %q, want %q", got, want)
	}
}

func TestActionIndex(t *testing.T) {
	for i, a := range Actions() {
		if a.Index() != i {
			t.Errorf("%v index = %d, want %d", a, a.Index(), i)
		}
	}
	if (Action{DRow: 2}).Index() != -1 {
		t.Error("invalid action has an index")
	}
}
