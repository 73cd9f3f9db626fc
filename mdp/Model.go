// Package mdp implements the Markov decision process of collecting items
// from goal cells on a grid and delivering them to the start cell.
package mdp

import (
	"errors"
	"fmt"

	"github.com/samuelfneumann/gridlearn/environment"
	"github.com/samuelfneumann/gridlearn/environment/gridworld"
)

// MaxEnumerable is the largest state space AllStates will enumerate
const MaxEnumerable = 5_000_000

// ErrStateSpaceTooLarge is returned when the full state space is larger
// than MaxEnumerable
var ErrStateSpaceTooLarge = errors.New("state space too large to enumerate")

// TerminalRule determines which states end an episode
type TerminalRule int

const (
	// TerminalDelivered states have no items left at any goal, nothing
	// carried and the agent back on the start cell
	TerminalDelivered TerminalRule = iota

	// TerminalCollected states have no items left at any goal, whether
	// or not the carried items were delivered
	TerminalCollected
)

func (t TerminalRule) String() string {
	switch t {
	case TerminalDelivered:
		return "delivered"
	case TerminalCollected:
		return "collected"
	default:
		return "unknown"
	}
}

// ParseTerminalRule returns the TerminalRule with the given name. The
// empty string names the default rule.
func ParseTerminalRule(name string) (TerminalRule, error) {
	switch name {
	case "", "delivered":
		return TerminalDelivered, nil
	case "collected":
		return TerminalCollected, nil
	default:
		return 0, fmt.Errorf("parseTerminalRule: unknown terminal rule %q",
			name)
	}
}

// Rewards are the reward components of a transition. The reward of a
// transition is the sum of Step, Pick for each item picked up and Return
// for each item dropped off.
type Rewards struct {
	Step   float64 `yaml:"step"`
	Pick   float64 `yaml:"pick"`
	Return float64 `yaml:"return"`
}

// DefaultRewards returns the default reward components
func DefaultRewards() Rewards {
	return Rewards{Step: -1, Pick: 10, Return: 20}
}

// Config configures a Model
type Config struct {
	Capacity int
	Rewards  Rewards
	Terminal TerminalRule
}

// DefaultConfig returns the default model configuration
func DefaultConfig() Config {
	return Config{Capacity: 3, Rewards: DefaultRewards()}
}

// Model is the item-collection MDP over a fixed grid. The model copies
// the geometry and initial goal counts of its grid on construction and
// never mutates the grid, so Step is a pure function of its arguments.
type Model struct {
	size      int
	obstacles []bool
	start     environment.Position

	goalPositions []environment.Position
	goalIndex     map[environment.Position]int
	initial       []int

	capacity int
	rewards  Rewards
	terminal TerminalRule
}

// New returns a new Model of the grid g
func New(g *gridworld.GridWorld, c Config) (*Model, error) {
	if c.Capacity < 1 {
		return nil, fmt.Errorf("new: capacity must be positive, got %d",
			c.Capacity)
	}
	if c.Terminal != TerminalDelivered && c.Terminal != TerminalCollected {
		return nil, fmt.Errorf("new: unknown terminal rule %d", c.Terminal)
	}
	if g.IsObstacle(g.Start()) {
		return nil, fmt.Errorf("new: start %v is an obstacle", g.Start())
	}

	size := g.Size()
	obstacles := make([]bool, size*size)
	for r := 0; r < size; r++ {
		for col := 0; col < size; col++ {
			p := environment.Position{Row: r, Col: col}
			obstacles[r*size+col] = g.IsObstacle(p)
		}
	}

	goals := g.Goals()
	positions := make([]environment.Position, len(goals))
	initial := make([]int, len(goals))
	index := make(map[environment.Position]int, len(goals))
	for i, goal := range goals {
		positions[i] = goal.Position
		initial[i] = goal.Remaining
		index[goal.Position] = i
	}

	return &Model{
		size:          size,
		obstacles:     obstacles,
		start:         g.Start(),
		goalPositions: positions,
		goalIndex:     index,
		initial:       initial,
		capacity:      c.Capacity,
		rewards:       c.Rewards,
		terminal:      c.Terminal,
	}, nil
}

// Size returns the side length of the grid
func (m *Model) Size() int {
	return m.size
}

// Start returns the start cell
func (m *Model) Start() environment.Position {
	return m.start
}

// StartState returns the state at the beginning of an episode: the
// agent on the start cell, carrying nothing, with every goal full
func (m *Model) StartState() State {
	return NewState(m.start, 0, m.initial)
}

// Capacity returns the maximum number of items the agent can carry
func (m *Model) Capacity() int {
	return m.capacity
}

// Rewards returns the reward components of the model
func (m *Model) Rewards() Rewards {
	return m.rewards
}

// Terminal returns the terminal rule of the model
func (m *Model) Terminal() TerminalRule {
	return m.terminal
}

// Actions returns the action set in enumeration order
func (m *Model) Actions() []Action {
	return Actions()
}

// GoalPositions returns the goal cells, index-aligned with the
// goal-remaining vector of each State
func (m *Model) GoalPositions() []environment.Position {
	positions := make([]environment.Position, len(m.goalPositions))
	copy(positions, m.goalPositions)
	return positions
}

// InitialItems returns the item counts of each goal at the start of an
// episode
func (m *Model) InitialItems() []int {
	items := make([]int, len(m.initial))
	copy(items, m.initial)
	return items
}

// InBounds returns whether p lies on the grid
func (m *Model) InBounds(p environment.Position) bool {
	return p.Row >= 0 && p.Row < m.size && p.Col >= 0 && p.Col < m.size
}

// IsObstacle returns whether p is blocked. Out of bounds cells are
// blocked.
func (m *Model) IsObstacle(p environment.Position) bool {
	if !m.InBounds(p) {
		return true
	}
	return m.obstacles[p.Row*m.size+p.Col]
}

// Step returns the state reached by taking action a in state s, and the
// reward of the transition. Moves off the grid or into an obstacle leave
// the position unchanged. Items are picked up automatically on a goal
// cell up to the remaining capacity, and all carried items are dropped
// automatically on the start cell.
//
// Step is deterministic and has no side effects. s must be valid for
// the model.
func (m *Model) Step(s State, a Action) (State, float64) {
	next := s.Position.Add(a.DRow, a.DCol)
	if m.IsObstacle(next) {
		next = s.Position
	}

	reward := m.rewards.Step
	ns := s
	ns.Position = next

	if i, ok := m.goalIndex[next]; ok {
		remaining := ns.Remaining(i)
		if free := m.capacity - ns.Carried; remaining > 0 && free > 0 {
			picked := min(remaining, free)
			ns = ns.withRemaining(i, remaining-picked)
			ns.Carried += picked
			reward += m.rewards.Pick * float64(picked)
		}
	}

	if next == m.start && ns.Carried > 0 {
		reward += m.rewards.Return * float64(ns.Carried)
		ns.Carried = 0
	}

	return ns, reward
}

// IsTerminal returns whether s ends an episode under the model's
// terminal rule
func (m *Model) IsTerminal(s State) bool {
	if s.TotalRemaining() > 0 {
		return false
	}
	if m.terminal == TerminalCollected {
		return true
	}
	return s.Carried == 0 && s.Position == m.start
}

// Valid returns whether s is a state of the model: a passable position,
// a carried count within capacity and a goal vector of the right length
// with each count within the goal's initial items
func (m *Model) Valid(s State) bool {
	if m.IsObstacle(s.Position) {
		return false
	}
	if s.Carried < 0 || s.Carried > m.capacity {
		return false
	}
	if s.NumGoals() != len(m.initial) {
		return false
	}
	for i, n := range m.initial {
		if s.Remaining(i) > n {
			return false
		}
	}
	return true
}

// NumStates returns the size of the full state space, the product of
// passable cells, carried counts and goal-remaining vectors. The second
// return value is false if the size exceeds MaxEnumerable, in which case
// the first is meaningless.
func (m *Model) NumStates() (int, bool) {
	cells := 0
	for _, blocked := range m.obstacles {
		if !blocked {
			cells++
		}
	}

	// Each factor is checked before multiplying so that huge capacities
	// or item counts cannot overflow
	n := cells
	factors := append([]int{m.capacity}, m.initial...)
	for _, k := range factors {
		if k >= MaxEnumerable/n {
			return 0, false
		}
		n *= k + 1
	}
	return n, true
}

// AllStates enumerates the full state space: passable positions in
// row-major order, then carried counts, then goal vectors with the last
// goal varying fastest. States that are unreachable from the start state
// are included. An error wrapping ErrStateSpaceTooLarge is returned if
// the space has more than MaxEnumerable states.
func (m *Model) AllStates() ([]State, error) {
	n, ok := m.NumStates()
	if !ok {
		return nil, fmt.Errorf("allStates: %w", ErrStateSpaceTooLarge)
	}

	vectors := m.goalVectors()
	states := make([]State, 0, n)
	for r := 0; r < m.size; r++ {
		for c := 0; c < m.size; c++ {
			p := environment.Position{Row: r, Col: c}
			if m.IsObstacle(p) {
				continue
			}
			for carried := 0; carried <= m.capacity; carried++ {
				for _, v := range vectors {
					states = append(states, NewState(p, carried, v))
				}
			}
		}
	}
	return states, nil
}

// goalVectors returns every goal-remaining vector, counting like an
// odometer from all zeros to the initial counts
func (m *Model) goalVectors() [][]int {
	total := 1
	for _, items := range m.initial {
		total *= items + 1
	}

	vectors := make([][]int, 0, total)
	current := make([]int, len(m.initial))
	for {
		v := make([]int, len(current))
		copy(v, current)
		vectors = append(vectors, v)

		i := len(current) - 1
		for ; i >= 0; i-- {
			if current[i] < m.initial[i] {
				current[i]++
				break
			}
			current[i] = 0
		}
		if i < 0 {
			return vectors
		}
	}
}
