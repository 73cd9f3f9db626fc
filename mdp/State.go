package mdp

import (
	"fmt"
	"math"
	"strings"

	"github.com/samuelfneumann/gridlearn/environment"
)

// maxCount is the largest per-goal item count a State can hold
const maxCount = math.MaxUint16

// State is a state of the item-collection MDP: the agent's position,
// the number of items it carries, and the number of items remaining at
// each goal cell, index-aligned with Model.GoalPositions.
//
// States are comparable values and can be used directly as map keys.
// The goal-remaining vector is stored packed, two bytes per goal.
type State struct {
	Position environment.Position
	Carried  int
	goals    string
}

// NewState returns a new State. It panics if a remaining count is
// negative or larger than 65535.
func NewState(pos environment.Position, carried int, remaining []int) State {
	packed := make([]byte, 2*len(remaining))
	for i, n := range remaining {
		if n < 0 || n > maxCount {
			panic(fmt.Sprintf("newState: remaining count %d out of range", n))
		}
		packed[2*i] = byte(n >> 8)
		packed[2*i+1] = byte(n)
	}
	return State{Position: pos, Carried: carried, goals: string(packed)}
}

// NumGoals returns the length of the goal-remaining vector
func (s State) NumGoals() int {
	return len(s.goals) / 2
}

// Remaining returns the number of items remaining at goal i
func (s State) Remaining(i int) int {
	return int(s.goals[2*i])<<8 | int(s.goals[2*i+1])
}

// Goals returns the goal-remaining vector
func (s State) Goals() []int {
	remaining := make([]int, s.NumGoals())
	for i := range remaining {
		remaining[i] = s.Remaining(i)
	}
	return remaining
}

// TotalRemaining returns the number of items remaining over all goals
func (s State) TotalRemaining() int {
	total := 0
	for i := 0; i < s.NumGoals(); i++ {
		total += s.Remaining(i)
	}
	return total
}

// withRemaining returns a copy of s with goal i holding n items
func (s State) withRemaining(i, n int) State {
	packed := []byte(s.goals)
	packed[2*i] = byte(n >> 8)
	packed[2*i+1] = byte(n)
	s.goals = string(packed)
	return s
}

func (s State) String() string {
	counts := make([]string, s.NumGoals())
	for i := range counts {
		counts[i] = fmt.Sprint(s.Remaining(i))
	}
	return fmt.Sprintf("(%v, %d, (%s))", s.Position, s.Carried,
		strings.Join(counts, ", "))
}
