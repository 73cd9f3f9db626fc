// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"
)

// StepType denotes the type of step that a TimeStep can be, either  first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// EndType describes why an episode ended
type EndType int

const (
	// Unknown is the EndType of any TimeStep that is not the last
	Unknown EndType = iota

	// TerminalStateReached indicates that all items were delivered
	TerminalStateReached

	// Timeout indicates that the episode step limit was reached
	Timeout

	// NoAction indicates that the policy had no action for the state
	// reached
	NoAction
)

func (e EndType) String() string {
	switch e {
	case TerminalStateReached:
		return "TerminalStateReached"
	case Timeout:
		return "Timeout"
	case NoAction:
		return "NoAction"
	default:
		return "Unknown"
	}
}

// TimeStep packages together a single timestep of an episode. Episodic
// learners emit one TimeStep per transition so that trackers can record
// returns and episode lengths.
type TimeStep struct {
	StepType
	Reward   float64
	Discount float64
	Number   int
	endType  EndType
}

// New returns a new TimeStep
func New(t StepType, r, d float64, n int) TimeStep {
	return TimeStep{StepType: t, Reward: r, Discount: d, Number: n}
}

// First returns whether a TimeStep is the first in an episode
func (t *TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an episode
func (t *TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an episode
func (t *TimeStep) Last() bool {
	return t.StepType == Last
}

// SetEnd sets the reason the episode ended. It panics if the TimeStep
// is not the last in its episode.
func (t *TimeStep) SetEnd(e EndType) {
	if !t.Last() {
		panic("setEnd: cannot set end type of a non-last timestep")
	}
	t.endType = e
}

// EndType returns the reason the episode ended, or Unknown if the
// TimeStep is not the last in its episode
func (t *TimeStep) EndType() EndType {
	return t.endType
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  Discount: %.2f  |  " +
		"Step Number:  %v"

	return fmt.Sprintf(str, t.StepType, t.Reward, t.Discount, t.Number)
}
