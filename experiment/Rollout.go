package experiment

import (
	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/environment"
	"github.com/samuelfneumann/gridlearn/environment/gridworld"
	"github.com/samuelfneumann/gridlearn/mdp"
)

// Trajectory is a policy rollout replayed on a grid
type Trajectory struct {
	agent.Episode
	Path      []environment.Position // Cells visited, including the start
	Picked    int                    // Items picked up from goal cells
	Delivered int                    // Items dropped at the start cell

	// Grid is the copy of the rolled out grid with every picked up
	// item removed
	Grid *gridworld.GridWorld
}

// Rollout follows policy p in model m from the start state for at most
// maxSteps transitions and mirrors every pickup on a copy of g. The
// grid g itself is never mutated. The model must have been built from
// g.
func Rollout(g *gridworld.GridWorld, m *mdp.Model, p agent.Policy,
	maxSteps int) Trajectory {
	ep := agent.Rollout(m, p, m.StartState(), maxSteps)

	traj := Trajectory{
		Episode: ep,
		Path:    make([]environment.Position, 0, len(ep.States)),
		Grid:    g.Copy(),
	}
	traj.Path = append(traj.Path, ep.States[0].Position)

	goals := m.GoalPositions()
	for i := 1; i < len(ep.States); i++ {
		prev, next := ep.States[i-1], ep.States[i]
		traj.Path = append(traj.Path, next.Position)

		picked := 0
		for j, goal := range goals {
			if diff := prev.Remaining(j) - next.Remaining(j); diff > 0 {
				picked += traj.Grid.PickItems(goal, diff)
			}
		}
		traj.Picked += picked

		// Items are conserved: whatever was carried or picked up and is
		// no longer carried has been dropped
		traj.Delivered += prev.Carried + picked - next.Carried
	}

	return traj
}
