package experiment

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/environment/gridworld"
	"github.com/samuelfneumann/gridlearn/experiment/tracker"
	"github.com/samuelfneumann/gridlearn/mdp"
)

// Result is the outcome of a trial
type Result struct {
	Grid    *gridworld.GridWorld
	Model   *mdp.Model
	Policy  agent.Policy
	Values  agent.Values
	Elapsed time.Duration // Time taken by the solver
	Rollout Trajectory    // Rollout of the solver's policy
	Relaxed bool          // Whether the obstacle probability was relaxed
}

// RunTrial runs a single trial of the experiment: a grid is generated
// from the configured seed, the configured solver is run from the start
// state, and the returned policy is rolled out on a copy of the grid.
//
// Solvers that log are given log; learning solvers additionally send
// their timesteps to each tracker. All trackers are saved once the
// solver has finished.
func RunTrial(c Config, log zerolog.Logger,
	trackers ...tracker.Tracker) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, fmt.Errorf("runTrial: %w", err)
	}

	g, m, err := c.Environment.Create(c.Seed)
	if err != nil {
		return Result{}, fmt.Errorf("runTrial: %w", err)
	}
	result := Result{Grid: g, Model: m}

	if c.Environment.Layout == nil && g.Attempts() > gridworld.MaxAttempts {
		result.Relaxed = true
		log.Warn().
			Float64("requested", c.Environment.ObstacleProb).
			Float64("used", g.ObstacleProb()).
			Int("attempts", g.Attempts()).
			Msg("obstacle probability relaxed to reach all goals")
	}
	log.Debug().
		Int("size", g.Size()).
		Int("goals", len(g.GoalPositions())).
		Int("items", g.ItemsRemaining()).
		Stringer("start", g.Start()).
		Msg("grid generated")

	solver, err := c.Solver.CreateSolver(m, c.Seed)
	if err != nil {
		return Result{}, fmt.Errorf("runTrial: %w", err)
	}
	if l, ok := solver.(agent.Logger); ok {
		l.SetLogger(log)
	}
	if l, ok := solver.(agent.Learner); ok {
		for _, t := range trackers {
			l.Register(t)
		}
	}

	start := time.Now()
	result.Policy, result.Values, err = solver.Run(m.StartState())
	result.Elapsed = time.Since(start)
	if err != nil {
		return Result{}, fmt.Errorf("runTrial: %w", err)
	}

	if err := tracker.Multi(trackers).Save(); err != nil {
		return Result{}, fmt.Errorf("runTrial: %w", err)
	}

	result.Rollout = Rollout(g, m, result.Policy, c.RolloutSteps)
	log.Info().
		Str("solver", string(c.Solver.Type)).
		Dur("elapsed", result.Elapsed).
		Int("states", len(result.Values)).
		Int("steps", result.Rollout.Steps()).
		Float64("return", result.Rollout.Return).
		Int("delivered", result.Rollout.Delivered).
		Bool("terminal", result.Rollout.Terminal).
		Msg("trial finished")

	return result, nil
}
