package gridworld

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/gridlearn/environment"
	"github.com/samuelfneumann/gridlearn/utils/floatutils"
	"gonum.org/v1/gonum/spatial/r1"
)

const (
	// MaxAttempts is the number of failed generation attempts after
	// which the obstacle probability is relaxed on every further failure
	MaxAttempts int = 200

	// Relaxation is the amount the obstacle probability is lowered by
	// for each failed attempt past MaxAttempts
	Relaxation float64 = 0.01

	// MaxItemsPerGoal is the largest number of items a goal cell can hold
	MaxItemsPerGoal int = math.MaxUint16
)

// probability is the valid range of the obstacle probability
var probability = r1.Interval{Min: 0, Max: 1}

// Config describes a GridWorld to generate
type Config struct {
	Size         int
	NumGoalCells int
	ItemsPerGoal int
	ObstacleProb float64

	// Start is the corner to start in. If nil, the start is sampled
	// uniformly from the four corners.
	Start *environment.Position
}

// Validate returns an error describing why the Config cannot be used
// to generate a GridWorld, or nil if it can
func (c Config) Validate() error {
	if c.Size < 2 {
		return fmt.Errorf("validate: size must be at least 2 (size = %d)",
			c.Size)
	}
	if c.NumGoalCells < 0 {
		return fmt.Errorf("validate: number of goal cells cannot be "+
			"negative (goals = %d)", c.NumGoalCells)
	}
	if free := c.Size*c.Size - 1; c.NumGoalCells > free {
		return fmt.Errorf("validate: %d goal cells do not fit in %d "+
			"non-start cells", c.NumGoalCells, free)
	}
	if c.ItemsPerGoal < 0 || c.ItemsPerGoal > MaxItemsPerGoal {
		return fmt.Errorf("validate: items per goal must be in [0, %d] "+
			"(items = %d)", MaxItemsPerGoal, c.ItemsPerGoal)
	}
	if c.Start != nil && !environment.IsCorner(*c.Start, c.Size) {
		return fmt.Errorf("validate: start %v is not a corner", *c.Start)
	}
	return nil
}

// New generates a GridWorld in which every goal cell is reachable from
// the start cell. All randomness is drawn from src.
//
// Grids are generated repeatedly until the goals are reachable. After
// MaxAttempts failures, the obstacle probability is lowered by
// Relaxation on each further failure. An obstacle probability of 0
// produces an obstacle-free grid, so generation always terminates.
func New(c Config, src rand.Source) (*GridWorld, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	var starter environment.Starter
	if c.Start != nil {
		starter = environment.NewSingleStart(*c.Start)
	} else {
		starter = environment.NewCornerStarter(c.Size, src)
	}

	rng := rand.New(src)
	p := floatutils.ClipInterval(c.ObstacleProb, probability)
	g := &GridWorld{size: c.Size}

	for attempts := 1; ; attempts++ {
		g.generate(rng, starter, c.NumGoalCells, c.ItemsPerGoal, p)
		if g.AllGoalsReachable() {
			g.obstacleProb = p
			g.attempts = attempts
			return g, nil
		}

		if p == 0 {
			return nil, fmt.Errorf("new: goals unreachable on an " +
				"obstacle-free grid")
		}
		if attempts > MaxAttempts {
			p = math.Max(0, p-Relaxation)
		}
	}
}

// generate performs a single generation attempt, overwriting the
// GridWorld's layout
func (g *GridWorld) generate(rng *rand.Rand, starter environment.Starter,
	numGoals, items int, p float64) {
	n := g.size

	// Place random obstacles
	g.cells = make([]Cell, n*n)
	for i := range g.cells {
		if rng.Float64() < p {
			g.cells[i] = Obstacle
		}
	}

	g.start = starter.Start()

	// Sample distinct goal cells from all non-start cells
	candidates := make([]environment.Position, 0, n*n-1)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if pos := (environment.Position{Row: r, Col: c}); pos != g.start {
				candidates = append(candidates, pos)
			}
		}
	}
	perm := rng.Perm(len(candidates))

	g.goals = make([]GoalCell, 0, numGoals)
	g.goalIndex = make(map[environment.Position]int, numGoals)
	for i := 0; i < numGoals; i++ {
		pos := candidates[perm[i]]
		g.set(pos, Empty)
		g.addGoal(pos, items)
	}

	// Corners are never obstacles
	for _, corner := range environment.Corners(n) {
		if g.At(corner) == Obstacle {
			g.set(corner, Empty)
		}
	}
}
