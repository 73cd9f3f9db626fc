package experiment

import (
	"fmt"
	"io"
	"math"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"

	"github.com/samuelfneumann/gridlearn/environment/gridworld"
	"github.com/samuelfneumann/gridlearn/planner"
)

// BenchmarkConfig describes the grids the planners are benchmarked on.
// Trial t uses a grid generated from the seed of the experiment plus t.
type BenchmarkConfig struct {
	Trials       int     `yaml:"trials"`
	Size         int     `yaml:"size"`
	NumGoalCells int     `yaml:"goals"`
	ItemsPerGoal int     `yaml:"items"`
	ObstacleProb float64 `yaml:"obstacleProb"`
}

// DefaultBenchmark returns the default BenchmarkConfig
func DefaultBenchmark() BenchmarkConfig {
	return BenchmarkConfig{
		Trials:       20,
		Size:         10,
		NumGoalCells: 5,
		ItemsPerGoal: 5,
		ObstacleProb: 0.14,
	}
}

// Grid returns the generator Config of the benchmark grids
func (b BenchmarkConfig) Grid() gridworld.Config {
	return gridworld.Config{
		Size:         b.Size,
		NumGoalCells: b.NumGoalCells,
		ItemsPerGoal: b.ItemsPerGoal,
		ObstacleProb: b.ObstacleProb,
	}
}

// Validate returns an error describing why the BenchmarkConfig is
// invalid
func (b BenchmarkConfig) Validate() error {
	if b.Trials < 1 {
		return fmt.Errorf("validate: trials must be positive, got %d",
			b.Trials)
	}
	return b.Grid().Validate()
}

// Sample holds the measurements of a single planner over all trials
type Sample struct {
	Planner string
	Times   []float64 // Seconds
	Lengths []float64 // Cells on the path, NaN when no path was found
}

// Stats summarises a set of measurements
type Stats struct {
	Mean float64
	Std  float64 // Population standard deviation
	N    int     // Number of measurements that are not NaN
}

// Summarize returns the mean and standard deviation of the measurements
// in x, ignoring NaNs. If no measurement remains, the mean and standard
// deviation are NaN.
func Summarize(x []float64) Stats {
	values := make([]float64, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) {
			values = append(values, v)
		}
	}

	if len(values) == 0 {
		return Stats{Mean: math.NaN(), Std: math.NaN()}
	}
	return Stats{
		Mean: stat.Mean(values, nil),
		Std:  math.Sqrt(stat.PopVariance(values, nil)),
		N:    len(values),
	}
}

// TimeStats summarises the planning times of the Sample
func (s Sample) TimeStats() Stats {
	return Summarize(s.Times)
}

// LengthStats summarises the path lengths of the Sample
func (s Sample) LengthStats() Stats {
	return Summarize(s.Lengths)
}

// BenchmarkPlanners times each named planner on the route from the
// start cell to the first goal cell of each benchmark grid. Grids
// without goal cells are skipped.
func BenchmarkPlanners(c BenchmarkConfig, seed uint64,
	names []string) ([]Sample, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("benchmarkPlanners: %w", err)
	}

	planners := make([]planner.Planner, len(names))
	samples := make([]Sample, len(names))
	for i, name := range names {
		p, err := planner.Get(name)
		if err != nil {
			return nil, fmt.Errorf("benchmarkPlanners: %w", err)
		}
		planners[i] = p
		samples[i] = Sample{Planner: name}
	}

	for t := 0; t < c.Trials; t++ {
		g, err := gridworld.New(c.Grid(), rand.NewSource(seed+uint64(t)))
		if err != nil {
			return nil, fmt.Errorf("benchmarkPlanners: %w", err)
		}

		goals := g.GoalPositions()
		if len(goals) == 0 {
			continue
		}
		goal := goals[0]

		for i, plan := range planners {
			start := time.Now()
			path := plan(g, g.Start(), goal)
			elapsed := time.Since(start).Seconds()

			length := math.NaN()
			if len(path) > 0 {
				length = float64(len(path))
			}
			samples[i].Times = append(samples[i].Times, elapsed)
			samples[i].Lengths = append(samples[i].Lengths, length)
		}
	}

	return samples, nil
}

// WriteSummary writes the time and path length statistics of each
// Sample to w
func WriteSummary(w io.Writer, samples []Sample) error {
	for _, s := range samples {
		times, lengths := s.TimeStats(), s.LengthStats()
		_, err := fmt.Fprintf(w, "%-10s time mean %.6fs std %.6fs | "+
			"length mean %.2f std %.2f (%d/%d paths)\n", s.Planner,
			times.Mean, times.Std, lengths.Mean, lengths.Std, lengths.N,
			len(s.Lengths))
		if err != nil {
			return err
		}
	}
	return nil
}
