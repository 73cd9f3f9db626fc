package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/samuelfneumann/gridlearn/experiment"
	"github.com/samuelfneumann/gridlearn/experiment/plot"
	"github.com/samuelfneumann/gridlearn/planner"
)

// BenchCommand returns the command that benchmarks the planners on
// generated grids
func BenchCommand() *cobra.Command {
	var html string
	var trials int

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark the planners on generated grids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, log, err := setup(cmd)
			if err != nil {
				return err
			}
			if trials > 0 {
				c.Benchmark.Trials = trials
			}

			log.Debug().Int("trials", c.Benchmark.Trials).
				Uint64("seed", c.Seed).Msg("benchmarking planners")
			samples, err := experiment.BenchmarkPlanners(c.Benchmark, c.Seed,
				planner.Names())
			if err != nil {
				return err
			}
			if err := experiment.WriteSummary(cmd.OutOrStdout(),
				samples); err != nil {
				return err
			}

			if html == "" {
				return nil
			}
			f, err := os.Create(html)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := plot.Benchmark(f, samples); err != nil {
				return err
			}
			log.Info().Str("file", html).Msg("benchmark chart saved")
			return nil
		},
	}
	cmd.Flags().StringVar(&html, "html", "",
		"Save bar charts of the benchmark as an HTML page")
	cmd.Flags().IntVar(&trials, "trials", 0,
		"Number of grids, overriding the configured number")
	return cmd
}
