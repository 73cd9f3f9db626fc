package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/experiment"
	"github.com/samuelfneumann/gridlearn/experiment/tracker"
	"github.com/samuelfneumann/gridlearn/render"
	"github.com/samuelfneumann/gridlearn/utils/matutils"
)

// SolveCommand returns the command that runs the configured solver and
// rolls out its policy
func SolveCommand() *cobra.Command {
	var png string
	var progress bool
	var returns string
	var lengths string

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Run the configured solver and roll out its policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, log, err := setup(cmd)
			if err != nil {
				return err
			}

			var trackers []tracker.Tracker
			if e, ok := c.Solver.Config.(agent.EpisodicConfig); ok {
				trackers = append(trackers, tracker.NewReturn(returns),
					tracker.NewEpisodeLength(lengths))
				if progress {
					trackers = append(trackers,
						tracker.NewProgress(os.Stderr, e.NumEpisodes()))
				}
			}

			result, err := experiment.RunTrial(c, *log, trackers...)
			if err != nil {
				return err
			}
			if returns != "" {
				log.Info().Str("file", returns).Msg("episode returns saved")
			}
			if lengths != "" {
				log.Info().Str("file", lengths).Msg("episode lengths saved")
			}

			out := cmd.OutOrStdout()
			traj := result.Rollout
			fmt.Fprintf(out, "%v: %d states valued in %v\n", c.Solver.Type,
				len(result.Values), result.Elapsed)
			fmt.Fprintf(out, "Rollout: %d steps, return %.2f, %d/%d items "+
				"delivered, terminal %v\n", traj.Steps(), traj.Return,
				traj.Delivered, result.Grid.ItemsRemaining(), traj.Terminal)

			snapshot := result.Grid.Snapshot()
			if err := render.Terminal(out, snapshot, traj.Path,
				colors); err != nil {
				return err
			}
			values := render.ValueGrid(result.Grid.Size(), result.Values)
			fmt.Fprintf(out, "\nMax value per cell:\n%v\n",
				matutils.Format(values))

			if png != "" {
				if err := render.SavePNG(png, snapshot, traj.Path,
					cellSize); err != nil {
					return err
				}
				log.Info().Str("file", png).Msg("rollout saved")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&png, "png", "", "Save the rollout as a PNG image")
	cmd.Flags().BoolVar(&progress, "progress", false,
		"Display a progress bar of learning episodes")
	cmd.Flags().StringVar(&returns, "returns", "",
		"Save the return of each learning episode to this file")
	cmd.Flags().StringVar(&lengths, "lengths", "",
		"Save the length of each learning episode to this file")
	return cmd
}
