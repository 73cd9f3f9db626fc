package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samuelfneumann/gridlearn/environment"
	"github.com/samuelfneumann/gridlearn/planner"
	"github.com/samuelfneumann/gridlearn/render"
)

// cellSize is the side length in pixels of a cell in PNG renderings
const cellSize = 48

// PlanCommand returns the command that plans a round trip from the
// start cell to the first goal cell and back
func PlanCommand() *cobra.Command {
	var name string
	var png string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a round trip from the start to the first goal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, log, err := setup(cmd)
			if err != nil {
				return err
			}
			if name == "" {
				name = c.Planner
			}
			plan, err := planner.Get(name)
			if err != nil {
				return err
			}

			g, err := c.Environment.CreateGrid(c.Seed)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Start: %v\nGoals: %v\nItems: %d\n", g.Start(),
				g.GoalPositions(), g.ItemsRemaining())

			goals := g.GoalPositions()
			if len(goals) == 0 {
				log.Warn().Msg("grid has no goal cells")
				return nil
			}
			goal := goals[0]

			there := plan(g, g.Start(), goal)
			back := plan(g, goal, g.Start())
			if len(there) == 0 || len(back) == 0 {
				log.Warn().Str("planner", name).Stringer("goal", goal).
					Msg("no path found")
				return nil
			}
			route := make([]environment.Position, 0, len(there)+len(back)-1)
			route = append(route, there...)
			route = append(route, back[1:]...)

			fmt.Fprintf(out, "%v route to %v: %d cells there, %d cells "+
				"in total\n", name, goal, len(there), len(route))
			if err := render.Terminal(out, g.Snapshot(), route,
				colors); err != nil {
				return err
			}

			if png != "" {
				if err := render.SavePNG(png, g.Snapshot(), route,
					cellSize); err != nil {
					return err
				}
				log.Info().Str("file", png).Msg("route saved")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "planner", "",
		fmt.Sprintf("Planner to use, one of %v (default from config)",
			planner.Names()))
	cmd.Flags().StringVar(&png, "png", "", "Save the route as a PNG image")
	return cmd
}
