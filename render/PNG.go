// Package render draws grid snapshots and paths as PNG images and as
// coloured terminal text
package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/samuelfneumann/gridlearn/environment"
	"github.com/samuelfneumann/gridlearn/environment/gridworld"
)

// Colours of PNG renderings
var (
	Background    = color.RGBA{R: 245, G: 245, B: 245, A: 255}
	GridLine      = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	ObstacleShade = color.RGBA{R: 60, G: 60, B: 60, A: 255}
	GoalShade     = color.RGBA{R: 80, G: 170, B: 80, A: 255}
	StartShade    = color.RGBA{R: 70, G: 110, B: 200, A: 255}
	PathShade     = color.RGBA{R: 220, G: 120, B: 40, A: 255}
	TextShade     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Image draws the snapshot with cellSize pixel cells. Goal cells are
// labelled with their remaining items, and path is drawn as a line
// through the centres of its cells.
func Image(s gridworld.Snapshot, path []environment.Position,
	cellSize int) image.Image {
	n := len(s.Cells)
	size := float64(cellSize)
	dc := gg.NewContext(n*cellSize, n*cellSize)
	dc.SetColor(Background)
	dc.Clear()

	fill := func(p environment.Position, c color.Color) {
		dc.DrawRectangle(float64(p.Col)*size, float64(p.Row)*size, size, size)
		dc.SetColor(c)
		dc.Fill()
	}

	for r, row := range s.Cells {
		for c, cell := range row {
			if cell == gridworld.Obstacle {
				fill(environment.Position{Row: r, Col: c}, ObstacleShade)
			}
		}
	}
	for _, goal := range s.Goals {
		if goal.Remaining > 0 {
			fill(goal.Position, GoalShade)
		}
	}
	fill(s.Start, StartShade)

	// Grid lines
	dc.SetColor(GridLine)
	dc.SetLineWidth(1)
	for i := 0; i <= n; i++ {
		x := float64(i) * size
		dc.DrawLine(x, 0, x, float64(n)*size)
		dc.DrawLine(0, x, float64(n)*size, x)
	}
	dc.Stroke()

	centre := func(p environment.Position) (float64, float64) {
		return (float64(p.Col) + 0.5) * size, (float64(p.Row) + 0.5) * size
	}

	if len(path) > 1 {
		dc.SetColor(PathShade)
		dc.SetLineWidth(size / 6)
		dc.MoveTo(centre(path[0]))
		for _, p := range path[1:] {
			dc.LineTo(centre(p))
		}
		dc.Stroke()
	}

	dc.SetColor(TextShade)
	for _, goal := range s.Goals {
		if goal.Remaining > 0 {
			x, y := centre(goal.Position)
			dc.DrawStringAnchored(fmt.Sprint(goal.Remaining), x, y, 0.5, 0.5)
		}
	}
	x, y := centre(s.Start)
	dc.DrawStringAnchored("S", x, y, 0.5, 0.5)

	return dc.Image()
}

// SavePNG draws the snapshot and path and saves the image to filename
func SavePNG(filename string, s gridworld.Snapshot,
	path []environment.Position, cellSize int) error {
	if err := gg.SavePNG(filename, Image(s, path, cellSize)); err != nil {
		return fmt.Errorf("savePNG: %w", err)
	}
	return nil
}
