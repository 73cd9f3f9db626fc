package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/logrusorgru/aurora"

	"github.com/samuelfneumann/gridlearn/environment"
	"github.com/samuelfneumann/gridlearn/environment/gridworld"
)

// Terminal writes the snapshot to w one row per line, marking the cells
// of path with '*'. Obstacles are drawn as '#', the start as 'S' and
// goals by their remaining items ('+' above 9). If colors is false the
// output is plain text.
func Terminal(w io.Writer, s gridworld.Snapshot, path []environment.Position,
	colors bool) error {
	au := aurora.NewAurora(colors)

	onPath := make(map[environment.Position]bool, len(path))
	for _, p := range path {
		onPath[p] = true
	}
	remaining := make(map[environment.Position]int, len(s.Goals))
	for _, goal := range s.Goals {
		remaining[goal.Position] = goal.Remaining
	}

	var b strings.Builder
	for r, row := range s.Cells {
		for c, cell := range row {
			p := environment.Position{Row: r, Col: c}
			switch {
			case p == s.Start:
				b.WriteString(au.Cyan("S").String())
			case cell == gridworld.Obstacle:
				b.WriteString(au.Red("#").String())
			case remaining[p] > 9:
				b.WriteString(au.Green("+").String())
			case remaining[p] > 0:
				b.WriteString(au.Green(fmt.Sprint(remaining[p])).String())
			case onPath[p]:
				b.WriteString(au.Yellow("*").String())
			default:
				b.WriteString(".")
			}
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
