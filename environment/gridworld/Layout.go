package gridworld

import (
	"fmt"

	"github.com/samuelfneumann/gridlearn/environment"
)

// Parse builds a GridWorld from a square text layout, one string per
// row:
//
//	.    empty cell
//	#    obstacle
//	S    start cell
//	1-9  goal cell holding that many items
//
// Goal cells are ordered row-major. Unlike New, Parse does not require
// the start to be a corner or the goals to be reachable.
func Parse(layout []string) (*GridWorld, error) {
	n := len(layout)
	if n < 2 {
		return nil, fmt.Errorf("parse: layout must have at least 2 rows")
	}

	g := &GridWorld{
		size:      n,
		cells:     make([]Cell, n*n),
		goalIndex: make(map[environment.Position]int),
	}

	starts := 0
	for r, row := range layout {
		if len(row) != n {
			return nil, fmt.Errorf("parse: row %d has length %d, want %d",
				r, len(row), n)
		}

		for c := 0; c < n; c++ {
			pos := environment.Position{Row: r, Col: c}
			switch ch := row[c]; {
			case ch == '.':
			case ch == '#':
				g.set(pos, Obstacle)
			case ch == 'S':
				g.start = pos
				starts++
			case ch >= '1' && ch <= '9':
				g.addGoal(pos, int(ch-'0'))
			default:
				return nil, fmt.Errorf("parse: unknown cell %q at %v", ch, pos)
			}
		}
	}

	if starts != 1 {
		return nil, fmt.Errorf("parse: layout must have exactly one start "+
			"(found %d)", starts)
	}
	return g, nil
}

// MustParse is like Parse but panics on error
func MustParse(layout ...string) *GridWorld {
	g, err := Parse(layout)
	if err != nil {
		panic(err)
	}
	return g
}
