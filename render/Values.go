package render

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/utils/matutils"
)

// ValueGrid returns a size x size heat map of values, holding at each
// cell the largest value of any state positioned there. Cells without a
// valued state are NaN.
func ValueGrid(size int, values agent.Values) *mat.Dense {
	grid := matutils.NaNs(size, size)
	for s, v := range values {
		r, c := s.Position.Row, s.Position.Col
		if old := grid.At(r, c); math.IsNaN(old) || v > old {
			grid.Set(r, c, v)
		}
	}
	return grid
}

// FormatValues formats the heat map of values for printing
func FormatValues(size int, values agent.Values) string {
	return matutils.Format(ValueGrid(size, values))
}
