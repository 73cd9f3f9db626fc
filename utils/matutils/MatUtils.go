// Package matutils implements utility function for working with mat.Matrix
// structs
package matutils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Format formats a matrix for printing
func Format(X mat.Matrix) string {
	fa := mat.Formatted(X, mat.Prefix(""), mat.Squeeze())
	return fmt.Sprintf("%v", fa)
}

// Filled returns an r x c matrix with every element set to v
func Filled(r, c int, v float64) *mat.Dense {
	data := make([]float64, r*c)
	for i := range data {
		data[i] = v
	}
	return mat.NewDense(r, c, data)
}

// NaNs returns an r x c matrix of NaNs, marking missing entries
func NaNs(r, c int) *mat.Dense {
	return Filled(r, c, math.NaN())
}
