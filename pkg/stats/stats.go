// Package stats wraps the gonum statistics routines the engine's VaR
// component uses: a thin wrapper over
// gonum.org/v1/gonum/stat that guards against empty-slice panics.
package stats

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev returns the sample standard deviation, or 0 for fewer than two
// observations.
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// SortedAscending returns a sorted copy of data, ascending.
func SortedAscending(data []float64) []float64 {
	out := append([]float64(nil), data...)
	sort.Float64s(out)
	return out
}
