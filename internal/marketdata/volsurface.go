package marketdata

import (
	"math"
	"sort"
)

// VolPoint is one (tenor, strike, vol) grid node.
type VolPoint struct {
	TenorYears float64
	Strike     float64
	Vol        float64
}

// VolSurface is a grid keyed by (tenor, strike), interpolated bilinearly on
// (log-moneyness, sqrt(tenor)).
type VolSurface struct {
	Underlying string
	Forward    float64 // reference forward used to compute log-moneyness axis
	tenors     []float64
	strikes    []float64
	grid       map[[2]float64]float64
}

// NewVolSurface builds a surface from unordered grid points. Forward is the
// at-construction reference forward level used only to place strikes on the
// log-moneyness axis for interpolation; it does not change the quoted vols.
func NewVolSurface(underlying string, forward float64, points []VolPoint) VolSurface {
	tenorSet := map[float64]bool{}
	strikeSet := map[float64]bool{}
	grid := make(map[[2]float64]float64, len(points))
	for _, p := range points {
		tenorSet[p.TenorYears] = true
		strikeSet[p.Strike] = true
		grid[[2]float64{p.TenorYears, p.Strike}] = p.Vol
	}
	tenors := sortedKeys(tenorSet)
	strikes := sortedKeys(strikeSet)
	return VolSurface{Underlying: underlying, Forward: forward, tenors: tenors, strikes: strikes, grid: grid}
}

func sortedKeys(set map[float64]bool) []float64 {
	out := make([]float64, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Float64s(out)
	return out
}

// Vol returns the bilinearly interpolated implied vol at (tenor, strike).
// The interpolation axes are log-moneyness (ln(strike/forward)) and
// sqrt(tenor); values outside the grid are flat-extrapolated from the
// nearest edge.
func (s VolSurface) Vol(tenor, strike float64) float64 {
	if len(s.tenors) == 0 || len(s.strikes) == 0 {
		return 0
	}
	ti0, ti1, tf := bracket(s.tenors, tenor, sqrtTransform)
	ki0, ki1, kf := bracket(s.strikes, strike, s.logMoneyness)

	v00 := s.grid[[2]float64{s.tenors[ti0], s.strikes[ki0]}]
	v01 := s.grid[[2]float64{s.tenors[ti0], s.strikes[ki1]}]
	v10 := s.grid[[2]float64{s.tenors[ti1], s.strikes[ki0]}]
	v11 := s.grid[[2]float64{s.tenors[ti1], s.strikes[ki1]}]

	v0 := v00 + kf*(v01-v00)
	v1 := v10 + kf*(v11-v10)
	return v0 + tf*(v1-v0)
}

func clampPositive(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}

func sqrtTransform(x float64) float64 { return math.Sqrt(clampPositive(x)) }

func (s VolSurface) logMoneyness(strike float64) float64 {
	if s.Forward <= 0 || strike <= 0 {
		return strike
	}
	return math.Log(strike / s.Forward)
}

// bracket finds the two axis values in vals (already sorted ascending)
// bracketing transform(target), returning their indices and the
// interpolation fraction. transform is applied to both vals and target so
// the search happens on the interpolation axis, not the raw grid axis.
func bracket(vals []float64, rawTarget float64, transform func(float64) float64) (lo, hi int, frac float64) {
	n := len(vals)
	if n == 1 {
		return 0, 0, 0
	}
	target := transform(rawTarget)
	i := sort.Search(n, func(i int) bool { return transform(vals[i]) >= target })
	if i == 0 {
		return 0, 1, 0
	}
	if i >= n {
		return n - 2, n - 1, 1
	}
	loT, hiT := transform(vals[i-1]), transform(vals[i])
	if hiT == loT {
		return i - 1, i, 0
	}
	return i - 1, i, (target - loT) / (hiT - loT)
}
