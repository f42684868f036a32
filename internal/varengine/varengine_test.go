package varengine

import (
	"testing"

	"github.com/aristath/riskengine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestArithmeticSeriesVaR checks that a 250-value arithmetic P&L series
// [-100, -95, ..., +1145] has VaR_1d_95 = 40 at sorted index 12.
func TestArithmeticSeriesVaR(t *testing.T) {
	pnl := make([]float64, 250)
	for i := range pnl {
		pnl[i] = -100 + 5*float64(i)
	}

	res, err := Historical1Day95(pnl)
	require.NoError(t, err)
	assert.Equal(t, 12, res.Index)
	assert.InDelta(t, 40, res.VaR, 1e-9)
}

// TestVaRMonotonicity checks that shifting every P&L observation by a
// constant c shifts VaR by -c.
func TestVaRMonotonicity(t *testing.T) {
	base := make([]float64, 100)
	for i := range base {
		base[i] = float64(i) - 50
	}
	shifted := make([]float64, len(base))
	const c = 10.0
	for i, v := range base {
		shifted[i] = v + c
	}

	baseRes, err := Historical1Day95(base)
	require.NoError(t, err)
	shiftedRes, err := Historical1Day95(shifted)
	require.NoError(t, err)

	assert.InDelta(t, baseRes.VaR-c, shiftedRes.VaR, 1e-9)
}

func TestInsufficientHistory(t *testing.T) {
	_, err := Historical1Day95(make([]float64, 10))
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.ErrInsufficientHistory))
}

func TestStressWindowTooShort(t *testing.T) {
	val, err := StressedVaR(make([]float64, 30))
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.ErrStressWindowShort))
	assert.True(t, val != val) // NaN
}

func TestStressedVaRComputesOverWindow(t *testing.T) {
	window := make([]float64, 80)
	for i := range window {
		window[i] = float64(i) - 40
	}
	val, err := StressedVaR(window)
	require.NoError(t, err)
	assert.Greater(t, val, 0.0)
}
