package stress

import (
	"testing"

	"github.com/aristath/riskengine/internal/marketdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestView(t *testing.T) *marketdata.View {
	t.Helper()
	snap := marketdata.NewSnapshot("2026-01-02")
	curve, err := marketdata.NewYieldCurve("EUR", []marketdata.CurvePoint{
		{TenorYears: 1, ZeroRate: 0.02},
		{TenorYears: 10, ZeroRate: 0.03},
	})
	require.NoError(t, err)
	snap.Curves["EUR"] = curve
	snap.FxRates["EURUSD"] = 1.10
	view, err := marketdata.Build(snap, nil)
	require.NoError(t, err)
	return view
}

// TestIR01ParallelShift checks that a +200bp parallel shift raises every
// tenor's zero rate by exactly 0.02.
func TestIR01ParallelShift(t *testing.T) {
	view := buildTestView(t)
	scenario := Scenario{Name: "IR-01", CurveShiftBps: 200}

	shocked := Apply(view, scenario, nil)
	curve, err := shocked.Curve("EUR")
	require.NoError(t, err)

	assert.InDelta(t, 0.04, curve.ZeroRate(1), 1e-9)
	assert.InDelta(t, 0.05, curve.ZeroRate(10), 1e-9)
}

func TestCurveTwistAppliesAtEnds(t *testing.T) {
	view := buildTestView(t)
	scenario := Scenario{Name: "STEEPEN", CurveTwistShortBps: -50, CurveTwistLongBps: 50}

	shocked := Apply(view, scenario, nil)
	curve, err := shocked.Curve("EUR")
	require.NoError(t, err)

	assert.InDelta(t, 0.02-0.005, curve.ZeroRate(1), 1e-9)
	assert.InDelta(t, 0.03+0.005, curve.ZeroRate(10), 1e-9)
}

func TestFxShockAppliesMultiplicatively(t *testing.T) {
	view := buildTestView(t)
	scenario := Scenario{Name: "FX-01", FxShockPct: map[string]float64{"EURUSD": -0.10}}

	shocked := Apply(view, scenario, nil)
	rate, err := shocked.FxRate("EURUSD")
	require.NoError(t, err)
	assert.InDelta(t, 0.99, rate, 1e-9)
}

func TestTopContributorsOrdersByAbsoluteDelta(t *testing.T) {
	before := map[string]float64{"A": 100, "B": 100, "C": 100}
	after := map[string]float64{"A": 90, "B": 150, "C": 101}

	top := TopContributors(before, after, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "B", top[0].Reference)
	assert.Equal(t, "A", top[1].Reference)
}

func TestBuildResultComputesPnLAndDeltas(t *testing.T) {
	before := map[string]float64{"A": 1000, "B": 500}
	after := map[string]float64{"A": 950, "B": 520}

	result := BuildResult("IR-01", before, after, MetricDeltas{
		BeforeVaR: 100, AfterVaR: 130,
		BeforeCapitalRatio: 1.5, AfterCapitalRatio: 1.2,
	})

	assert.InDelta(t, -30, result.PnL, 1e-9)
	assert.InDelta(t, 30, result.DeltaVaR, 1e-9)
	assert.InDelta(t, -0.3, result.DeltaCapitalRatio, 1e-9)
}
