package derivpricer

import (
	"testing"
	"time"

	"github.com/aristath/riskengine/internal/domain"
	"github.com/aristath/riskengine/internal/marketdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatCurve(t *testing.T, currency string, rate float64) marketdata.YieldCurve {
	t.Helper()
	c, err := marketdata.NewYieldCurve(currency, []marketdata.CurvePoint{
		{TenorYears: 0.25, ZeroRate: rate},
		{TenorYears: 1, ZeroRate: rate},
		{TenorYears: 5, ZeroRate: rate},
		{TenorYears: 10, ZeroRate: rate},
	})
	require.NoError(t, err)
	return c
}

func buildView(t *testing.T) *marketdata.View {
	t.Helper()
	snap := marketdata.NewSnapshot("2026-01-02")
	snap.Curves["EUR"] = flatCurve(t, "EUR", 0.03)
	snap.FxRates["EURUSD"] = 1.10
	snap.VolSurfaces["EURUSD"] = marketdata.NewVolSurface("EURUSD", 1.10, []marketdata.VolPoint{
		{TenorYears: 0.25, Strike: 1.05, Vol: 0.10},
		{TenorYears: 0.25, Strike: 1.15, Vol: 0.10},
		{TenorYears: 5, Strike: 1.05, Vol: 0.10},
		{TenorYears: 5, Strike: 1.15, Vol: 0.10},
	})
	view, err := marketdata.Build(snap, nil)
	require.NoError(t, err)
	return view
}

func basePosition(kind domain.InstrumentKind) domain.Position {
	return domain.Position{
		Kind:         kind,
		ISIN:         "DERIV-1",
		Notional:     1_000_000,
		Underlying:   "EURUSD",
		Direction:    domain.DirectionLong,
		AsOfDate:     time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		MaturityDate: time.Date(2031, 1, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestFxForwardAtFairStrikeIsZero(t *testing.T) {
	view := buildView(t)
	pos := basePosition(domain.InstrumentFxForward)
	pos.MaturityDate = time.Date(2027, 1, 2, 0, 0, 0, 0, time.UTC)
	t1 := yearsBetween(pos.AsOfDate, pos.MaturityDate)
	curve := flatCurve(t, "EUR", 0.03)
	fairForward := 1.10 * discountAt(-curve.ZeroRate(t1), t1)
	pos.Strike = fairForward

	res, err := Price(pos, view, "EUR")
	require.NoError(t, err)
	assert.InDelta(t, 0, res.MarketValue, 1e-6)
}

func TestFxOptionLongCallIsPositive(t *testing.T) {
	view := buildView(t)
	pos := basePosition(domain.InstrumentFxOption)
	pos.MaturityDate = time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	pos.Strike = 1.08
	pos.OptionType = domain.OptionCall

	res, err := Price(pos, view, "EUR")
	require.NoError(t, err)
	assert.Greater(t, res.MarketValue, 0.0)
}

func TestIrSwapPayerReceiverAreOpposite(t *testing.T) {
	view := buildView(t)
	payer := basePosition(domain.InstrumentIrSwap)
	payer.Strike = 0.03
	payer.PayerOrReceiver = domain.SwaptionPayer

	receiver := payer
	receiver.PayerOrReceiver = domain.SwaptionReceiver

	payerRes, err := Price(payer, view, "EUR")
	require.NoError(t, err)
	receiverRes, err := Price(receiver, view, "EUR")
	require.NoError(t, err)

	assert.InDelta(t, -payerRes.MarketValue, receiverRes.MarketValue, 1e-6)
}

func TestBondKindRejectedAsUnsupportedDerivative(t *testing.T) {
	view := buildView(t)
	pos := basePosition(domain.InstrumentBond)
	_, err := Price(pos, view, "EUR")
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.ErrInputValidation))
}

func TestCapFloorAtTheMoneyCallHasPositiveValueAndDelta(t *testing.T) {
	view := buildView(t)
	pos := basePosition(domain.InstrumentCapFloor)
	pos.MaturityDate = time.Date(2031, 1, 2, 0, 0, 0, 0, time.UTC)
	pos.Strike = 0.03
	pos.OptionType = domain.OptionCall

	res, err := Price(pos, view, "EUR")
	require.NoError(t, err)
	assert.Greater(t, res.MarketValue, 0.0)
	assert.Greater(t, res.Delta, 0.0)
}

func TestCapFloorCallAndFloorAreOppositeSignDelta(t *testing.T) {
	view := buildView(t)
	call := basePosition(domain.InstrumentCapFloor)
	call.MaturityDate = time.Date(2031, 1, 2, 0, 0, 0, 0, time.UTC)
	call.Strike = 0.03
	call.OptionType = domain.OptionCall

	floor := call
	floor.OptionType = domain.OptionPut

	callRes, err := Price(call, view, "EUR")
	require.NoError(t, err)
	floorRes, err := Price(floor, view, "EUR")
	require.NoError(t, err)

	assert.Greater(t, callRes.Delta, 0.0)
	assert.Less(t, floorRes.Delta, 0.0)
}

func TestSwaptionPayerHasPositiveDeltaAtTheMoney(t *testing.T) {
	view := buildView(t)
	pos := basePosition(domain.InstrumentSwaption)
	pos.MaturityDate = time.Date(2031, 1, 2, 0, 0, 0, 0, time.UTC)
	pos.Strike = 0.03
	pos.PayerOrReceiver = domain.SwaptionPayer

	res, err := Price(pos, view, "EUR")
	require.NoError(t, err)
	assert.Greater(t, res.MarketValue, 0.0)
	assert.Greater(t, res.Delta, 0.0)
}

func TestSwaptionPayerReceiverDeltaAreOppositeSign(t *testing.T) {
	view := buildView(t)
	payer := basePosition(domain.InstrumentSwaption)
	payer.MaturityDate = time.Date(2031, 1, 2, 0, 0, 0, 0, time.UTC)
	payer.Strike = 0.03
	payer.PayerOrReceiver = domain.SwaptionPayer

	receiver := payer
	receiver.PayerOrReceiver = domain.SwaptionReceiver

	payerRes, err := Price(payer, view, "EUR")
	require.NoError(t, err)
	receiverRes, err := Price(receiver, view, "EUR")
	require.NoError(t, err)

	assert.Greater(t, payerRes.Delta, 0.0)
	assert.Less(t, receiverRes.Delta, 0.0)
}

func TestSwaptionMissingCurveReturnsMissingMarketData(t *testing.T) {
	view := buildView(t)
	pos := basePosition(domain.InstrumentSwaption)
	pos.Strike = 0.03
	pos.PayerOrReceiver = domain.SwaptionPayer

	_, err := Price(pos, view, "GBP")
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.ErrMissingMarketData))
}
