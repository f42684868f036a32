package backtest

import (
	"testing"

	"github.com/aristath/riskengine/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewRecordFlagsException(t *testing.T) {
	rec := NewRecord("B1", "P1", "2026-01-02", 100_000, -150_000)
	assert.True(t, rec.IsException)

	noException := NewRecord("B2", "P1", "2026-01-03", 100_000, -50_000)
	assert.False(t, noException.IsException)
}

func TestTrafficLightBands(t *testing.T) {
	assert.Equal(t, domain.TrafficGreen, TrafficLight(3))
	assert.Equal(t, domain.TrafficYellow, TrafficLight(7))
	assert.Equal(t, domain.TrafficRed, TrafficLight(12))
}

func TestRollingExceptionCountLimitsToWindow(t *testing.T) {
	records := make([]domain.BacktestingRecord, 0, 300)
	for i := 0; i < 300; i++ {
		records = append(records, domain.BacktestingRecord{IsException: i >= 295}) // 5 exceptions, all in the trailing window
	}
	count := RollingExceptionCount(records, 250)
	assert.Equal(t, 5, count)
}

func TestKupiecPValueHighWhenObservedMatchesExpected(t *testing.T) {
	p := KupiecPValue(250, 12, 0.05) // 12/250 = 4.8%, close to 5% expected
	assert.Greater(t, p, 0.5)
}

func TestKupiecPValueLowWhenFarFromExpected(t *testing.T) {
	p := KupiecPValue(250, 40, 0.05) // far more exceptions than expected
	assert.Less(t, p, 0.05)
}
