package limits

import (
	"testing"

	"github.com/aristath/riskengine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLimit() domain.Limit {
	return domain.Limit{PortfolioID: "P1", MetricCode: "DV01", LimitValue: 100_000, WarningThreshold: 0.70, CriticalThreshold: 0.90}
}

func TestSeverityBands(t *testing.T) {
	lim := sampleLimit()
	assert.Equal(t, domain.SeverityGreen, Severity(0.5, lim))
	assert.Equal(t, domain.SeverityYellow, Severity(0.75, lim))
	assert.Equal(t, domain.SeverityRed, Severity(0.95, lim))
	assert.Equal(t, domain.SeverityCritical, Severity(1.1, lim))
}

func TestEvaluateReturnsNilBelowWarning(t *testing.T) {
	alert := Evaluate(sampleLimit(), 50_000, nil, 0)
	assert.Nil(t, alert)
}

func TestEvaluateBreachProducesCriticalAlert(t *testing.T) {
	alert := Evaluate(sampleLimit(), 150_000, func() string { return "a1" }, 1000)
	require.NotNil(t, alert)
	assert.Equal(t, domain.SeverityCritical, alert.Severity)
	assert.Equal(t, "a1", alert.ID)
}

func TestCapitalRatioFloorOverridesConfiguredLimit(t *testing.T) {
	lim := domain.Limit{PortfolioID: "P1", MetricCode: MetricCapitalRatio, LimitValue: 2.0, WarningThreshold: 0.1, CriticalThreshold: 0.2}
	// CapitalRatio is an inverse metric: usage = limit/current = 2.0/0.95,
	// already >= 1.0 on its own, and the CapitalRatio < 1.00 regulatory
	// floor agrees independently. Either path lands on Critical.
	alert := Evaluate(lim, 0.95, nil, 0)
	require.NotNil(t, alert)
	assert.Equal(t, domain.SeverityCritical, alert.Severity)
}

func TestCapitalRatioHealthyUsageIsNotCritical(t *testing.T) {
	lim := domain.Limit{PortfolioID: "P1", MetricCode: MetricCapitalRatio, LimitValue: 1.00, WarningThreshold: 0.80, CriticalThreshold: 0.90}
	// A healthy 1.50 ratio against a 1.00 floor must not look like a
	// breach just because 1.50 > 1.00; usage = 1.00/1.50 = 0.667, Green.
	alert := Evaluate(lim, 1.50, nil, 0)
	assert.Nil(t, alert)
}

func TestLCRFloorBands(t *testing.T) {
	assert.Nil(t, EvaluateFloorOnly("P1", MetricLCR, 1.20, nil, 0))
	yellow := EvaluateFloorOnly("P1", MetricLCR, 1.08, nil, 0)
	require.NotNil(t, yellow)
	assert.Equal(t, domain.SeverityYellow, yellow.Severity)

	red := EvaluateFloorOnly("P1", MetricLCR, 1.02, nil, 0)
	require.NotNil(t, red)
	assert.Equal(t, domain.SeverityRed, red.Severity)

	critical := EvaluateFloorOnly("P1", MetricLCR, 0.90, nil, 0)
	require.NotNil(t, critical)
	assert.Equal(t, domain.SeverityCritical, critical.Severity)
}

func TestSummarizeCountsEverySeverity(t *testing.T) {
	alerts := []domain.Alert{
		{Severity: domain.SeverityGreen},
		{Severity: domain.SeverityYellow},
		{Severity: domain.SeverityYellow},
		{Severity: domain.SeverityCritical},
	}
	counts := Summarize(alerts)
	assert.Equal(t, 1, counts[domain.SeverityGreen])
	assert.Equal(t, 2, counts[domain.SeverityYellow])
	assert.Equal(t, 0, counts[domain.SeverityRed])
	assert.Equal(t, 1, counts[domain.SeverityCritical])
}
