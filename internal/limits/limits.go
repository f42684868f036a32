// Package limits implements C11: per-metric usage against configured
// limits, severity classification, and the CapitalRatio/LCR regulatory
// floor overrides.
package limits

import (
	"fmt"

	"github.com/aristath/riskengine/internal/domain"
)

// MetricCapitalRatio and MetricLCR are the well-known metric codes whose
// values carry regulatory floor overrides independent of any configured
// limit.
const (
	MetricCapitalRatio = "CapitalRatio"
	MetricLCR          = "LCR"
)

// Severity classifies usage = current/limit against the warning/critical
// thresholds:
//   usage < warning          -> Green
//   warning <= usage < crit  -> Yellow
//   crit <= usage < 1.0      -> Red
//   usage >= 1.0             -> Critical
func Severity(usage float64, limit domain.Limit) domain.Severity {
	switch {
	case usage >= 1.0:
		return domain.SeverityCritical
	case usage >= limit.CriticalThreshold:
		return domain.SeverityRed
	case usage >= limit.WarningThreshold:
		return domain.SeverityYellow
	default:
		return domain.SeverityGreen
	}
}

// floorOverride applies the CapitalRatio/LCR regulatory floors. Evaluate
// uses its severity only when it is at least as severe as the one the
// configured limit entry computes. Returns ("", false) when no override
// applies.
func floorOverride(metric string, value float64) (domain.Severity, bool) {
	switch metric {
	case MetricCapitalRatio:
		if value < 1.00 {
			return domain.SeverityCritical, true
		}
	case MetricLCR:
		switch {
		case value < 1.00:
			return domain.SeverityCritical, true
		case value < 1.05:
			return domain.SeverityRed, true
		case value < 1.10:
			return domain.SeverityYellow, true
		}
	}
	return "", false
}

// NextID generates alert IDs; supplied by the caller to keep the engine a
// pure function of its inputs, not a source of randomness. See
// pkg/riskengine.
type NextID func() string

// usageOf computes usage = current/limit, inverted for metrics where a
// higher value is safer (CapitalRatio, LCR): usage there is
// limit/current, so a ratio falling below its configured floor still
// drives usage toward and past 1.0 instead of away from it.
func usageOf(currentValue float64, limit domain.Limit) float64 {
	if isInverseMetric(limit.MetricCode) {
		if currentValue <= 0 {
			return domain.PosInf
		}
		return limit.LimitValue / currentValue
	}
	if limit.LimitValue == 0 {
		return 0
	}
	return currentValue / limit.LimitValue
}

func isInverseMetric(metric string) bool {
	return metric == MetricCapitalRatio || metric == MetricLCR
}

// Evaluate classifies currentValue against limit and the metric's
// regulatory floor (if any), returning an alert when severity is above
// Green. createdAt is supplied by the caller; the engine never reads the
// wall clock.
func Evaluate(limit domain.Limit, currentValue float64, nextID NextID, createdAt int64) *domain.Alert {
	usage := usageOf(currentValue, limit)
	severity := Severity(usage, limit)

	if override, ok := floorOverride(limit.MetricCode, currentValue); ok && override.AtLeast(severity) {
		severity = override
	}

	if severity == domain.SeverityGreen {
		return nil
	}

	id := ""
	if nextID != nil {
		id = nextID()
	}
	return &domain.Alert{
		ID:           id,
		PortfolioID:  limit.PortfolioID,
		Metric:       limit.MetricCode,
		CurrentValue: currentValue,
		LimitValue:   limit.LimitValue,
		Severity:     severity,
		CreatedAt:    createdAt,
		Description:  fmt.Sprintf("%s usage %.4f breached %s threshold", limit.MetricCode, usage, severity),
	}
}

// EvaluateFloorOnly applies the CapitalRatio/LCR regulatory floors even
// when no limit entry is configured for that metric.
func EvaluateFloorOnly(portfolioID, metric string, value float64, nextID NextID, createdAt int64) *domain.Alert {
	severity, ok := floorOverride(metric, value)
	if !ok {
		return nil
	}
	id := ""
	if nextID != nil {
		id = nextID()
	}
	return &domain.Alert{
		ID:           id,
		PortfolioID:  portfolioID,
		Metric:       metric,
		CurrentValue: value,
		LimitValue:   0,
		Severity:     severity,
		CreatedAt:    createdAt,
		Description:  fmt.Sprintf("%s regulatory floor breached at %.4f", metric, value),
	}
}

// Summarize counts alerts per severity.
func Summarize(alerts []domain.Alert) map[domain.Severity]int {
	counts := map[domain.Severity]int{
		domain.SeverityGreen:    0,
		domain.SeverityYellow:   0,
		domain.SeverityRed:      0,
		domain.SeverityCritical: 0,
	}
	for _, a := range alerts {
		counts[a.Severity]++
	}
	return counts
}
