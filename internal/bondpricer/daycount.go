// Package bondpricer implements C3: clean/dirty price, YTM, Macaulay and
// modified duration, DV01, and convexity for fixed-coupon bonds.
package bondpricer

import (
	"time"

	"github.com/aristath/riskengine/internal/domain"
)

// YearFraction measures the distance between two dates in years under the
// given day-count convention.
func YearFraction(from, to time.Time, dc domain.DayCount) float64 {
	switch dc {
	case domain.DayCount30360:
		y1, m1, d1 := from.Date()
		y2, m2, d2 := to.Date()
		if d1 == 31 {
			d1 = 30
		}
		if d2 == 31 && d1 == 30 {
			d2 = 30
		}
		days := 360*(y2-y1) + 30*(int(m2)-int(m1)) + (d2 - d1)
		return float64(days) / 360.0
	case domain.DayCountAct360:
		return to.Sub(from).Hours() / 24 / 360.0
	case domain.DayCountAct365:
		return to.Sub(from).Hours() / 24 / 365.0
	case domain.DayCountActAct:
		return to.Sub(from).Hours() / 24 / 365.25
	default:
		return to.Sub(from).Hours() / 24 / 365.0
	}
}
