package marketdata

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// ContentHash computes the market_data_snapshot_id: a SHA-256 over a
// canonical-form serialization with lexicographically sorted keys and
// floats formatted %.15g. It is not JSON: JSON key order
// isn't guaranteed stable across encoding/json versions, but a
// hand-rolled canonical form gives the same determinism guarantee with no
// dependency on map iteration order.
func (s *Snapshot) ContentHash() string {
	var b strings.Builder
	b.WriteString("as_of_date=")
	b.WriteString(s.AsOfDate)
	b.WriteByte('\n')

	writeFloatMap(&b, "prices", priceKeys(s.Prices), func(k string) string {
		q := s.Prices[k]
		return fmt.Sprintf("%.15g,%.15g,%.15g,%.15g,%.15g,%.15g,%d",
			q.CleanPrice, q.Yield, q.SpreadBps, q.Bid, q.Ask, q.Volume, q.DaysSinceTrade)
	})
	writeFloatMap(&b, "fx_rates", sortedStringKeys(s.FxRates), func(k string) string {
		return fmt.Sprintf("%.15g", s.FxRates[k])
	})
	writeFloatMap(&b, "cds_spreads", sortedStringKeys(s.CDSSpreads), func(k string) string {
		return fmt.Sprintf("%.15g", s.CDSSpreads[k])
	})

	curveKeys := sortedCurveKeys(s.Curves)
	for _, k := range curveKeys {
		c := s.Curves[k]
		b.WriteString("curve:")
		b.WriteString(k)
		b.WriteByte('=')
		for _, p := range c.Points {
			b.WriteString(fmt.Sprintf("(%.15g:%.15g)", p.TenorYears, p.ZeroRate))
		}
		b.WriteByte('\n')
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func priceKeys(m map[string]PriceQuote) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedStringKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedCurveKeys(m map[string]YieldCurve) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func writeFloatMap(b *strings.Builder, label string, keys []string, render func(string) string) {
	for _, k := range keys {
		b.WriteString(label)
		b.WriteByte(':')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(render(k))
		b.WriteByte('\n')
	}
}
