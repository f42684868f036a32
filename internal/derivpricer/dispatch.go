package derivpricer

import (
	"fmt"

	"github.com/aristath/riskengine/internal/domain"
	"github.com/aristath/riskengine/internal/marketdata"
)

// Price dispatches a derivative position to its pricer by Kind. Bonds are
// not handled here; they belong to internal/bondpricer (C3).
func Price(pos domain.Position, view *marketdata.View, baseCurrency string) (Result, error) {
	switch pos.Kind {
	case domain.InstrumentFxForward:
		return PriceFxForward(pos, view, baseCurrency)
	case domain.InstrumentFxOption:
		return PriceFxOption(pos, view, baseCurrency)
	case domain.InstrumentIrSwap:
		return PriceIrSwap(pos, view, baseCurrency)
	case domain.InstrumentCapFloor:
		return PriceCapFloor(pos, view, baseCurrency)
	case domain.InstrumentSwaption:
		return PriceSwaption(pos, view, baseCurrency)
	default:
		return Result{}, domain.NewError(domain.ErrInputValidation, pos.Reference, fmt.Errorf("unsupported derivative kind %q", pos.Kind))
	}
}
