// Package domain holds the value objects the risk engine operates on:
// portfolios, positions, counterparties, reference data, limits, and the
// output snapshot/alert/issue types. Everything here is an immutable value
// object unless the doc comment says otherwise.
package domain

import (
	"time"
)

// PortfolioType classifies how a portfolio is used, which drives which
// capital and liquidity rules apply downstream.
type PortfolioType string

const (
	PortfolioBondDealer        PortfolioType = "BondDealer"
	PortfolioDerivativesClient PortfolioType = "DerivativesClient"
	PortfolioProprietary       PortfolioType = "Proprietary"
)

// InstrumentKind enumerates the position types the engine can price.
type InstrumentKind string

const (
	InstrumentBond      InstrumentKind = "Bond"
	InstrumentFxForward InstrumentKind = "FxForward"
	InstrumentFxOption  InstrumentKind = "FxOption"
	InstrumentIrSwap    InstrumentKind = "IrSwap"
	InstrumentCapFloor  InstrumentKind = "CapFloor"
	InstrumentSwaption  InstrumentKind = "Swaption"
)

// DayCount enumerates the day-count conventions the bond pricer supports.
type DayCount string

const (
	DayCount30360  DayCount = "30/360"
	DayCountActAct DayCount = "ACT/ACT"
	DayCountAct360 DayCount = "ACT/360"
	DayCountAct365 DayCount = "ACT/365"
)

// Direction is long or short notional on a derivative.
type Direction string

const (
	DirectionLong  Direction = "Long"
	DirectionShort Direction = "Short"
)

// OptionType distinguishes call and put.
type OptionType string

const (
	OptionCall OptionType = "Call"
	OptionPut  OptionType = "Put"
)

// PayerReceiver distinguishes a swaption's exercised position.
type PayerReceiver string

const (
	SwaptionPayer    PayerReceiver = "Payer"
	SwaptionReceiver PayerReceiver = "Receiver"
)

// Portfolio is a stable container of positions. Positions are owned by
// composition: there is exactly one portfolio per position and the
// portfolio's lifetime bounds the positions'.
type Portfolio struct {
	ID           string
	Type         PortfolioType
	BaseCurrency string
	Active       bool
	Positions    []Position
}

// Position is a single instrument holding. Bond-specific and
// derivative-specific fields are both present; which subset is meaningful
// is determined by Kind.
type Position struct {
	PortfolioID string
	Kind        InstrumentKind

	// Bond fields.
	ISIN           string
	Notional       float64
	CouponRate     float64
	CouponFreq     int // payments per year
	DayCount       DayCount
	MaturityDate   time.Time
	TradeDate      time.Time

	// Derivative fields.
	Reference       string // stable position identifier; derivatives have no ISIN
	Underlying      string // e.g. "EURUSD", currency pair or swap underlying
	Direction       Direction
	Strike          float64
	OptionType      OptionType
	Exercise        string // "European", only style supported
	CounterpartyID  string
	PayerOrReceiver PayerReceiver

	// Shared.
	AsOfDate time.Time
}
