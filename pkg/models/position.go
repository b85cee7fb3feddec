package models

import (
	"time"
)

type PositionType string

const (
	PositionFuture       PositionType = "FUTURE"
	PositionEquity       PositionType = "EQUITY"
	PositionEquityBasket PositionType = "EQUITY_BASKET"
	PositionCashBorrow   PositionType = "CASH_BORROW"
	PositionCashLend     PositionType = "CASH_LEND"
	PositionStockBorrow  PositionType = "STOCK_BORROW"
)

type Direction string

const (
	Long  Direction = "LONG"
	Short Direction = "SHORT"
)

type StrategyType string

const (
	StrategySimpleCarry    StrategyType = "Simple Carry"
	StrategyReverseCarry   StrategyType = "Reverse Carry"
	StrategyCalendarSpread StrategyType = "Calendar Spread"
)

// Position is one instrument holding inside a basket. Numeric fields default
// to zero when the source row is sparse; zero-value dates mean "not set".
// HasFinancingRate records whether the source row actually carried a rate,
// keeping an explicit 0% distinguishable from a blank cell.
// For EQUITY and STOCK_BORROW rows the sign of Quantity follows Direction.
type Position struct {
	BasketID          string
	PositionID        string
	Type              PositionType
	Strategy          StrategyType
	Direction         Direction
	Quantity          float64
	PriceOrLevel      float64
	NotionalUSD       float64
	MarketValueUSD    float64
	EquityExposureUSD float64
	FinancingRatePct  float64
	HasFinancingRate  bool
	FinancingRateType string
	StartDate         time.Time
	EndDate           time.Time
	PnLUSD            float64
	Underlying        string
	ContractMonth     string
	Counterparty      string
	RollEvent         bool
}

// BenchmarkConstituent is one index member row. IndexWeight is a decimal
// fraction; weights across the full benchmark sum to roughly one.
type BenchmarkConstituent struct {
	Ticker     string
	Company    string
	LocalPrice float64
	Weight     float64
}
