package models

import (
	"time"
)

// BasketMetrics holds the aggregated risk and P&L picture for one basket.
// All USD fields are signed unless noted; carry fields use the money-market
// convention (actual/360).
type BasketMetrics struct {
	FuturesEquityExposure  float64
	PhysicalEquityExposure float64
	NetEquityExposure      float64
	TotalEquityExposure    float64 // gross: |futures| + |physical|
	LongFuturesNotional    float64
	ShortFuturesNotional   float64
	TotalNotional          float64
	TotalPnLUSD            float64
	TotalPnLBPS            float64
	DailyCarry             float64
	AccruedCarry           float64
	CarryToMaturity        float64
	TotalDV01              float64
	HedgeAlert             bool
	StartDate              time.Time // earliest start across the basket
	EndDate                time.Time // latest end across the basket
}

// EquityBasketSummary describes the physical-equity leg of a basket.
type EquityBasketSummary struct {
	PositionCount    int
	TotalMarketValue float64
	TotalPnL         float64
	LongPositions    int
	ShortPositions   int
	LongMarketValue  float64
	ShortMarketValue float64
	Direction        Direction // majority direction of the leg
	AlertCount       int
}

// StockBorrowSummary describes the stock-borrow leg of a basket.
type StockBorrowSummary struct {
	PositionCount    int
	TotalMarketValue float64
	TotalQuantity    float64
	UniqueTickers    int
}

// ComponentTotals holds the current size of each leg type in a basket.
type ComponentTotals struct {
	FuturesNotional     float64
	FuturesContracts    int
	CashBorrowNotional  float64
	CashLendNotional    float64
	StockBorrowNotional float64
	EquityMarketValue   float64
	EquityPositionCount int
	HasFutures          bool
	HasCashBorrow       bool
	HasCashLend         bool
	HasStockBorrow      bool
	HasEquities         bool
}
