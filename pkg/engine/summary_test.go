package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quarterback/quarterback/pkg/engine"
	"github.com/quarterback/quarterback/pkg/models"
)

func TestComputeEquityBasketSummary(t *testing.T) {
	t.Parallel()

	positions := []models.Position{
		{Type: models.PositionEquity, Direction: models.Long, MarketValueUSD: 60_000, PnLUSD: 1_200},
		{Type: models.PositionEquity, Direction: models.Long, MarketValueUSD: 40_000, PnLUSD: -300},
		{Type: models.PositionEquity, Direction: models.Short, MarketValueUSD: -25_000, PnLUSD: 500},
		{Type: models.PositionFuture, Direction: models.Short, NotionalUSD: -100_000}, // ignored
	}

	s := engine.ComputeEquityBasketSummary(positions, nil)
	assert.Equal(t, 3, s.PositionCount)
	assert.InDelta(t, 75_000, s.TotalMarketValue, 1e-6)
	assert.InDelta(t, 1_400, s.TotalPnL, 1e-6)
	assert.Equal(t, 2, s.LongPositions)
	assert.Equal(t, 1, s.ShortPositions)
	assert.InDelta(t, 100_000, s.LongMarketValue, 1e-6)
	assert.InDelta(t, -25_000, s.ShortMarketValue, 1e-6)
	assert.Equal(t, models.Long, s.Direction)
	assert.Zero(t, s.AlertCount)
}

func TestComputeEquityBasketSummaryShortMajority(t *testing.T) {
	t.Parallel()

	positions := []models.Position{
		{Type: models.PositionEquity, Direction: models.Short, MarketValueUSD: -10_000},
		{Type: models.PositionEquity, Direction: models.Short, MarketValueUSD: -20_000},
		{Type: models.PositionEquity, Direction: models.Long, MarketValueUSD: 5_000},
	}
	s := engine.ComputeEquityBasketSummary(positions, nil)
	assert.Equal(t, models.Short, s.Direction)
}

func TestComputeEquityBasketSummaryEmpty(t *testing.T) {
	t.Parallel()

	s := engine.ComputeEquityBasketSummary(nil, nil)
	assert.Zero(t, s.PositionCount)
	assert.Equal(t, models.Long, s.Direction)
}

func TestComputeEquityBasketSummaryAlertCount(t *testing.T) {
	t.Parallel()

	// One badly drifted holding against a 400mm basket trips the alert
	// counter when a benchmark is supplied.
	positions := []models.Position{
		{BasketID: "B1", Type: models.PositionFuture, Direction: models.Short, NotionalUSD: -400_000_000},
		{BasketID: "B1", Type: models.PositionEquity, Direction: models.Long, Underlying: "AAPL US Equity", Quantity: 400, PriceOrLevel: 150},
	}
	s := engine.ComputeEquityBasketSummary(positions, aaplBenchmark())
	assert.Equal(t, 1, s.AlertCount)
}

func TestComputeStockBorrowSummary(t *testing.T) {
	t.Parallel()

	positions := []models.Position{
		{Type: models.PositionStockBorrow, Underlying: "AAPL US Equity", Quantity: -350, MarketValueUSD: -52_500},
		{Type: models.PositionStockBorrow, Underlying: "AAPL US Equity", Quantity: -100, MarketValueUSD: -15_000},
		{Type: models.PositionStockBorrow, Underlying: "MSFT US Equity", Quantity: -50, MarketValueUSD: -20_000},
		{Type: models.PositionEquity, Underlying: "MSFT US Equity", Quantity: 50},
	}

	s := engine.ComputeStockBorrowSummary(positions)
	assert.Equal(t, 3, s.PositionCount)
	assert.InDelta(t, -87_500, s.TotalMarketValue, 1e-6)
	assert.InDelta(t, -500, s.TotalQuantity, 1e-9)
	assert.Equal(t, 2, s.UniqueTickers)
}
