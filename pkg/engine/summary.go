package engine

import (
	"github.com/quarterback/quarterback/pkg/models"
)

// ComputeEquityBasketSummary describes the physical-equity leg: totals,
// long/short split and the majority direction. When a benchmark is supplied
// the summary also counts outstanding rebalancing alerts.
func ComputeEquityBasketSummary(positions []models.Position, benchmark []models.BenchmarkConstituent) models.EquityBasketSummary {
	summary := models.EquityBasketSummary{Direction: models.Long}

	var equities []models.Position
	for _, pos := range positions {
		if pos.Type == models.PositionEquity {
			equities = append(equities, pos)
		}
	}
	summary.PositionCount = len(equities)
	if len(equities) == 0 {
		return summary
	}

	for _, pos := range equities {
		summary.TotalMarketValue += pos.MarketValueUSD
		summary.TotalPnL += pos.PnLUSD
		if pos.Direction == models.Short {
			summary.ShortPositions++
			summary.ShortMarketValue += pos.MarketValueUSD
		} else {
			summary.LongPositions++
			summary.LongMarketValue += pos.MarketValueUSD
		}
	}
	if summary.ShortPositions > summary.LongPositions {
		summary.Direction = models.Short
	}

	if len(benchmark) > 0 {
		summary.AlertCount = len(RebalancingAlerts(positions, benchmark, ""))
	}
	return summary
}

// ComputeStockBorrowSummary describes the stock-borrow leg of a position set.
func ComputeStockBorrowSummary(positions []models.Position) models.StockBorrowSummary {
	var summary models.StockBorrowSummary
	tickers := make(map[string]bool)
	for _, pos := range positions {
		if pos.Type != models.PositionStockBorrow {
			continue
		}
		summary.PositionCount++
		summary.TotalMarketValue += pos.MarketValueUSD
		summary.TotalQuantity += pos.Quantity
		if pos.Underlying != "" {
			tickers[pos.Underlying] = true
		}
	}
	summary.UniqueTickers = len(tickers)
	return summary
}
