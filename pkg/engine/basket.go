package engine

import (
	"github.com/google/uuid"

	"github.com/quarterback/quarterback/pkg/models"
)

// UnwindBasket produces the combined instruction set that fully closes every
// leg of a basket: futures, cash borrow/lend, the aggregate stock borrow and
// each equity holding.
func UnwindBasket(positions []models.Position, benchmark []models.BenchmarkConstituent, basketID string) models.BasketTradeSet {
	return models.BasketTradeSet{
		InstructionID: uuid.NewString(),
		BasketID:      basketID,
		Mode:          models.ModeUnwind,
		Futures:       UnwindFutures(positions, basketID),
		Cash:          UnwindCash(positions, basketID),
		StockBorrow:   UnwindStockBorrow(positions, basketID),
		Equities:      UnwindEquities(positions, benchmark, basketID),
	}
}

// ResizeBasket applies the same signed notional delta to every leg of a
// basket, which keeps the legs sized in lockstep and preserves the hedge.
func ResizeBasket(positions []models.Position, benchmark []models.BenchmarkConstituent, basketID string, transactionNotional float64) models.BasketTradeSet {
	return models.BasketTradeSet{
		InstructionID:       uuid.NewString(),
		BasketID:            basketID,
		Mode:                models.ModeResize,
		TransactionNotional: transactionNotional,
		Futures:             ResizeFutures(positions, basketID, transactionNotional),
		Cash:                ResizeCash(positions, basketID, transactionNotional),
		StockBorrow:         ResizeStockBorrow(positions, basketID, transactionNotional),
		Equities:            ComputeEquityTrades(positions, benchmark, basketID, transactionNotional),
	}
}

// BasketComponentTotals sums the current size of each leg type in a basket.
func BasketComponentTotals(positions []models.Position, basketID string) models.ComponentTotals {
	var totals models.ComponentTotals
	for _, pos := range filterBasket(positions, basketID) {
		switch pos.Type {
		case models.PositionFuture:
			totals.FuturesNotional += pos.NotionalUSD
			totals.FuturesContracts += int(pos.Quantity)
			totals.HasFutures = true
		case models.PositionCashBorrow:
			totals.CashBorrowNotional += pos.NotionalUSD
			totals.HasCashBorrow = true
		case models.PositionCashLend:
			totals.CashLendNotional += pos.NotionalUSD
			totals.HasCashLend = true
		case models.PositionStockBorrow:
			totals.StockBorrowNotional += pos.MarketValueUSD
			totals.HasStockBorrow = true
		case models.PositionEquity:
			totals.EquityMarketValue += pos.MarketValueUSD
			totals.EquityPositionCount++
			totals.HasEquities = true
		}
	}
	return totals
}
