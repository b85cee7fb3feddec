package engine

import (
	"github.com/quarterback/quarterback/pkg/models"
)

// aggregateStockBorrow sums a basket's stock-borrow rows into one block.
// Rate and counterparty come from the first row; in practice every row in a
// basket shares the same programme.
func aggregateStockBorrow(positions []models.Position, basketID string) (total float64, count int, ratePct float64, counterparty string) {
	borrows := filterBasketType(positions, basketID, models.PositionStockBorrow)
	for _, pos := range borrows {
		total += pos.MarketValueUSD
	}
	count = len(borrows)
	if count > 0 {
		ratePct = borrows[0].FinancingRatePct
		counterparty = borrows[0].Counterparty
	}
	return total, count, ratePct, counterparty
}

// UnwindStockBorrow returns the full aggregate borrow across the basket.
// The instruction is the exact negative of the aggregate, so the leg closes
// to zero like every other leg type.
func UnwindStockBorrow(positions []models.Position, basketID string) []models.StockBorrowTrade {
	total, count, ratePct, counterparty := aggregateStockBorrow(positions, basketID)
	if count == 0 {
		return nil
	}

	unwindNotional := -total
	action := models.ActionReturn
	if unwindNotional == 0 {
		action = models.ActionNone
	}

	return []models.StockBorrowTrade{{
		BasketID:        basketID,
		Action:          action,
		Notional:        unwindNotional,
		CurrentNotional: total,
		NewNotional:     0,
		PositionCount:   count,
		RatePct:         ratePct,
		Counterparty:    counterparty,
	}}
}

// ResizeStockBorrow applies a signed notional delta to the aggregate borrow:
// positive borrows more stock, negative returns some.
func ResizeStockBorrow(positions []models.Position, basketID string, transactionNotional float64) []models.StockBorrowTrade {
	total, count, ratePct, counterparty := aggregateStockBorrow(positions, basketID)
	if count == 0 {
		return nil
	}

	action := models.ActionNone
	if transactionNotional > 0 {
		action = models.ActionBorrow
	} else if transactionNotional < 0 {
		action = models.ActionReturn
	}

	return []models.StockBorrowTrade{{
		BasketID:        basketID,
		Action:          action,
		Notional:        transactionNotional,
		CurrentNotional: total,
		NewNotional:     total + transactionNotional,
		PositionCount:   count,
		RatePct:         ratePct,
		Counterparty:    counterparty,
	}}
}
