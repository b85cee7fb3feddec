package engine

import (
	"github.com/quarterback/quarterback/pkg/models"
)

// cashAction maps a signed notional change onto the borrow/lend vocabulary.
// A borrow position repays when the change is positive and borrows more when
// negative; a lend position lends more when positive and recalls when
// negative.
func cashAction(posType models.PositionType, delta float64) models.TradeAction {
	if delta == 0 {
		return models.ActionNone
	}
	if posType == models.PositionCashBorrow {
		if delta > 0 {
			return models.ActionRepay
		}
		return models.ActionBorrow
	}
	if delta > 0 {
		return models.ActionLend
	}
	return models.ActionRecall
}

// UnwindCash flattens every cash borrow/lend leg in a basket. Borrows carry
// negative notional and unwind with a repayment; lends unwind with a recall.
func UnwindCash(positions []models.Position, basketID string) []models.CashTrade {
	var trades []models.CashTrade
	for _, pos := range filterBasketType(positions, basketID, models.PositionCashBorrow, models.PositionCashLend) {
		unwindNotional := -pos.NotionalUSD

		trades = append(trades, models.CashTrade{
			BasketID:        basketID,
			PositionID:      pos.PositionID,
			Type:            pos.Type,
			Action:          cashAction(pos.Type, unwindNotional),
			Notional:        unwindNotional,
			CurrentNotional: pos.NotionalUSD,
			NewNotional:     0,
			RatePct:         pos.FinancingRatePct,
			Counterparty:    pos.Counterparty,
		})
	}
	return trades
}

// ResizeCash applies a signed notional delta to each cash leg in a basket.
func ResizeCash(positions []models.Position, basketID string, transactionNotional float64) []models.CashTrade {
	var trades []models.CashTrade
	for _, pos := range filterBasketType(positions, basketID, models.PositionCashBorrow, models.PositionCashLend) {
		trades = append(trades, models.CashTrade{
			BasketID:        basketID,
			PositionID:      pos.PositionID,
			Type:            pos.Type,
			Action:          cashAction(pos.Type, transactionNotional),
			Notional:        transactionNotional,
			CurrentNotional: pos.NotionalUSD,
			NewNotional:     pos.NotionalUSD + transactionNotional,
			RatePct:         pos.FinancingRatePct,
			Counterparty:    pos.Counterparty,
		})
	}
	return trades
}
