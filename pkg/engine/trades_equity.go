package engine

import (
	"github.com/quarterback/quarterback/pkg/models"
)

func sharesAction(shares float64) models.TradeAction {
	switch {
	case shares > 0:
		return models.ActionBuy
	case shares < 0:
		return models.ActionSell
	default:
		return models.ActionNone
	}
}

// ComputeEquityTrades allocates a signed notional change across every
// benchmark constituent by index weight: Δvalue = Δnotional × weight,
// Δshares = Δvalue / price. Constituents without a positive weight and
// price are skipped; holdings are matched by exact ticker.
func ComputeEquityTrades(positions []models.Position, benchmark []models.BenchmarkConstituent, basketID string, transactionNotional float64) []models.EquityTrade {
	held := make(map[string]models.Position)
	for _, pos := range filterBasketType(positions, basketID, models.PositionEquity) {
		held[pos.Underlying] = pos
	}

	var trades []models.EquityTrade
	for _, row := range benchmark {
		if row.Weight <= 0 || row.LocalPrice <= 0 {
			continue
		}

		var currentShares, currentValue float64
		if pos, ok := held[row.Ticker]; ok {
			currentShares = pos.Quantity
			currentValue = pos.MarketValueUSD
		}

		transactionValue := transactionNotional * row.Weight
		sharesTransacted := transactionValue / row.LocalPrice
		sharesAfter := currentShares + sharesTransacted

		trades = append(trades, models.EquityTrade{
			BasketID:           basketID,
			Ticker:             row.Ticker,
			Company:            row.Company,
			Action:             sharesAction(sharesTransacted),
			CurrentShares:      currentShares,
			CurrentMarketValue: currentValue,
			Price:              row.LocalPrice,
			IndexWeight:        row.Weight,
			TransactionValue:   transactionValue,
			SharesTransacted:   sharesTransacted,
			SharesAfter:        sharesAfter,
			MarketValueAfter:   sharesAfter * row.LocalPrice,
		})
	}
	return trades
}

// UnwindEquities flattens each equity holding one-for-one: the trade is the
// exact negative of the position's own quantity, never re-derived from index
// weights, because an unwind must close what is actually held.
func UnwindEquities(positions []models.Position, benchmark []models.BenchmarkConstituent, basketID string) []models.EquityTrade {
	companies := make(map[string]string, len(benchmark))
	for _, row := range benchmark {
		companies[row.Ticker] = row.Company
	}

	var trades []models.EquityTrade
	for _, pos := range filterBasketType(positions, basketID, models.PositionEquity) {
		sharesTransacted := -pos.Quantity
		transactionValue := sharesTransacted * pos.PriceOrLevel
		if pos.PriceOrLevel <= 0 {
			transactionValue = -pos.MarketValueUSD
		}

		trades = append(trades, models.EquityTrade{
			BasketID:           basketID,
			Ticker:             pos.Underlying,
			Company:            companies[pos.Underlying],
			Action:             sharesAction(sharesTransacted),
			CurrentShares:      pos.Quantity,
			CurrentMarketValue: pos.MarketValueUSD,
			Price:              pos.PriceOrLevel,
			IndexWeight:        0,
			TransactionValue:   transactionValue,
			SharesTransacted:   sharesTransacted,
			SharesAfter:        0,
			MarketValueAfter:   0,
		})
	}
	return trades
}
