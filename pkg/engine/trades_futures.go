package engine

import (
	"fmt"
	"math"

	"github.com/quarterback/quarterback/pkg/models"
)

// DefaultFuturesMultiplier is the contract multiplier for the index AIR
// future traded by this desk.
const DefaultFuturesMultiplier = 25

// DefaultFuturesLevel is the reference price used when a basket carries no
// futures leg to read a live level from.
const DefaultFuturesLevel = 5300

// ContractsFromNotional converts a signed notional into contract count:
// contracts = notional / (price × multiplier). Non-positive price or
// multiplier yields zero.
func ContractsFromNotional(notional, price, multiplier float64) float64 {
	if price <= 0 || multiplier <= 0 {
		return 0
	}
	return notional / (price * multiplier)
}

// NotionalFromContracts is the inverse conversion.
func NotionalFromContracts(contracts, price, multiplier float64) float64 {
	return contracts * price * multiplier
}

func futuresTicker(contractMonth string) string {
	return fmt.Sprintf("SPX %s", contractMonth)
}

func signedNotionalAction(notional float64) models.TradeAction {
	switch {
	case notional > 0:
		return models.ActionBuy
	case notional < 0:
		return models.ActionSell
	default:
		return models.ActionNone
	}
}

// UnwindFutures produces the instructions that flatten every futures leg in
// a basket: transact the exact negative of each current holding.
func UnwindFutures(positions []models.Position, basketID string) []models.FuturesTrade {
	var trades []models.FuturesTrade
	for _, pos := range filterBasketType(positions, basketID, models.PositionFuture) {
		unwindNotional := -pos.NotionalUSD
		unwindContracts := -pos.Quantity

		trades = append(trades, models.FuturesTrade{
			BasketID:         basketID,
			PositionID:       pos.PositionID,
			Instrument:       "SPX Futures",
			ContractMonth:    pos.ContractMonth,
			Ticker:           futuresTicker(pos.ContractMonth),
			Action:           signedNotionalAction(unwindNotional),
			Contracts:        int(math.Round(math.Abs(unwindContracts))),
			ContractsSigned:  int(math.Round(unwindContracts)),
			Notional:         unwindNotional,
			Price:            pos.PriceOrLevel,
			CurrentNotional:  pos.NotionalUSD,
			CurrentContracts: int(pos.Quantity),
			CurrentDirection: pos.Direction,
			NewNotional:      0,
			NewContracts:     0,
		})
	}
	return trades
}

// ResizeFutures applies a signed notional delta to a basket's futures legs,
// split proportionally by current absolute notional when the basket holds
// several contracts, and converted to contracts at each leg's price.
func ResizeFutures(positions []models.Position, basketID string, transactionNotional float64) []models.FuturesTrade {
	futures := filterBasketType(positions, basketID, models.PositionFuture)
	if len(futures) == 0 {
		return nil
	}

	weights := make([]float64, len(futures))
	for i, pos := range futures {
		weights[i] = pos.NotionalUSD
	}
	deltas := Allocate(transactionNotional, weights)

	trades := make([]models.FuturesTrade, 0, len(futures))
	for i, pos := range futures {
		delta := deltas[i]
		contracts := ContractsFromNotional(delta, pos.PriceOrLevel, DefaultFuturesMultiplier)
		newNotional := pos.NotionalUSD + delta
		newContracts := pos.Quantity + contracts

		trades = append(trades, models.FuturesTrade{
			BasketID:         basketID,
			PositionID:       pos.PositionID,
			Instrument:       "SPX Futures",
			ContractMonth:    pos.ContractMonth,
			Ticker:           futuresTicker(pos.ContractMonth),
			Action:           signedNotionalAction(delta),
			Contracts:        int(math.Round(math.Abs(contracts))),
			ContractsSigned:  int(math.Round(contracts)),
			Notional:         delta,
			Price:            pos.PriceOrLevel,
			CurrentNotional:  pos.NotionalUSD,
			CurrentContracts: int(pos.Quantity),
			CurrentDirection: pos.Direction,
			NewNotional:      newNotional,
			NewContracts:     int(math.Round(newContracts)),
		})
	}
	return trades
}

// EquivalentFuturesContracts converts a notional to contracts at the
// basket's average futures level, falling back to DefaultFuturesLevel when
// the basket holds no futures. Reference calculation only.
func EquivalentFuturesContracts(notional float64, positions []models.Position, basketID string) float64 {
	futures := filterBasketType(positions, basketID, models.PositionFuture)
	if len(futures) == 0 {
		return ContractsFromNotional(notional, DefaultFuturesLevel, DefaultFuturesMultiplier)
	}
	var priceSum float64
	for _, pos := range futures {
		priceSum += pos.PriceOrLevel
	}
	return ContractsFromNotional(notional, priceSum/float64(len(futures)), DefaultFuturesMultiplier)
}
