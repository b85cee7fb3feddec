package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/quarterback/quarterback/pkg/models"
)

// DefaultRebalanceThresholdShares is the share drift below which a position
// is left alone.
const DefaultRebalanceThresholdShares = 1000

// basketSizing derives the notional and hedge direction of a basket from its
// futures legs. Physical holdings hedge opposite the net futures direction:
// net long futures wants short physical (−1), net short wants long (+1).
// With no futures legs the basket is sized off its equity market value and
// defaults to long.
func basketSizing(positions []models.Position) (notional float64, direction float64) {
	var hasFutures bool
	var netExposure float64
	for _, pos := range positions {
		if pos.Type != models.PositionFuture {
			continue
		}
		hasFutures = true
		notional += math.Abs(pos.NotionalUSD)
		if pos.Direction == models.Long {
			netExposure += math.Abs(pos.NotionalUSD)
		} else {
			netExposure -= math.Abs(pos.NotionalUSD)
		}
	}

	if !hasFutures {
		var equityValue float64
		for _, pos := range positions {
			if pos.Type == models.PositionEquity {
				equityValue += pos.MarketValueUSD
			}
		}
		return math.Abs(equityValue), +1
	}

	if netExposure > 0 {
		return notional, -1
	}
	return notional, +1
}

// targetShares applies the rebalancing formula:
// (basketNotional × weight / price) × direction. Any non-positive input
// yields no target change (returns currentShares).
func targetShares(basketNotional, weight, price, direction, currentShares float64) float64 {
	if weight <= 0 || price <= 0 || basketNotional <= 0 {
		return currentShares
	}
	return basketNotional * weight / price * direction
}

// ComputeRebalancingNeeds compares each equity holding against its benchmark
// index weight, scaled by the basket's futures notional and hedge direction.
// Tickers absent from the benchmark produce no signal (target = current), a
// deliberate no-change policy for unresolvable holdings. A negative
// thresholdShares falls back to DefaultRebalanceThresholdShares; an explicit
// zero flags any drift at all.
func ComputeRebalancingNeeds(positions []models.Position, benchmark []models.BenchmarkConstituent, thresholdShares float64) []models.RebalancingRecord {
	if thresholdShares < 0 {
		thresholdShares = DefaultRebalanceThresholdShares
	}

	basketNotional, direction := basketSizing(positions)

	weights := make(map[string]float64, len(benchmark))
	for _, row := range benchmark {
		if row.Ticker != "" {
			weights[row.Ticker] = row.Weight
		}
	}

	var records []models.RebalancingRecord
	for _, pos := range positions {
		if pos.Type != models.PositionEquity {
			continue
		}

		weight := weights[pos.Underlying]
		target := targetShares(basketNotional, weight, pos.PriceOrLevel, direction, pos.Quantity)
		diff := target - pos.Quantity

		action := models.ActionNone
		if diff > 0 {
			action = models.ActionBuy
		} else if diff < 0 {
			action = models.ActionSell
		}

		records = append(records, models.RebalancingRecord{
			BasketID:         pos.BasketID,
			Ticker:           pos.Underlying,
			CurrentShares:    pos.Quantity,
			TargetShares:     target,
			SharesDiff:       diff,
			Price:            pos.PriceOrLevel,
			MarketValueUSD:   pos.MarketValueUSD,
			PnLUSD:           pos.PnLUSD,
			IndexWeightPct:   weight * 100,
			Action:           action,
			NeedsRebalancing: diff != 0 && math.Abs(diff) >= thresholdShares,
			TradeValue:       math.Abs(diff * pos.PriceOrLevel),
		})
	}
	return records
}

// RebalancingAlerts returns one alert per holding that needs rebalancing.
// basketID filters the position set when non-empty.
func RebalancingAlerts(positions []models.Position, benchmark []models.BenchmarkConstituent, basketID string) []models.RebalanceAlert {
	if basketID != "" {
		positions = filterBasket(positions, basketID)
	}

	var alerts []models.RebalanceAlert
	for _, rec := range ComputeRebalancingNeeds(positions, benchmark, DefaultRebalanceThresholdShares) {
		if !rec.NeedsRebalancing {
			continue
		}
		shares := int(math.Abs(rec.SharesDiff))
		alerts = append(alerts, models.RebalanceAlert{
			BasketID:      rec.BasketID,
			PositionID:    fmt.Sprintf("%s_%s", rec.BasketID, strings.ReplaceAll(rec.Ticker, " ", "_")),
			Ticker:        rec.Ticker,
			Action:        rec.Action,
			Shares:        shares,
			Message:       fmt.Sprintf("%s - %d share %s needed", rec.Ticker, shares, titleCase(string(rec.Action))),
			CurrentShares: rec.CurrentShares,
			TargetShares:  rec.TargetShares,
			Price:         rec.Price,
			TradeValue:    rec.TradeValue,
		})
	}
	return alerts
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func filterBasket(positions []models.Position, basketID string) []models.Position {
	out := make([]models.Position, 0, len(positions))
	for _, pos := range positions {
		if pos.BasketID == basketID {
			out = append(out, pos)
		}
	}
	return out
}

func filterBasketType(positions []models.Position, basketID string, types ...models.PositionType) []models.Position {
	out := make([]models.Position, 0, len(positions))
	for _, pos := range positions {
		if pos.BasketID != basketID {
			continue
		}
		for _, t := range types {
			if pos.Type == t {
				out = append(out, pos)
				break
			}
		}
	}
	return out
}
