package engine

import (
	"math"
	"sort"
	"time"

	"github.com/quarterback/quarterback/pkg/models"
)

// WeightChangeFloorPct is the share-count move, in percent, below which a
// corporate action is treated as having no index weight impact.
const WeightChangeFloorPct = 0.01

// ComputeCorpActionImpact recomputes a constituent's index weight after a
// corporate action changes its share count. The new weight scales the
// current one by the share change; events with no prior shares or no change
// report no impact.
func ComputeCorpActionImpact(event models.CorporateAction, benchmark []models.BenchmarkConstituent) models.CorpActionImpact {
	impact := models.CorpActionImpact{
		Ticker:      event.Ticker,
		PriorShares: event.SharesPriorEvents,
		PostShares:  event.SharesPostEvents,
	}

	if event.SharesPriorEvents == 0 || event.SharesPriorEvents == event.SharesPostEvents {
		return impact
	}

	changePct := (event.SharesPostEvents - event.SharesPriorEvents) / event.SharesPriorEvents * 100
	impact.SharesChangePct = changePct
	impact.HasWeightChange = math.Abs(changePct) > WeightChangeFloorPct

	for _, row := range benchmark {
		if row.Ticker != event.Ticker {
			continue
		}
		impact.CurrentIndexWeight = row.Weight
		impact.NewIndexWeight = row.Weight * (1 + changePct/100)
		impact.CurrentPrice = row.LocalPrice
		break
	}
	return impact
}

// AffectedBaskets lists the baskets holding a ticker as an equity position.
func AffectedBaskets(ticker string, positions []models.Position) []string {
	if ticker == "" {
		return nil
	}
	seen := make(map[string]bool)
	var baskets []string
	for _, pos := range positions {
		if pos.Type != models.PositionEquity || pos.Underlying != ticker {
			continue
		}
		if !seen[pos.BasketID] {
			seen[pos.BasketID] = true
			baskets = append(baskets, pos.BasketID)
		}
	}
	sort.Strings(baskets)
	return baskets
}

// EventTradeRecommendations produces, for every basket holding the affected
// ticker, the trade that re-aligns the holding to the post-event index
// weight. Target shares use the rebalancing formula with the new weight
// substituted; a weight driven to zero targets a full exit. The materiality
// floor is one share, finer than the continuous rebalancing threshold
// because these are event-triggered.
func EventTradeRecommendations(event models.CorporateAction, positions []models.Position, benchmark []models.BenchmarkConstituent) []models.EventRecommendation {
	impact := ComputeCorpActionImpact(event, benchmark)
	if !impact.HasWeightChange {
		return nil
	}

	var recs []models.EventRecommendation
	for _, basketID := range AffectedBaskets(impact.Ticker, positions) {
		basket := filterBasket(positions, basketID)

		var currentShares float64
		for _, pos := range basket {
			if pos.Type == models.PositionEquity && pos.Underlying == impact.Ticker {
				currentShares = pos.Quantity
				break
			}
		}

		basketNotional, direction := basketSizing(basket)

		strategy := models.StrategySimpleCarry
		if direction < 0 {
			strategy = models.StrategyReverseCarry
		}

		target := 0.0
		if impact.NewIndexWeight > 0 && impact.CurrentPrice > 0 && basketNotional > 0 {
			target = basketNotional * impact.NewIndexWeight / impact.CurrentPrice * direction
		}
		diff := target - currentShares

		action := models.ActionNone
		if math.Abs(diff) >= 1 {
			if diff > 0 {
				action = models.ActionBuy
			} else {
				action = models.ActionSell
			}
		}

		recs = append(recs, models.EventRecommendation{
			BasketID:           basketID,
			Ticker:             impact.Ticker,
			Strategy:           strategy,
			CurrentShares:      int(currentShares),
			TargetShares:       int(math.Round(target)),
			Shares:             int(math.Round(math.Abs(diff))),
			Action:             action,
			TradeValue:         math.Abs(diff * impact.CurrentPrice),
			Price:              impact.CurrentPrice,
			SharesChangePct:    impact.SharesChangePct,
			CurrentIndexWeight: impact.CurrentIndexWeight,
			NewIndexWeight:     impact.NewIndexWeight,
		})
	}
	return recs
}

// CalendarWindow bounds the corporate-action lookup around a valuation
// date and caps how many recommendations come back.
type CalendarWindow struct {
	DaysBack    int
	DaysForward int
	MaxEvents   int
}

// DefaultCalendarWindow looks four months back, a year forward, and stops
// after 25 actionable recommendations.
var DefaultCalendarWindow = CalendarWindow{DaysBack: 120, DaysForward: 365, MaxEvents: 25}

// BasketCalendarRecommendations finds the corporate actions inside a date
// window that touch tickers a basket actually holds, and emits only the
// actionable BUY/SELL trades they imply, dated on each event's effective
// date and ordered by it.
func BasketCalendarRecommendations(basketID string, positions []models.Position, events []models.CorporateAction, benchmark []models.BenchmarkConstituent, asOf time.Time, window CalendarWindow) []models.CalendarRecommendation {
	if basketID == "" || len(positions) == 0 || len(events) == 0 {
		return nil
	}
	if window.MaxEvents == 0 {
		window = DefaultCalendarWindow
	}

	held := make(map[string]bool)
	for _, pos := range filterBasketType(positions, basketID, models.PositionEquity) {
		if pos.Underlying != "" {
			held[pos.Underlying] = true
		}
	}
	if len(held) == 0 {
		return nil
	}

	companies := make(map[string]string, len(benchmark))
	for _, row := range benchmark {
		companies[row.Ticker] = row.Company
	}

	windowStart := truncateDay(asOf).AddDate(0, 0, -window.DaysBack)
	windowEnd := truncateDay(asOf).AddDate(0, 0, window.DaysForward)

	inWindow := make([]models.CorporateAction, 0, len(events))
	for _, ev := range events {
		if ev.EffectiveDate.IsZero() || !held[ev.Ticker] {
			continue
		}
		day := truncateDay(ev.EffectiveDate)
		if day.Before(windowStart) || day.After(windowEnd) {
			continue
		}
		inWindow = append(inWindow, ev)
	}
	sort.SliceStable(inWindow, func(i, j int) bool {
		return inWindow[i].EffectiveDate.Before(inWindow[j].EffectiveDate)
	})

	var out []models.CalendarRecommendation
	for _, ev := range inWindow {
		eventType := ev.ActionType
		if eventType == "" {
			eventType = ev.ActionGroup
		}
		if eventType == "" {
			eventType = "Corporate Action"
		}

		for _, rec := range EventTradeRecommendations(ev, positions, benchmark) {
			if rec.BasketID != basketID {
				continue
			}
			if rec.Action != models.ActionBuy && rec.Action != models.ActionSell {
				continue
			}
			out = append(out, models.CalendarRecommendation{
				BasketID:      basketID,
				Ticker:        rec.Ticker,
				Company:       companies[rec.Ticker],
				EventType:     eventType,
				EffectiveDate: ev.EffectiveDate,
				Comments:      truncate(ev.Comments, 120),
				Action:        rec.Action,
				Shares:        rec.Shares,
				Price:         rec.Price,
				TradeValue:    rec.TradeValue,
				CurrentShares: rec.CurrentShares,
				TargetShares:  rec.TargetShares,
			})
		}
		if len(out) >= window.MaxEvents {
			break
		}
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
