package engine

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/quarterback/quarterback/pkg/models"
)

// ImpliedForwardRate derives the financing rate the market prices for the
// period between two contract maturities:
//
//	forward = (toPrice − fromPrice × timeRatio) / dayCountFraction
//
// where timeRatio = dynamicFrom/dynamicTo and dayCountFraction =
// (staticTo − staticFrom)/staticTo. The numerator uses days derived from
// delivery dates while the denominator uses the curve's static day counts;
// this hybrid convention matches the desk's pricing sheet and must not be
// "simplified" to a single day basis. Returns false when the from leg does
// not mature strictly before the to leg or a denominator would be zero.
func ImpliedForwardRate(fromPrice, toPrice float64, dynamicFrom, dynamicTo, staticFrom, staticTo int) (float64, bool) {
	if dynamicFrom >= dynamicTo {
		return 0, false
	}
	if dynamicTo <= 0 || staticTo <= 0 {
		return 0, false
	}

	timeRatio := float64(dynamicFrom) / float64(dynamicTo)
	dayCountFraction := float64(staticTo-staticFrom) / float64(staticTo)
	if dayCountFraction == 0 {
		return 0, false
	}

	return (toPrice - fromPrice*timeRatio) / dayCountFraction, true
}

type curvePoint struct {
	price       float64
	dynamicDays int
	staticDays  int
}

// curvePoints resolves each contract's price and day counts as of a
// valuation date. Dynamic days come from the maturity date when present,
// else fall back to the static count. Contracts with no price quote are
// marked absent.
func curvePoints(contracts []models.FuturesContract, asOf time.Time) ([]string, map[string]curvePoint) {
	codes := make([]string, 0, len(contracts))
	points := make(map[string]curvePoint, len(contracts))
	for _, c := range contracts {
		codes = append(codes, c.Code)
		if math.IsNaN(c.Price) {
			continue
		}
		dynamic := c.DaysToMaturity
		if !c.Maturity.IsZero() {
			dynamic = int(truncateDay(c.Maturity).Sub(truncateDay(asOf)).Hours() / 24)
		}
		points[c.Code] = curvePoint{price: c.Price, dynamicDays: dynamic, staticDays: c.DaysToMaturity}
	}
	return codes, points
}

// ComputeForwardRateMatrix builds the all-pairs implied forward rate grid
// over a futures curve. Cells where the from leg does not mature strictly
// before the to leg, or where either leg is unpriced, stay absent.
func ComputeForwardRateMatrix(contracts []models.FuturesContract, asOf time.Time) *models.RateMatrix {
	codes, points := curvePoints(contracts, asOf)
	matrix := models.NewRateMatrix(codes)

	for _, from := range codes {
		fp, ok := points[from]
		if !ok {
			continue
		}
		for _, to := range codes {
			tp, ok := points[to]
			if !ok {
				continue
			}
			rate, ok := ImpliedForwardRate(fp.price, tp.price, fp.dynamicDays, tp.dynamicDays, fp.staticDays, tp.staticDays)
			if !ok {
				continue
			}
			matrix.Set(from, to, rate)
		}
	}
	return matrix
}

// ComputeCarryMatrix expresses each valid contract pair's price spread as
// annualized carry: (toPrice − fromPrice) / periodDays × 365, with the
// period measured in dynamic days between the two maturities.
func ComputeCarryMatrix(contracts []models.FuturesContract, asOf time.Time) *models.RateMatrix {
	codes, points := curvePoints(contracts, asOf)
	matrix := models.NewRateMatrix(codes)

	for _, from := range codes {
		fp, ok := points[from]
		if !ok {
			continue
		}
		for _, to := range codes {
			tp, ok := points[to]
			if !ok {
				continue
			}
			period := tp.dynamicDays - fp.dynamicDays
			if fp.dynamicDays >= tp.dynamicDays || period <= 0 || tp.dynamicDays <= 0 {
				continue
			}
			matrix.Set(from, to, (tp.price-fp.price)/float64(period)*365)
		}
	}
	return matrix
}

// OpportunityCriteria filters matrix cells; a zero field is a no-op.
// MinPeriodDays/MaxPeriodDays bound the span between the two maturities.
type OpportunityCriteria struct {
	MinForwardRate     float64
	MinAnnualizedCarry float64
	MinPeriodDays      int
	MaxPeriodDays      int
}

// FilterOpportunities returns the contract pairs whose forward rate and
// carry cells are both populated and pass every supplied threshold. Pairs
// come out in curve order (from leg ascending by days to maturity, then to
// leg), so output is stable for a given curve.
func FilterOpportunities(forward, carry *models.RateMatrix, contracts []models.FuturesContract, criteria OpportunityCriteria, asOf time.Time) []models.Opportunity {
	_, points := curvePoints(contracts, asOf)

	ordered := make([]string, 0, len(contracts))
	for _, c := range contracts {
		if _, ok := points[c.Code]; ok {
			ordered = append(ordered, c.Code)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return points[ordered[i]].dynamicDays < points[ordered[j]].dynamicDays
	})

	var out []models.Opportunity
	for _, from := range ordered {
		for _, to := range ordered {
			fwd, ok := forward.Value(from, to)
			if !ok {
				continue
			}
			cry, ok := carry.Value(from, to)
			if !ok {
				continue
			}

			period := points[to].dynamicDays - points[from].dynamicDays
			if period <= 0 {
				continue
			}
			if criteria.MinForwardRate != 0 && fwd < criteria.MinForwardRate {
				continue
			}
			if criteria.MinAnnualizedCarry != 0 && cry < criteria.MinAnnualizedCarry {
				continue
			}
			if criteria.MinPeriodDays != 0 && period < criteria.MinPeriodDays {
				continue
			}
			if criteria.MaxPeriodDays != 0 && period > criteria.MaxPeriodDays {
				continue
			}

			out = append(out, models.Opportunity{
				FromContract:    from,
				ToContract:      to,
				ForwardRate:     fwd,
				AnnualizedCarry: cry,
				PeriodDays:      period,
			})
		}
	}
	return out
}

// ComputeCalendarSpreadCarry breaks down the carry on a long-near/short-far
// calendar spread: the locked-in spread accrues linearly over the days
// between the two maturities.
func ComputeCalendarSpreadCarry(fromPrice, toPrice float64, daysBetweenContracts int, notional float64, holdingPeriodDays int) models.CalendarSpreadCarry {
	if holdingPeriodDays == 0 {
		holdingPeriodDays = daysBetweenContracts
	}

	spread := toPrice - fromPrice
	var dailyBPS float64
	if daysBetweenContracts > 0 {
		dailyBPS = spread / float64(daysBetweenContracts)
	}
	dailyUSD := dailyBPS * BasisPoint * math.Abs(notional)

	return models.CalendarSpreadCarry{
		SpreadBPS:            spread,
		DailyCarryBPS:        dailyBPS,
		DailyCarryUSD:        dailyUSD,
		TotalCarryBPS:        dailyBPS * float64(holdingPeriodDays),
		TotalCarryUSD:        dailyUSD * float64(holdingPeriodDays),
		AnnualizedCarryBPS:   dailyBPS * 365,
		HoldingPeriodDays:    holdingPeriodDays,
		DaysBetweenContracts: daysBetweenContracts,
	}
}

// IdentifySpreadSignals scans a forward-rate matrix for cells outside a
// high/low band: rates at or above thresholdHigh look rich (sell the
// spread), at or below thresholdLow look cheap (buy it). Results sort most
// extreme first, by distance from the band midpoint.
func IdentifySpreadSignals(forward *models.RateMatrix, thresholdHigh, thresholdLow float64) []models.SpreadOpportunity {
	var out []models.SpreadOpportunity
	for _, from := range forward.Codes {
		for _, to := range forward.Codes {
			rate, ok := forward.Value(from, to)
			if !ok {
				continue
			}
			switch {
			case rate >= thresholdHigh:
				out = append(out, models.SpreadOpportunity{
					FromContract: from,
					ToContract:   to,
					ForwardRate:  rate,
					Signal:       models.SignalRich,
					TradeAction:  "SELL_SPREAD",
					Description:  fmt.Sprintf("Sell %s/%s spread - implied rate %.1f bps is high", from, to, rate),
				})
			case rate <= thresholdLow:
				out = append(out, models.SpreadOpportunity{
					FromContract: from,
					ToContract:   to,
					ForwardRate:  rate,
					Signal:       models.SignalCheap,
					TradeAction:  "BUY_SPREAD",
					Description:  fmt.Sprintf("Buy %s/%s spread - implied rate %.1f bps is low", from, to, rate),
				})
			}
		}
	}

	neutral := (thresholdHigh + thresholdLow) / 2
	sort.SliceStable(out, func(i, j int) bool {
		return math.Abs(out[i].ForwardRate-neutral) > math.Abs(out[j].ForwardRate-neutral)
	})
	return out
}
