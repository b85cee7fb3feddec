// Package engine implements the basket financial calculation core: metric
// aggregation, rebalancing needs, trade generation, the implied forward-rate
// and carry matrices, and corporate-action impacts. Every function is a pure
// transform over in-memory snapshots; loading and caching live elsewhere.
package engine

import (
	"math"
	"time"

	"github.com/quarterback/quarterback/pkg/models"
)

const (
	// DaysInYear is the money-market day-count base.
	DaysInYear = 360

	// BasisPoint is one basis point as a decimal.
	BasisPoint = 0.0001

	// HedgeAlertThresholdUSD flags baskets whose net equity exposure has
	// drifted past this absolute level.
	HedgeAlertThresholdUSD = 100_000

	// DefaultFundingRate is assumed when a basket carries no cash-borrow
	// leg to read an actual funding rate from.
	DefaultFundingRate = 0.053
)

// Carry computes the profit from a financing-rate differential:
// (implied − funding) × |notional| × days / 360.
func Carry(impliedRate, fundingRate, notional float64, days int) float64 {
	return (impliedRate - fundingRate) * math.Abs(notional) * float64(days) / DaysInYear
}

// DailyCarry is Carry over a single day.
func DailyCarry(impliedRate, fundingRate, notional float64) float64 {
	return Carry(impliedRate, fundingRate, notional, 1)
}

// AccruedCarry is the carry earned from start to asOf. Days before the start
// date clamp to zero.
func AccruedCarry(impliedRate, fundingRate, notional float64, start, asOf time.Time) float64 {
	return Carry(impliedRate, fundingRate, notional, daysBetween(start, asOf))
}

// CarryToMaturity is the carry expected from asOf to the end date. Days past
// maturity clamp to zero.
func CarryToMaturity(impliedRate, fundingRate, notional float64, end, asOf time.Time) float64 {
	return Carry(impliedRate, fundingRate, notional, daysBetween(asOf, end))
}

// TotalExpectedCarry is the carry over the full start-to-end life of a trade.
func TotalExpectedCarry(impliedRate, fundingRate, notional float64, start, end time.Time) float64 {
	return Carry(impliedRate, fundingRate, notional, daysBetween(start, end))
}

// DaysToMaturity counts days from asOf to maturity, floored at zero.
func DaysToMaturity(maturity, asOf time.Time) int {
	return daysBetween(asOf, maturity)
}

func daysBetween(from, to time.Time) int {
	days := int(truncateDay(to).Sub(truncateDay(from)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DV01 is the dollar value of a one basis point rate move:
// |notional| × (T/360) × 0.0001.
func DV01(notional float64, daysToMaturity int) float64 {
	return math.Abs(notional) * float64(daysToMaturity) / DaysInYear * BasisPoint
}

// PnL returns profit and loss in dollars and basis points. The bps leg uses
// notional as reference when non-nil, else |initialValue|; a zero reference
// yields zero bps.
func PnL(currentValue, initialValue float64, notional *float64) (dollars, bps float64) {
	dollars = currentValue - initialValue
	reference := math.Abs(initialValue)
	if notional != nil {
		reference = *notional
	}
	if reference != 0 {
		bps = dollars / reference * 10_000
	}
	return dollars, bps
}

// ToBPS converts a dollar value to basis points of a reference notional.
func ToBPS(value, notional float64) float64 {
	if notional == 0 {
		return 0
	}
	return value / math.Abs(notional) * 10_000
}

// TheoreticalFuturesPrice prices a future off spot carry:
// F = S × (1 + (r − d) × T/360).
func TheoreticalFuturesPrice(spot, financingRate, dividendYield float64, daysToMaturity int) float64 {
	costOfCarry := financingRate - dividendYield
	return spot * (1 + costOfCarry*float64(daysToMaturity)/DaysInYear)
}

// ImpliedFinancingRate inverts TheoreticalFuturesPrice:
// r = ((F/S − 1) × 360/T) + d. Zero spot or zero days yields zero.
func ImpliedFinancingRate(futuresPrice, spot, dividendYield float64, daysToMaturity int) float64 {
	if spot == 0 || daysToMaturity == 0 {
		return 0
	}
	return (futuresPrice/spot-1)*DaysInYear/float64(daysToMaturity) + dividendYield
}

// TradeValue is the absolute dollar value of a share transaction.
func TradeValue(shares, price float64) float64 {
	return math.Abs(shares) * price
}

// HedgeAlert reports whether net equity exposure breaches the alert level.
func HedgeAlert(netEquityExposure float64) bool {
	return math.Abs(netEquityExposure) > HedgeAlertThresholdUSD
}

// ComputeBasketMetrics aggregates one basket's positions into its exposure,
// notional, P&L, carry and risk picture as of the given valuation date.
// Rate means count explicitly quoted zero rates and skip unquoted rows.
// Sparse inputs degrade to zeros; the function never fails.
func ComputeBasketMetrics(positions []models.Position, asOf time.Time) models.BasketMetrics {
	var m models.BasketMetrics
	if len(positions) == 0 {
		return m
	}

	var futuresRateSum float64
	var futuresRateCount int
	var borrowRateSum float64
	var borrowRateCount int

	for _, pos := range positions {
		m.TotalPnLUSD += pos.PnLUSD

		if !pos.StartDate.IsZero() && (m.StartDate.IsZero() || pos.StartDate.Before(m.StartDate)) {
			m.StartDate = pos.StartDate
		}
		if !pos.EndDate.IsZero() && pos.EndDate.After(m.EndDate) {
			m.EndDate = pos.EndDate
		}

		switch pos.Type {
		case models.PositionFuture:
			m.FuturesEquityExposure += pos.EquityExposureUSD
			if pos.Direction == models.Long {
				m.LongFuturesNotional += math.Abs(pos.NotionalUSD)
			} else {
				m.ShortFuturesNotional += math.Abs(pos.NotionalUSD)
			}
			if pos.HasFinancingRate || pos.FinancingRatePct != 0 {
				futuresRateSum += pos.FinancingRatePct
				futuresRateCount++
			}
		case models.PositionEquity, models.PositionEquityBasket:
			exposure := pos.EquityExposureUSD
			if exposure == 0 {
				exposure = pos.MarketValueUSD
			}
			m.PhysicalEquityExposure += exposure
		case models.PositionCashBorrow:
			if pos.HasFinancingRate || pos.FinancingRatePct != 0 {
				borrowRateSum += pos.FinancingRatePct
				borrowRateCount++
			}
		}
	}

	m.NetEquityExposure = m.FuturesEquityExposure + m.PhysicalEquityExposure
	m.TotalEquityExposure = math.Abs(m.FuturesEquityExposure) + math.Abs(m.PhysicalEquityExposure)
	m.TotalNotional = m.LongFuturesNotional + m.ShortFuturesNotional

	if m.TotalNotional > 0 {
		m.TotalPnLBPS = m.TotalPnLUSD / m.TotalNotional * 10_000
	}

	if futuresRateCount > 0 {
		impliedRate := futuresRateSum / float64(futuresRateCount) / 100
		fundingRate := DefaultFundingRate
		if borrowRateCount > 0 {
			fundingRate = borrowRateSum / float64(borrowRateCount) / 100
		}
		if m.TotalNotional > 0 && !m.StartDate.IsZero() && !m.EndDate.IsZero() {
			m.DailyCarry = DailyCarry(impliedRate, fundingRate, m.TotalNotional)
			m.AccruedCarry = AccruedCarry(impliedRate, fundingRate, m.TotalNotional, m.StartDate, asOf)
			m.CarryToMaturity = CarryToMaturity(impliedRate, fundingRate, m.TotalNotional, m.EndDate, asOf)
		}
	}

	if !m.EndDate.IsZero() {
		m.TotalDV01 = DV01(m.TotalNotional, DaysToMaturity(m.EndDate, asOf))
	}

	m.HedgeAlert = HedgeAlert(m.NetEquityExposure)
	return m
}
