package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarterback/quarterback/pkg/engine"
	"github.com/quarterback/quarterback/pkg/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCarry(t *testing.T) {
	t.Parallel()

	// (5.5% - 5.3%) on 100mm for 90 days, actual/360:
	// 0.002 * 100_000_000 * 90/360 = 50_000.
	got := engine.Carry(0.055, 0.053, 100_000_000, 90)
	assert.InDelta(t, 50_000, got, 1e-9)

	// Notional sign must not flip the carry sign.
	assert.InDelta(t, got, engine.Carry(0.055, 0.053, -100_000_000, 90), 1e-9)

	// Implied below funding is negative carry.
	assert.Less(t, engine.Carry(0.050, 0.053, 100_000_000, 90), 0.0)
}

func TestDailyCarry(t *testing.T) {
	t.Parallel()

	// 0.002 * 100mm / 360 per day.
	assert.InDelta(t, 555.5555556, engine.DailyCarry(0.055, 0.053, 100_000_000), 1e-4)
}

func TestAccruedCarryClampsBeforeStart(t *testing.T) {
	t.Parallel()

	start := date(2026, 6, 1)
	asOf := date(2026, 3, 1)
	assert.Zero(t, engine.AccruedCarry(0.055, 0.053, 100_000_000, start, asOf))
}

func TestCarryToMaturityClampsPastEnd(t *testing.T) {
	t.Parallel()

	end := date(2026, 3, 1)
	asOf := date(2026, 6, 1)
	assert.Zero(t, engine.CarryToMaturity(0.055, 0.053, 100_000_000, end, asOf))
}

func TestDV01(t *testing.T) {
	t.Parallel()

	// 100mm with 180 days left: 100mm * 0.5 * 0.0001 = 5_000.
	assert.InDelta(t, 5_000, engine.DV01(100_000_000, 180), 1e-9)
	assert.InDelta(t, 5_000, engine.DV01(-100_000_000, 180), 1e-9)
	assert.Zero(t, engine.DV01(100_000_000, 0))
}

func TestPnL(t *testing.T) {
	t.Parallel()

	dollars, bps := engine.PnL(101_000, 100_000, nil)
	assert.InDelta(t, 1_000, dollars, 1e-9)
	assert.InDelta(t, 100, bps, 1e-9)

	// Explicit notional wins over initial value as the bps reference.
	notional := 1_000_000.0
	dollars, bps = engine.PnL(101_000, 100_000, &notional)
	assert.InDelta(t, 1_000, dollars, 1e-9)
	assert.InDelta(t, 10, bps, 1e-9)

	// Zero reference yields zero bps, not a division blowup.
	dollars, bps = engine.PnL(500, 0, nil)
	assert.InDelta(t, 500, dollars, 1e-9)
	assert.Zero(t, bps)
}

func TestToBPS(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 25, engine.ToBPS(250_000, 100_000_000), 1e-9)
	assert.InDelta(t, 25, engine.ToBPS(250_000, -100_000_000), 1e-9)
	assert.Zero(t, engine.ToBPS(250_000, 0))
}

func TestTheoreticalFuturesPriceRoundTrip(t *testing.T) {
	t.Parallel()

	price := engine.TheoreticalFuturesPrice(5300, 0.053, 0.013, 90)
	assert.InDelta(t, 5353, price, 1e-9) // 5300 * (1 + 0.04*90/360)

	implied := engine.ImpliedFinancingRate(price, 5300, 0.013, 90)
	assert.InDelta(t, 0.053, implied, 1e-12)
}

func TestImpliedFinancingRateDegenerateInputs(t *testing.T) {
	t.Parallel()

	assert.Zero(t, engine.ImpliedFinancingRate(5353, 0, 0.013, 90))
	assert.Zero(t, engine.ImpliedFinancingRate(5353, 5300, 0.013, 0))
}

func TestHedgeAlertBoundary(t *testing.T) {
	t.Parallel()

	assert.False(t, engine.HedgeAlert(100_000))
	assert.False(t, engine.HedgeAlert(-100_000))
	assert.True(t, engine.HedgeAlert(100_001))
	assert.True(t, engine.HedgeAlert(-100_001))
}

func TestComputeBasketMetrics(t *testing.T) {
	t.Parallel()

	positions := []models.Position{
		{
			BasketID:          "B1",
			Type:              models.PositionFuture,
			Direction:         models.Short,
			NotionalUSD:       -100_000_000,
			EquityExposureUSD: -100_000_000,
			FinancingRatePct:  5.5,
			StartDate:         date(2026, 1, 1),
			EndDate:           date(2026, 12, 31),
			PnLUSD:            250_000,
		},
		{
			BasketID:       "B1",
			Type:           models.PositionEquity,
			Direction:      models.Long,
			MarketValueUSD: 99_950_000,
			PnLUSD:         -50_000,
		},
		{
			BasketID:         "B1",
			Type:             models.PositionCashBorrow,
			NotionalUSD:      -100_000_000,
			FinancingRatePct: 5.3,
			StartDate:        date(2026, 1, 1),
			EndDate:          date(2026, 12, 31),
		},
	}
	asOf := date(2026, 3, 1)

	m := engine.ComputeBasketMetrics(positions, asOf)

	assert.InDelta(t, -100_000_000, m.FuturesEquityExposure, 1e-6)
	assert.InDelta(t, 99_950_000, m.PhysicalEquityExposure, 1e-6)
	assert.InDelta(t, -50_000, m.NetEquityExposure, 1e-6)
	assert.InDelta(t, 199_950_000, m.TotalEquityExposure, 1e-6)
	assert.Zero(t, m.LongFuturesNotional)
	assert.InDelta(t, 100_000_000, m.ShortFuturesNotional, 1e-6)
	assert.InDelta(t, 100_000_000, m.TotalNotional, 1e-6)

	assert.InDelta(t, 200_000, m.TotalPnLUSD, 1e-6)
	assert.InDelta(t, 20, m.TotalPnLBPS, 1e-9) // 200k over 100mm

	// Implied 5.5% vs actual borrow 5.3%: 20bps of carry on 100mm.
	assert.InDelta(t, 555.5556, m.DailyCarry, 1e-3)
	// 59 days accrued (Jan 1 to Mar 1).
	assert.InDelta(t, 32_777.78, m.AccruedCarry, 1e-1)
	// 305 days to Dec 31.
	assert.InDelta(t, 169_444.44, m.CarryToMaturity, 1e-1)
	// |100mm| * 305/360 * 0.0001 with 305 days to Dec 31.
	assert.InDelta(t, 8472.2222, m.TotalDV01, 1e-3)

	assert.False(t, m.HedgeAlert)
	assert.Equal(t, date(2026, 1, 1), m.StartDate)
	assert.Equal(t, date(2026, 12, 31), m.EndDate)
}

func TestComputeBasketMetricsDefaultFundingRate(t *testing.T) {
	t.Parallel()

	// No cash-borrow leg: funding falls back to 5.3%.
	positions := []models.Position{
		{
			Type:              models.PositionFuture,
			Direction:         models.Short,
			NotionalUSD:       -50_000_000,
			EquityExposureUSD: -50_000_000,
			FinancingRatePct:  5.5,
			StartDate:         date(2026, 1, 1),
			EndDate:           date(2026, 7, 1),
		},
	}

	m := engine.ComputeBasketMetrics(positions, date(2026, 1, 1))
	require.NotZero(t, m.DailyCarry)
	assert.InDelta(t, (0.055-0.053)*50_000_000/360, m.DailyCarry, 1e-6)
}

func TestComputeBasketMetricsZeroRateQuote(t *testing.T) {
	t.Parallel()

	// An explicitly quoted 0% rate counts in the implied mean; an unquoted
	// row does not. Two quoted futures at 5.5% and 0% average to 2.75%,
	// against the 5.3% default funding.
	positions := []models.Position{
		{Type: models.PositionFuture, Direction: models.Short, NotionalUSD: -50_000_000, FinancingRatePct: 5.5, HasFinancingRate: true, StartDate: date(2026, 1, 1), EndDate: date(2026, 7, 1)},
		{Type: models.PositionFuture, Direction: models.Short, NotionalUSD: -50_000_000, FinancingRatePct: 0, HasFinancingRate: true, StartDate: date(2026, 1, 1), EndDate: date(2026, 7, 1)},
		{Type: models.PositionFuture, Direction: models.Short, NotionalUSD: -10_000_000},
	}

	m := engine.ComputeBasketMetrics(positions, date(2026, 1, 1))
	assert.InDelta(t, (0.0275-0.053)*110_000_000/360, m.DailyCarry, 1e-6)
}

func TestComputeBasketMetricsHedgeAlert(t *testing.T) {
	t.Parallel()

	positions := []models.Position{
		{Type: models.PositionFuture, Direction: models.Short, NotionalUSD: -100_000_000, EquityExposureUSD: -100_000_000},
		{Type: models.PositionEquity, Direction: models.Long, MarketValueUSD: 99_800_000},
	}

	m := engine.ComputeBasketMetrics(positions, date(2026, 3, 1))
	assert.InDelta(t, -200_000, m.NetEquityExposure, 1e-6)
	assert.True(t, m.HedgeAlert)
}

func TestComputeBasketMetricsEmpty(t *testing.T) {
	t.Parallel()

	m := engine.ComputeBasketMetrics(nil, date(2026, 3, 1))
	assert.Zero(t, m.TotalNotional)
	assert.Zero(t, m.DailyCarry)
	assert.False(t, m.HedgeAlert)
	assert.True(t, m.StartDate.IsZero())
}

func TestComputeBasketMetricsSparsePositions(t *testing.T) {
	t.Parallel()

	// A future with no rate and no dates still contributes notional but
	// produces no carry and no DV01.
	positions := []models.Position{
		{Type: models.PositionFuture, Direction: models.Long, NotionalUSD: 25_000_000},
	}

	m := engine.ComputeBasketMetrics(positions, date(2026, 3, 1))
	assert.InDelta(t, 25_000_000, m.LongFuturesNotional, 1e-6)
	assert.Zero(t, m.DailyCarry)
	assert.Zero(t, m.AccruedCarry)
	assert.Zero(t, m.TotalDV01)
}
