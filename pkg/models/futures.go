package models

import (
	"time"
)

// FuturesContract is one point on the futures price curve. Price is quoted
// in basis points for AIR-style financing futures; NaN marks a missing
// quote, which is distinct from a true zero rate. DaysToMaturity is the
// static day count carried on the curve snapshot; Maturity (when set) is
// used to derive dynamic days from a valuation date.
type FuturesContract struct {
	Code           string
	Price          float64
	DaysToMaturity int
	Maturity       time.Time
}

// RateMatrix is a square grid over contract codes. A cell (from, to) exists
// only when from matures strictly before to and both legs priced; absent
// cells are not zeros.
type RateMatrix struct {
	Codes []string
	cells map[string]map[string]float64
}

func NewRateMatrix(codes []string) *RateMatrix {
	return &RateMatrix{
		Codes: codes,
		cells: make(map[string]map[string]float64, len(codes)),
	}
}

func (m *RateMatrix) Set(from, to string, value float64) {
	row, ok := m.cells[from]
	if !ok {
		row = make(map[string]float64)
		m.cells[from] = row
	}
	row[to] = value
}

// Value returns the cell value and whether the cell is populated.
func (m *RateMatrix) Value(from, to string) (float64, bool) {
	row, ok := m.cells[from]
	if !ok {
		return 0, false
	}
	v, ok := row[to]
	return v, ok
}

// Len reports the number of populated cells.
func (m *RateMatrix) Len() int {
	n := 0
	for _, row := range m.cells {
		n += len(row)
	}
	return n
}

// Opportunity is one calendar-spread candidate that passed every supplied
// filter threshold.
type Opportunity struct {
	FromContract    string
	ToContract      string
	ForwardRate     float64
	AnnualizedCarry float64
	PeriodDays      int
}

type SpreadSignal string

const (
	SignalRich  SpreadSignal = "RICH"
	SignalCheap SpreadSignal = "CHEAP"
)

// SpreadOpportunity is the legacy rich/cheap scanner output: cells whose
// implied forward rate sits outside a high/low band.
type SpreadOpportunity struct {
	FromContract string
	ToContract   string
	ForwardRate  float64
	Signal       SpreadSignal
	TradeAction  string // SELL_SPREAD or BUY_SPREAD
	Description  string
}

// CalendarSpreadCarry breaks down the carry earned holding a long-near /
// short-far calendar spread position.
type CalendarSpreadCarry struct {
	SpreadBPS            float64
	DailyCarryBPS        float64
	DailyCarryUSD        float64
	TotalCarryBPS        float64
	TotalCarryUSD        float64
	AnnualizedCarryBPS   float64
	HoldingPeriodDays    int
	DaysBetweenContracts int
}
