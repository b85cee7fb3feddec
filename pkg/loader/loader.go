// Package loader reads the desk's CSV snapshots into typed records. It is
// deliberately forgiving about numeric formatting: accounting-style values
// ("$1,234", "(500)", bare "-") are normalized, blanks become zero, and only
// structural problems (unreadable file, missing header) surface as errors.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/quarterback/quarterback/pkg/models"
)

type Loader struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *Loader {
	if logger == nil {
		logger = logrus.New()
	}
	return &Loader{logger: logger}
}

// table is one parsed CSV: a header index plus the data rows.
type table struct {
	index map[string]int
	rows  [][]string
}

func readTable(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		rows = append(rows, row)
	}
	return &table{index: index, rows: rows}, nil
}

func (t *table) get(row []string, column string) string {
	i, ok := t.index[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseMoney normalizes accounting-formatted numbers: thousands separators,
// currency symbols and spaces are stripped, parentheses mean negative, and a
// bare dash or blank is zero.
func parseMoney(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return 0
	}
	negative := strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
	clean := strings.NewReplacer("$", "", ",", "", "(", "", ")", "", " ", "").Replace(s)
	if clean == "" || clean == "-" {
		return 0
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0
	}
	if negative && v > 0 {
		v = -v
	}
	return v
}

// parseFloatOrNaN keeps "value absent" distinguishable from zero, which the
// forward-rate matrix needs for unpriced contracts.
func parseFloatOrNaN(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

var dateLayouts = []string{"2006-01-02", "20060102", "2006-01-02 15:04:05", "01/02/2006"}

func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parseBool(s string) bool {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRUE", "Y", "YES", "1":
		return true
	}
	return false
}

// Positions reads the basket position snapshot.
func (l *Loader) Positions(path string) ([]models.Position, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}

	positions := make([]models.Position, 0, len(t.rows))
	for _, row := range t.rows {
		rate := t.get(row, "FINANCING_RATE_%")
		positions = append(positions, models.Position{
			BasketID:          t.get(row, "BASKET_ID"),
			PositionID:        t.get(row, "POSITION_ID"),
			Type:              models.PositionType(t.get(row, "POSITION_TYPE")),
			Strategy:          models.StrategyType(t.get(row, "STRATEGY_TYPE")),
			Direction:         models.Direction(t.get(row, "LONG_SHORT")),
			Quantity:          parseMoney(t.get(row, "QUANTITY")),
			PriceOrLevel:      parseMoney(t.get(row, "PRICE_OR_LEVEL")),
			NotionalUSD:       parseMoney(t.get(row, "NOTIONAL_USD")),
			MarketValueUSD:    parseMoney(t.get(row, "MARKET_VALUE_USD")),
			EquityExposureUSD: parseMoney(t.get(row, "EQUITY_EXPOSURE_USD")),
			FinancingRatePct:  parseMoney(rate),
			HasFinancingRate:  rate != "" && rate != "-",
			FinancingRateType: t.get(row, "FINANCING_RATE_TYPE"),
			StartDate:         parseDate(t.get(row, "START_DATE")),
			EndDate:           parseDate(t.get(row, "END_DATE")),
			PnLUSD:            parseMoney(t.get(row, "PNL_USD")),
			Underlying:        t.get(row, "UNDERLYING"),
			ContractMonth:     t.get(row, "CONTRACT_MONTH"),
			Counterparty:      t.get(row, "EXCHANGE_OR_COUNTERPARTY"),
			RollEvent:         parseBool(t.get(row, "ROLL_EVENT_FLAG")),
		})
	}

	l.logger.WithFields(logrus.Fields{
		"file":      path,
		"positions": len(positions),
	}).Debug("Loaded positions")
	return positions, nil
}

// Benchmark reads the index constituent snapshot. Weights arrive as decimal
// fractions.
func (l *Loader) Benchmark(path string) ([]models.BenchmarkConstituent, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}

	rows := make([]models.BenchmarkConstituent, 0, len(t.rows))
	for _, row := range t.rows {
		ticker := t.get(row, "BLOOMBERG_TICKER")
		if ticker == "" {
			continue
		}
		rows = append(rows, models.BenchmarkConstituent{
			Ticker:     ticker,
			Company:    t.get(row, "COMPANY"),
			LocalPrice: parseMoney(t.get(row, "LOCAL_PRICE")),
			Weight:     parseMoney(t.get(row, "INDEX_WEIGHT")),
		})
	}

	l.logger.WithFields(logrus.Fields{
		"file":         path,
		"constituents": len(rows),
	}).Debug("Loaded benchmark")
	return rows, nil
}

// FuturesCurve reads the futures price snapshot, sorted nearest maturity
// first. Missing prices stay NaN so matrix cells for unpriced legs remain
// distinguishable from true zero rates.
func (l *Loader) FuturesCurve(path string) ([]models.FuturesContract, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}

	contracts := make([]models.FuturesContract, 0, len(t.rows))
	for _, row := range t.rows {
		code := t.get(row, "Contract_Code")
		if code == "" {
			continue
		}
		contracts = append(contracts, models.FuturesContract{
			Code:           code,
			Price:          parseFloatOrNaN(t.get(row, "last_price")),
			DaysToMaturity: int(parseMoney(t.get(row, "Days_to_maturity"))),
			Maturity:       parseDate(t.get(row, "Maturity")),
		})
	}
	sort.SliceStable(contracts, func(i, j int) bool {
		return contracts[i].DaysToMaturity < contracts[j].DaysToMaturity
	})

	l.logger.WithFields(logrus.Fields{
		"file":      path,
		"contracts": len(contracts),
	}).Debug("Loaded futures curve")
	return contracts, nil
}

// CorporateActions reads the corporate action feed, sorted by effective
// date. Effective dates arrive in YYYYMMDD form.
func (l *Loader) CorporateActions(path string) ([]models.CorporateAction, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}

	events := make([]models.CorporateAction, 0, len(t.rows))
	for _, row := range t.rows {
		events = append(events, models.CorporateAction{
			Ticker:            t.get(row, "CURRENT_BLOOMBERG_TICKER"),
			EffectiveDate:     parseDate(t.get(row, "EFFECTIVE_DATE")),
			SharesPriorEvents: parseMoney(t.get(row, "INDEX_SHARES_PRIOR_EVENTS")),
			SharesPostEvents:  parseMoney(t.get(row, "INDEX_SHARES_POST_EVENTS")),
			ActionType:        t.get(row, "ACTION_TYPE"),
			ActionGroup:       t.get(row, "ACTION_GROUP"),
			Status:            t.get(row, "STATUS"),
			Comments:          t.get(row, "COMMENTS"),
		})
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].EffectiveDate.IsZero() {
			return false
		}
		if events[j].EffectiveDate.IsZero() {
			return true
		}
		return events[i].EffectiveDate.Before(events[j].EffectiveDate)
	})

	l.logger.WithFields(logrus.Fields{
		"file":   path,
		"events": len(events),
	}).Debug("Loaded corporate actions")
	return events, nil
}
