package models

type TradeAction string

const (
	ActionBuy    TradeAction = "BUY"
	ActionSell   TradeAction = "SELL"
	ActionNone   TradeAction = "NONE"
	ActionRepay  TradeAction = "REPAY"
	ActionBorrow TradeAction = "BORROW"
	ActionLend   TradeAction = "LEND"
	ActionRecall TradeAction = "RECALL"
	ActionReturn TradeAction = "RETURN"
)

type TradeMode string

const (
	ModeUnwind TradeMode = "unwind"
	ModeResize TradeMode = "resize"
)

// RebalancingRecord is the per-instrument output of the rebalancing engine.
// NeedsRebalancing is true iff the drift is non-zero and |SharesDiff| >= the
// threshold the caller supplied; Action is BUY when SharesDiff > 0, SELL
// when < 0, else NONE.
type RebalancingRecord struct {
	BasketID         string
	Ticker           string
	CurrentShares    float64
	TargetShares     float64
	SharesDiff       float64
	Price            float64
	MarketValueUSD   float64
	PnLUSD           float64
	IndexWeightPct   float64 // weight expressed as a percentage
	Action           TradeAction
	NeedsRebalancing bool
	TradeValue       float64 // |SharesDiff × Price|
}

// RebalanceAlert is the actionable subset of a RebalancingRecord, shaped for
// alert feeds. One casing, one field per fact.
type RebalanceAlert struct {
	BasketID      string
	PositionID    string
	Ticker        string
	Action        TradeAction
	Shares        int // absolute share count to transact
	Message       string
	CurrentShares float64
	TargetShares  float64
	Price         float64
	TradeValue    float64
}

// FuturesTrade is one futures-leg instruction. ContractsSigned added to
// CurrentContracts gives NewContracts; Notional added to CurrentNotional
// gives NewNotional.
type FuturesTrade struct {
	BasketID         string
	PositionID       string
	Instrument       string
	ContractMonth    string
	Ticker           string
	Action           TradeAction
	Contracts        int // absolute
	ContractsSigned  int
	Notional         float64
	Price            float64
	CurrentNotional  float64
	CurrentContracts int
	CurrentDirection Direction
	NewNotional      float64
	NewContracts     int
}

// CashTrade is one cash borrow/lend instruction.
type CashTrade struct {
	BasketID        string
	PositionID      string
	Type            PositionType
	Action          TradeAction
	Notional        float64
	CurrentNotional float64
	NewNotional     float64
	RatePct         float64
	Counterparty    string
}

// StockBorrowTrade is the single aggregate stock-borrow instruction for a
// basket; constituent borrow rows are sized as one block.
type StockBorrowTrade struct {
	BasketID        string
	Action          TradeAction
	Notional        float64
	CurrentNotional float64
	NewNotional     float64
	PositionCount   int
	RatePct         float64
	Counterparty    string
}

// EquityTrade is one per-ticker equity instruction.
type EquityTrade struct {
	BasketID           string
	Ticker             string
	Company            string
	Action             TradeAction
	CurrentShares      float64
	CurrentMarketValue float64
	Price              float64
	IndexWeight        float64
	TransactionValue   float64
	SharesTransacted   float64
	SharesAfter        float64
	MarketValueAfter   float64
}

// BasketTradeSet bundles the instructions that resize or unwind every leg of
// a basket in lockstep.
type BasketTradeSet struct {
	InstructionID       string
	BasketID            string
	Mode                TradeMode
	TransactionNotional float64 // zero in unwind mode
	Futures             []FuturesTrade
	Cash                []CashTrade
	StockBorrow         []StockBorrowTrade
	Equities            []EquityTrade
}
