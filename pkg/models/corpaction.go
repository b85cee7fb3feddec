package models

import (
	"time"
)

// CorporateAction is one index event row that may change a constituent's
// share count.
type CorporateAction struct {
	Ticker            string // current Bloomberg ticker
	EffectiveDate     time.Time
	SharesPriorEvents float64
	SharesPostEvents  float64
	ActionType        string
	ActionGroup       string
	Status            string
	Comments          string
}

// CorpActionImpact is the computed weight impact of one corporate action.
// HasWeightChange is true when the share count moved by more than 0.01%.
type CorpActionImpact struct {
	Ticker             string
	HasWeightChange    bool
	PriorShares        float64
	PostShares         float64
	SharesChangePct    float64
	CurrentIndexWeight float64
	NewIndexWeight     float64
	CurrentPrice       float64
}

// EventRecommendation is a basket-specific trade generated from a corporate
// action's weight change. Shares is the absolute count to transact.
type EventRecommendation struct {
	BasketID           string
	Ticker             string
	Strategy           StrategyType
	CurrentShares      int
	TargetShares       int
	Shares             int
	Action             TradeAction
	TradeValue         float64
	Price              float64
	SharesChangePct    float64
	CurrentIndexWeight float64
	NewIndexWeight     float64
}

// CalendarRecommendation pairs an upcoming corporate action with the trade
// it implies for one basket, dated on the event's effective date.
type CalendarRecommendation struct {
	BasketID      string
	Ticker        string
	Company       string
	EventType     string
	EffectiveDate time.Time
	Comments      string
	Action        TradeAction
	Shares        int
	Price         float64
	TradeValue    float64
	CurrentShares int
	TargetShares  int
}
