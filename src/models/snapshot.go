package models

// -----------------------------------------------------------------------------
// Snapshot Structures (field names match the dashboard wire format)
// -----------------------------------------------------------------------------

// MSnapshot is one generated bundle of dashboard data, valid for one tick.
type MSnapshot struct {
	Account     MAccount      `json:"account"`
	Positions   []MPosition   `json:"positions"`
	Orders      []MOrder      `json:"orders"`
	Market      MMarketQuote  `json:"market"`
	Agents      MAgentSummary `json:"agents"`
	Performance MPerformance  `json:"performance"`
}

// -----------------------------------------------------------------------------

type MAccount struct {
	Login        int64   `json:"login"`
	Leverage     int     `json:"leverage"`
	TradeAllowed bool    `json:"trade_allowed"`
	Balance      float64 `json:"balance"`
	Equity       float64 `json:"equity"`
	Profit       float64 `json:"profit"`
	Credit       float64 `json:"credit"`
	Margin       float64 `json:"margin"`
	MarginFree   float64 `json:"margin_free"`
	MarginLevel  float64 `json:"margin_level"`
	Currency     string  `json:"currency"`
	Name         string  `json:"name"`
	Server       string  `json:"server"`
	Company      string  `json:"company"`
}

// -----------------------------------------------------------------------------

type MPosition struct {
	Ticket       int64   `json:"ticket"`
	Symbol       string  `json:"symbol"`
	Type         int     `json:"type"` // 0 = BUY, 1 = SELL
	TypeDesc     string  `json:"type_desc"`
	Volume       float64 `json:"volume"`
	PriceOpen    float64 `json:"price_open"`
	StopLoss     float64 `json:"sl"`
	TakeProfit   float64 `json:"tp"`
	PriceCurrent float64 `json:"price_current"`
	Profit       float64 `json:"profit"`
	Swap         float64 `json:"swap"`
	Commission   float64 `json:"commission"`
	TimeOpen     string  `json:"time_open"`
	Magic        int     `json:"magic"`
	Comment      string  `json:"comment"`
}

// -----------------------------------------------------------------------------

type MOrder struct {
	Ticket        int64   `json:"ticket"`
	Symbol        string  `json:"symbol"`
	Type          string  `json:"type"` // BUY_LIMIT, SELL_LIMIT, BUY_STOP, SELL_STOP
	VolumeInitial float64 `json:"volume_initial"`
	PriceOpen     float64 `json:"price_open"`
	StopLoss      float64 `json:"sl"`
	TakeProfit    float64 `json:"tp"`
	TimeSetup     string  `json:"time_setup"`
	Magic         int     `json:"magic"`
	Comment       string  `json:"comment"`
}

// -----------------------------------------------------------------------------

type MMarketQuote struct {
	Symbol       string  `json:"symbol"`
	Bid          float64 `json:"bid"`
	Ask          float64 `json:"ask"`
	Last         float64 `json:"last"`
	Volume       int64   `json:"volume"`
	Time         string  `json:"time"`
	Digits       int     `json:"digits"`
	Spread       int     `json:"spread"`
	ContractSize float64 `json:"contract_size"`
	Point        float64 `json:"point"`
}

// -----------------------------------------------------------------------------

type MDecisionCounts struct {
	Buy  int `json:"buy"`
	Sell int `json:"sell"`
	Hold int `json:"hold"`
}

type MAgentSummary struct {
	Active            int             `json:"active"`
	Total             int             `json:"total"`
	Communicating     int             `json:"communicating"`
	Decisions         MDecisionCounts `json:"decisions"`
	SystemHealth      int             `json:"systemHealth"`
	AverageConfidence int             `json:"averageConfidence"`
	Status            string          `json:"status"`
	LastUpdate        string          `json:"lastUpdate"`
}

// -----------------------------------------------------------------------------

type MPerformance struct {
	DailyPnL       float64 `json:"dailyPnL"`
	WinRate        float64 `json:"winRate"`
	ProfitFactor   float64 `json:"profitFactor"`
	SharpeRatio    float64 `json:"sharpeRatio"`
	MaxDrawdown    float64 `json:"maxDrawdown"`
	RecoveryFactor float64 `json:"recoveryFactor"`
}

// -----------------------------------------------------------------------------
// Sub-record lookup
// -----------------------------------------------------------------------------

// Section returns the named sub-record of the snapshot. The second return
// value is false when the key names no sub-record; callers fall back to the
// full snapshot in that case.
func (s MSnapshot) Section(key string) (interface{}, bool) {
	switch key {
	case "account":
		return s.Account, true
	case "positions":
		return s.Positions, true
	case "orders":
		return s.Orders, true
	case "market":
		return s.Market, true
	case "agents":
		return s.Agents, true
	case "performance":
		return s.Performance, true
	}
	return nil, false
}

// EmptySnapshot returns the pre-first-tick sentinel: zero sub-records with
// non-nil position/order slices so clients always see arrays, never null.
func EmptySnapshot() MSnapshot {
	return MSnapshot{
		Positions: []MPosition{},
		Orders:    []MOrder{},
	}
}
