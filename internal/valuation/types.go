package valuation

import "time"

// Holding is the derived, point-in-time summary of a single asset position.
// Holdings are computed on every read and never persisted.
type Holding struct {
	AssetID        uint    `json:"asset_id"`        // Asset primary key
	Ticker         string  `json:"ticker"`          // Asset ticker symbol
	Name           string  `json:"name"`            // Asset display name
	Category       string  `json:"category"`        // Asset category
	Quantity       float64 `json:"quantity"`        // Units currently held, never negative
	AvgUnitCost    float64 `json:"avg_unit_cost"`   // Running weighted-average cost per unit
	CostBasis      float64 `json:"cost_basis"`      // Cost basis of the units currently held
	LatestPrice    float64 `json:"latest_price"`    // Unit price of the most recent transaction
	CurrentValue   float64 `json:"current_value"`   // Quantity x latest price
	UnrealizedGain float64 `json:"unrealized_gain"` // Current value minus cost basis
}

// PortfolioOverview aggregates a user's whole portfolio for the dashboard.
type PortfolioOverview struct {
	NetCashContributed    float64 `json:"net_cash_contributed"`    // Deposits minus withdrawals
	TotalCostBasis        float64 `json:"total_cost_basis"`        // Sum of holding cost bases
	CashBalance           float64 `json:"cash_balance"`            // Uninvested cash: contributions minus cost basis
	HoldingsValue         float64 `json:"holdings_value"`          // Sum of holding current values
	TotalCurrentValue     float64 `json:"total_current_value"`     // Holdings value plus cash balance
	TotalDividends        float64 `json:"total_dividends"`         // Dividend income, all assets, all time
	TotalUnrealizedGain   float64 `json:"total_unrealized_gain"`   // Sum of per-holding unrealized gains
	UnrealizedGainPercent float64 `json:"unrealized_gain_percent"` // Gain relative to cost basis, 0 when basis is 0
}

// AllocationSlice is one category's share of the portfolio's current value.
type AllocationSlice struct {
	Category   string  `json:"category"`   // Asset category
	Value      float64 `json:"value"`      // Aggregate current value of the category
	Percentage float64 `json:"percentage"` // Share of total value, rounded half-up to two decimals
}

// History event kinds
const (
	EventTransaction = "transaction" // A buy or sell
	EventDividend    = "dividend"    // A dividend payment
	EventCash        = "cash"        // A deposit or withdrawal
)

// HistoryEvent is one dated entry of the merged portfolio timeline.
type HistoryEvent struct {
	Kind      string    `json:"kind"`                 // One of the event kinds above
	ID        uint      `json:"id"`                   // Creation id of the underlying record
	Date      time.Time `json:"date"`                 // Event date, the ordering key
	AssetID   uint      `json:"asset_id,omitempty"`   // Referenced asset, zero for cash movements
	Type      string    `json:"type,omitempty"`       // buy/sell or deposit/withdraw
	Quantity  float64   `json:"quantity,omitempty"`   // Units traded, transactions only
	UnitPrice float64   `json:"unit_price,omitempty"` // Price per unit, transactions only
	Fees      float64   `json:"fees,omitempty"`       // Broker fees, transactions only
	Amount    float64   `json:"amount"`               // Cash amount of the event
	Notes     string    `json:"notes,omitempty"`      // Dividend notes
}
