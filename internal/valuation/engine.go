package valuation

import (
	"sort" // Sorting for deterministic output
	"time" // Dates for the oversell cutoff

	"github.com/AleRigon22/InvestmentDashboard-sub001/internal/domain" // Importing domain models

	"github.com/shopspring/decimal" // Decimal rounding for display values
)

// The engine is pure: every function is a deterministic mapping from a user's
// entity snapshot to display-ready aggregates. No I/O, no hidden state, no errors.

// round2 rounds a float to two decimals, half up, for display
func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// position is the running aggregation state for a single asset
type position struct {
	quantity    float64 // Units held so far
	costBasis   float64 // Cost basis of the units held so far
	latestPrice float64 // Unit price of the most recent transaction seen
}

// ComputeHoldings derives the current holdings from a user's transactions.
// Cost basis follows a running weighted-average policy: each buy blends its
// cost (quantity x price + fees) into a single average unit cost; each sell
// reduces quantity and basis at that average without changing it, and sell
// fees never adjust basis. Transactions referencing an unknown asset are
// skipped. Assets whose held quantity ends at or below zero are excluded.
func ComputeHoldings(transactions []domain.Transaction, assets []domain.Asset) []Holding {
	// Index assets by id for reference resolution
	assetByID := make(map[uint]domain.Asset, len(assets))
	for _, a := range assets {
		assetByID[a.ID] = a
	}

	// Process in chronological order so average-cost reductions on sells are correct.
	// Creation id breaks same-date ties deterministically.
	txs := make([]domain.Transaction, len(transactions))
	copy(txs, transactions)
	sort.SliceStable(txs, func(i, j int) bool {
		if !txs[i].Date.Equal(txs[j].Date) {
			return txs[i].Date.Before(txs[j].Date)
		}
		return txs[i].ID < txs[j].ID
	})

	positions := make(map[uint]*position) // Running state per asset
	for _, tx := range txs {
		// Skip records whose asset no longer exists (referential gap)
		if _, ok := assetByID[tx.AssetID]; !ok {
			continue
		}
		pos := positions[tx.AssetID]
		if pos == nil {
			pos = &position{}
			positions[tx.AssetID] = pos
		}
		// The most recent trade price stands in for a market quote
		pos.latestPrice = tx.UnitPrice
		switch tx.Type {
		case domain.TradeBuy:
			// Buys add units and blend their full cost into the basis
			pos.quantity += tx.Quantity
			pos.costBasis += tx.Quantity*tx.UnitPrice + tx.Fees
		case domain.TradeSell:
			// Sells release basis at the current average unit cost
			if pos.quantity > 0 {
				avg := pos.costBasis / pos.quantity
				sold := tx.Quantity
				if sold > pos.quantity {
					sold = pos.quantity // Never release more units than held
				}
				pos.costBasis -= avg * sold
				if pos.costBasis < 0 {
					pos.costBasis = 0
				}
			}
			pos.quantity -= tx.Quantity
			if pos.quantity < 0 {
				pos.quantity = 0 // Oversold positions clamp to flat, best effort
			}
		}
	}

	// Deterministic output order by asset id
	ids := make([]uint, 0, len(positions))
	for id := range positions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	holdings := make([]Holding, 0, len(positions))
	for _, id := range ids {
		pos := positions[id]
		// Closed or oversold positions keep their history but are not holdings
		if pos.quantity <= 0 {
			continue
		}
		asset := assetByID[id]
		avg := pos.costBasis / pos.quantity
		value := pos.quantity * pos.latestPrice
		holdings = append(holdings, Holding{
			AssetID:        asset.ID,
			Ticker:         asset.Ticker,
			Name:           asset.Name,
			Category:       asset.Category,
			Quantity:       pos.quantity,
			AvgUnitCost:    round2(avg),
			CostBasis:      round2(pos.costBasis),
			LatestPrice:    pos.latestPrice,
			CurrentValue:   round2(value),
			UnrealizedGain: round2(value - pos.costBasis),
		})
	}
	return holdings
}

// ComputeOverview aggregates holdings, cash movements and dividends into the
// dashboard totals. Both notions of invested capital are exposed: net cash
// contributed (deposits minus withdrawals) and total cost basis (what the
// held units cost). The gain ratio is defined as zero when the basis is zero.
func ComputeOverview(holdings []Holding, cashMovements []domain.CashMovement, dividends []domain.Dividend) PortfolioOverview {
	var overview PortfolioOverview

	// Capital flows independent of any asset
	for _, cm := range cashMovements {
		switch cm.Type {
		case domain.CashDeposit:
			overview.NetCashContributed += cm.Amount
		case domain.CashWithdraw:
			overview.NetCashContributed -= cm.Amount
		}
	}

	// Position aggregates
	for _, h := range holdings {
		overview.TotalCostBasis += h.CostBasis
		overview.HoldingsValue += h.CurrentValue
		overview.TotalUnrealizedGain += h.UnrealizedGain
	}

	// Dividend income across all assets, all time
	for _, d := range dividends {
		overview.TotalDividends += d.Amount
	}

	// Uninvested cash is whatever was contributed but not spent on positions
	overview.CashBalance = overview.NetCashContributed - overview.TotalCostBasis
	overview.TotalCurrentValue = overview.HoldingsValue + overview.CashBalance

	// Ratio is defined as 0 for a portfolio with no cost basis
	if overview.TotalCostBasis != 0 {
		overview.UnrealizedGainPercent = round2((overview.TotalCurrentValue - overview.TotalCostBasis) / overview.TotalCostBasis * 100)
	}

	overview.NetCashContributed = round2(overview.NetCashContributed)
	overview.TotalCostBasis = round2(overview.TotalCostBasis)
	overview.CashBalance = round2(overview.CashBalance)
	overview.HoldingsValue = round2(overview.HoldingsValue)
	overview.TotalCurrentValue = round2(overview.TotalCurrentValue)
	overview.TotalDividends = round2(overview.TotalDividends)
	overview.TotalUnrealizedGain = round2(overview.TotalUnrealizedGain)
	return overview
}

// ComputeAllocation breaks the portfolio's current value down by asset
// category. Values are recomputed from quantity and latest price rather than
// taken from the cent-rounded CurrentValue, so percentages derive from fully
// unrounded sums and are only rounded at the slice boundary; the rounded
// slices need not sum to exactly 100. Categories with zero aggregate value
// are omitted.
func ComputeAllocation(holdings []Holding) []AllocationSlice {
	byCategory := make(map[string]float64) // Unrounded value per category
	var total float64
	for _, h := range holdings {
		value := h.Quantity * h.LatestPrice
		byCategory[h.Category] += value
		total += value
	}

	slices := make([]AllocationSlice, 0, len(byCategory))
	for category, value := range byCategory {
		if value == 0 {
			continue // Zero-value categories are omitted
		}
		pct := 0.0
		if total > 0 {
			pct = value / total * 100
		}
		slices = append(slices, AllocationSlice{
			Category:   category,
			Value:      round2(value),
			Percentage: round2(pct),
		})
	}
	// Largest slice first, category name breaks ties
	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Value != slices[j].Value {
			return slices[i].Value > slices[j].Value
		}
		return slices[i].Category < slices[j].Category
	})
	return slices
}

// ComputeHistory merges transactions, dividends and cash movements into one
// chronological timeline. Events are ordered by date ascending with creation
// id as the tie-break, so repeated calls over the same snapshot produce the
// same sequence.
func ComputeHistory(transactions []domain.Transaction, dividends []domain.Dividend, cashMovements []domain.CashMovement) []HistoryEvent {
	events := make([]HistoryEvent, 0, len(transactions)+len(dividends)+len(cashMovements))

	for _, tx := range transactions {
		// Cash amount of a trade: buys cost quantity x price plus fees,
		// sells return quantity x price minus fees
		amount := tx.Quantity*tx.UnitPrice + tx.Fees
		if tx.Type == domain.TradeSell {
			amount = tx.Quantity*tx.UnitPrice - tx.Fees
		}
		events = append(events, HistoryEvent{
			Kind:      EventTransaction,
			ID:        tx.ID,
			Date:      tx.Date,
			AssetID:   tx.AssetID,
			Type:      tx.Type,
			Quantity:  tx.Quantity,
			UnitPrice: tx.UnitPrice,
			Fees:      tx.Fees,
			Amount:    round2(amount),
		})
	}
	for _, d := range dividends {
		events = append(events, HistoryEvent{
			Kind:    EventDividend,
			ID:      d.ID,
			Date:    d.PaymentDate,
			AssetID: d.AssetID,
			Amount:  round2(d.Amount),
			Notes:   d.Notes,
		})
	}
	for _, cm := range cashMovements {
		events = append(events, HistoryEvent{
			Kind:   EventCash,
			ID:     cm.ID,
			Date:   cm.Date,
			Type:   cm.Type,
			Amount: round2(cm.Amount),
		})
	}

	// Stable sort keeps the fixed append order for identical (date, id) pairs
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].Date.Equal(events[j].Date) {
			return events[i].Date.Before(events[j].Date)
		}
		return events[i].ID < events[j].ID
	})
	return events
}

// UnsoldQuantity returns the cumulative unsold quantity of an asset as of a
// given date, counting same-day trades. Used by the strict oversell check at
// the API boundary; the engine itself never rejects anything.
func UnsoldQuantity(transactions []domain.Transaction, assetID uint, asOf time.Time) float64 {
	var quantity float64
	for _, tx := range transactions {
		if tx.AssetID != assetID || tx.Date.After(asOf) {
			continue
		}
		switch tx.Type {
		case domain.TradeBuy:
			quantity += tx.Quantity
		case domain.TradeSell:
			quantity -= tx.Quantity
		}
	}
	return quantity
}
