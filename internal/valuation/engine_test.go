package valuation

import (
	"testing"
	"time"

	"github.com/AleRigon22/InvestmentDashboard-sub001/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// day parses a YYYY-MM-DD date for test fixtures
func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func etfAsset() domain.Asset {
	return domain.Asset{ID: 1, UserID: 1, Ticker: "ETF-A", Name: "ETF A", Category: domain.CategoryETF}
}

func TestComputeHoldings_WeightedAverageCost(t *testing.T) {
	assets := []domain.Asset{etfAsset()}

	t.Run("two buys blend into one average", func(t *testing.T) {
		txs := []domain.Transaction{
			{ID: 1, AssetID: 1, Type: domain.TradeBuy, Quantity: 10, UnitPrice: 100, Fees: 1, Date: day(t, "2024-01-10")},
			{ID: 2, AssetID: 1, Type: domain.TradeBuy, Quantity: 10, UnitPrice: 120, Fees: 1, Date: day(t, "2024-02-10")},
		}
		holdings := ComputeHoldings(txs, assets)
		require.Len(t, holdings, 1)

		h := holdings[0]
		assert.Equal(t, uint(1), h.AssetID)
		assert.Equal(t, "ETF-A", h.Ticker)
		assert.InDelta(t, 20, h.Quantity, 1e-9)
		assert.InDelta(t, 110.1, h.AvgUnitCost, 1e-9) // (1001+1201)/20
		assert.InDelta(t, 2202, h.CostBasis, 1e-9)
		assert.InDelta(t, 120, h.LatestPrice, 1e-9) // price of the most recent trade
	})

	t.Run("sell reduces quantity but never the average", func(t *testing.T) {
		txs := []domain.Transaction{
			{ID: 1, AssetID: 1, Type: domain.TradeBuy, Quantity: 10, UnitPrice: 100, Fees: 1, Date: day(t, "2024-01-10")},
			{ID: 2, AssetID: 1, Type: domain.TradeBuy, Quantity: 10, UnitPrice: 120, Fees: 1, Date: day(t, "2024-02-10")},
			{ID: 3, AssetID: 1, Type: domain.TradeSell, Quantity: 5, UnitPrice: 150, Fees: 0, Date: day(t, "2024-03-10")},
		}
		holdings := ComputeHoldings(txs, assets)
		require.Len(t, holdings, 1)

		h := holdings[0]
		assert.InDelta(t, 15, h.Quantity, 1e-9)
		assert.InDelta(t, 110.1, h.AvgUnitCost, 1e-9) // unchanged by the sell
		assert.InDelta(t, 1651.5, h.CostBasis, 1e-9)  // 2202 - 110.1*5
	})

	t.Run("sell fees never adjust basis", func(t *testing.T) {
		txs := []domain.Transaction{
			{ID: 1, AssetID: 1, Type: domain.TradeBuy, Quantity: 10, UnitPrice: 100, Fees: 0, Date: day(t, "2024-01-10")},
			{ID: 2, AssetID: 1, Type: domain.TradeSell, Quantity: 5, UnitPrice: 110, Fees: 25, Date: day(t, "2024-02-10")},
		}
		holdings := ComputeHoldings(txs, assets)
		require.Len(t, holdings, 1)
		assert.InDelta(t, 500, holdings[0].CostBasis, 1e-9) // half of the 1000 basis, fee ignored
	})

	t.Run("buys only, average equals total cost over total quantity", func(t *testing.T) {
		txs := []domain.Transaction{
			{ID: 1, AssetID: 1, Type: domain.TradeBuy, Quantity: 3, UnitPrice: 10, Fees: 0.5, Date: day(t, "2024-01-01")},
			{ID: 2, AssetID: 1, Type: domain.TradeBuy, Quantity: 7, UnitPrice: 12, Fees: 0.5, Date: day(t, "2024-01-02")},
			{ID: 3, AssetID: 1, Type: domain.TradeBuy, Quantity: 5, UnitPrice: 9, Fees: 1, Date: day(t, "2024-01-03")},
		}
		holdings := ComputeHoldings(txs, assets)
		require.Len(t, holdings, 1)

		totalCost := 3*10.0 + 0.5 + 7*12.0 + 0.5 + 5*9.0 + 1
		totalQty := 15.0
		assert.InDelta(t, totalCost, holdings[0].CostBasis, 1e-6)
		assert.InDelta(t, totalCost/totalQty, holdings[0].AvgUnitCost, 1e-2)
	})
}

func TestComputeHoldings_Clamping(t *testing.T) {
	assets := []domain.Asset{etfAsset()}

	t.Run("only sells never yields a negative position", func(t *testing.T) {
		txs := []domain.Transaction{
			{ID: 1, AssetID: 1, Type: domain.TradeSell, Quantity: 10, UnitPrice: 50, Date: day(t, "2024-01-10")},
		}
		holdings := ComputeHoldings(txs, assets)
		assert.Empty(t, holdings) // clamped to zero and therefore excluded
	})

	t.Run("oversell clamps to flat", func(t *testing.T) {
		txs := []domain.Transaction{
			{ID: 1, AssetID: 1, Type: domain.TradeBuy, Quantity: 5, UnitPrice: 100, Date: day(t, "2024-01-10")},
			{ID: 2, AssetID: 1, Type: domain.TradeSell, Quantity: 9, UnitPrice: 100, Date: day(t, "2024-02-10")},
		}
		holdings := ComputeHoldings(txs, assets)
		assert.Empty(t, holdings)
	})

	t.Run("fully sold position is excluded but later buys reopen it", func(t *testing.T) {
		txs := []domain.Transaction{
			{ID: 1, AssetID: 1, Type: domain.TradeBuy, Quantity: 5, UnitPrice: 100, Date: day(t, "2024-01-10")},
			{ID: 2, AssetID: 1, Type: domain.TradeSell, Quantity: 5, UnitPrice: 110, Date: day(t, "2024-02-10")},
			{ID: 3, AssetID: 1, Type: domain.TradeBuy, Quantity: 2, UnitPrice: 130, Fees: 1, Date: day(t, "2024-03-10")},
		}
		holdings := ComputeHoldings(txs, assets)
		require.Len(t, holdings, 1)
		assert.InDelta(t, 2, holdings[0].Quantity, 1e-9)
		assert.InDelta(t, 261, holdings[0].CostBasis, 1e-9) // fresh basis, 2*130+1
	})
}

func TestComputeHoldings_ReferentialGaps(t *testing.T) {
	// A trade pointing at a deleted asset is silently skipped
	txs := []domain.Transaction{
		{ID: 1, AssetID: 99, Type: domain.TradeBuy, Quantity: 10, UnitPrice: 100, Date: day(t, "2024-01-10")},
		{ID: 2, AssetID: 1, Type: domain.TradeBuy, Quantity: 4, UnitPrice: 50, Date: day(t, "2024-01-11")},
	}
	holdings := ComputeHoldings(txs, []domain.Asset{etfAsset()})
	require.Len(t, holdings, 1)
	assert.Equal(t, uint(1), holdings[0].AssetID)
}

func TestComputeHoldings_OutOfOrderInput(t *testing.T) {
	// Input order must not matter, the engine sorts chronologically itself
	assets := []domain.Asset{etfAsset()}
	txs := []domain.Transaction{
		{ID: 3, AssetID: 1, Type: domain.TradeSell, Quantity: 5, UnitPrice: 150, Date: day(t, "2024-03-10")},
		{ID: 1, AssetID: 1, Type: domain.TradeBuy, Quantity: 10, UnitPrice: 100, Fees: 1, Date: day(t, "2024-01-10")},
		{ID: 2, AssetID: 1, Type: domain.TradeBuy, Quantity: 10, UnitPrice: 120, Fees: 1, Date: day(t, "2024-02-10")},
	}
	holdings := ComputeHoldings(txs, assets)
	require.Len(t, holdings, 1)
	assert.InDelta(t, 15, holdings[0].Quantity, 1e-9)
	assert.InDelta(t, 110.1, holdings[0].AvgUnitCost, 1e-9)
}

func TestComputeOverview(t *testing.T) {
	t.Run("cash only portfolio", func(t *testing.T) {
		cash := []domain.CashMovement{
			{ID: 1, Type: domain.CashDeposit, Amount: 1000, Date: day(t, "2024-01-01")},
		}
		overview := ComputeOverview(nil, cash, nil)

		assert.InDelta(t, 1000, overview.NetCashContributed, 1e-9)
		assert.InDelta(t, 0, overview.TotalCostBasis, 1e-9)
		assert.InDelta(t, 1000, overview.CashBalance, 1e-9)
		assert.InDelta(t, 1000, overview.TotalCurrentValue, 1e-9)
		assert.Zero(t, overview.UnrealizedGainPercent) // defined as 0 when basis is 0
	})

	t.Run("contributions and basis are distinct fields", func(t *testing.T) {
		holdings := []Holding{
			{AssetID: 1, Category: domain.CategoryETF, Quantity: 10, CostBasis: 1100, CurrentValue: 1200, UnrealizedGain: 100},
		}
		cash := []domain.CashMovement{
			{ID: 1, Type: domain.CashDeposit, Amount: 2000, Date: day(t, "2024-01-01")},
			{ID: 2, Type: domain.CashWithdraw, Amount: 300, Date: day(t, "2024-02-01")},
		}
		dividends := []domain.Dividend{
			{ID: 1, AssetID: 1, Amount: 12.5, PaymentDate: day(t, "2024-03-01")},
		}
		overview := ComputeOverview(holdings, cash, dividends)

		assert.InDelta(t, 1700, overview.NetCashContributed, 1e-9) // 2000 - 300
		assert.InDelta(t, 1100, overview.TotalCostBasis, 1e-9)
		assert.InDelta(t, 600, overview.CashBalance, 1e-9)       // 1700 - 1100
		assert.InDelta(t, 1800, overview.TotalCurrentValue, 1e-9) // 1200 + 600
		assert.InDelta(t, 12.5, overview.TotalDividends, 1e-9)
		assert.InDelta(t, 100, overview.TotalUnrealizedGain, 1e-9)
		// (1800 - 1100) / 1100 * 100
		assert.InDelta(t, 63.64, overview.UnrealizedGainPercent, 1e-2)
	})

	t.Run("empty portfolio is all zeros", func(t *testing.T) {
		overview := ComputeOverview(nil, nil, nil)
		assert.Zero(t, overview.TotalCurrentValue)
		assert.Zero(t, overview.UnrealizedGainPercent)
	})
}

func TestComputeAllocation(t *testing.T) {
	t.Run("percentages come from unrounded sums", func(t *testing.T) {
		// Three equal categories: each exactly one third
		holdings := []Holding{
			{AssetID: 1, Category: domain.CategoryStock, Quantity: 1, LatestPrice: 100, CurrentValue: 100},
			{AssetID: 2, Category: domain.CategoryETF, Quantity: 1, LatestPrice: 100, CurrentValue: 100},
			{AssetID: 3, Category: domain.CategoryCrypto, Quantity: 1, LatestPrice: 100, CurrentValue: 100},
		}
		allocation := ComputeAllocation(holdings)
		require.Len(t, allocation, 3)

		var sum float64
		for _, slice := range allocation {
			assert.GreaterOrEqual(t, slice.Percentage, 0.0)
			assert.LessOrEqual(t, slice.Percentage, 100.0)
			assert.InDelta(t, 33.33, slice.Percentage, 1e-9) // rounded half-up for display
			sum += slice.Percentage
		}
		// Independently rounded slices need not sum to exactly 100
		assert.InDelta(t, 99.99, sum, 1e-9)
	})

	t.Run("same category holdings are grouped", func(t *testing.T) {
		holdings := []Holding{
			{AssetID: 1, Category: domain.CategoryETF, Quantity: 3, LatestPrice: 100, CurrentValue: 300},
			{AssetID: 2, Category: domain.CategoryETF, Quantity: 1, LatestPrice: 100, CurrentValue: 100},
			{AssetID: 3, Category: domain.CategoryStock, Quantity: 6, LatestPrice: 100, CurrentValue: 600},
		}
		allocation := ComputeAllocation(holdings)
		require.Len(t, allocation, 2)

		// Largest slice first
		assert.Equal(t, domain.CategoryStock, allocation[0].Category)
		assert.InDelta(t, 60, allocation[0].Percentage, 1e-9)
		assert.Equal(t, domain.CategoryETF, allocation[1].Category)
		assert.InDelta(t, 40, allocation[1].Percentage, 1e-9)
	})

	t.Run("zero value categories are omitted", func(t *testing.T) {
		holdings := []Holding{
			{AssetID: 1, Category: domain.CategoryStock, Quantity: 5, LatestPrice: 100, CurrentValue: 500},
			{AssetID: 2, Category: domain.CategoryBond, Quantity: 5, LatestPrice: 0, CurrentValue: 0},
		}
		allocation := ComputeAllocation(holdings)
		require.Len(t, allocation, 1)
		assert.Equal(t, domain.CategoryStock, allocation[0].Category)
		assert.InDelta(t, 100, allocation[0].Percentage, 1e-9)
	})

	t.Run("cent rounding of holding values never skews percentages", func(t *testing.T) {
		// Raw values 0.335 and 0.332 display as 0.34 and 0.33; percentages
		// from the displayed cents would be 50.75/49.25 instead of the true
		// 50.22/49.78, so the slices must be derived from quantity x price
		holdings := []Holding{
			{AssetID: 1, Category: domain.CategoryStock, Quantity: 1, LatestPrice: 0.335, CurrentValue: 0.34},
			{AssetID: 2, Category: domain.CategoryETF, Quantity: 1, LatestPrice: 0.332, CurrentValue: 0.33},
		}
		allocation := ComputeAllocation(holdings)
		require.Len(t, allocation, 2)

		assert.Equal(t, domain.CategoryStock, allocation[0].Category)
		assert.InDelta(t, 50.22, allocation[0].Percentage, 1e-9) // 0.335/0.667
		assert.Equal(t, domain.CategoryETF, allocation[1].Category)
		assert.InDelta(t, 49.78, allocation[1].Percentage, 1e-9)
	})

	t.Run("no holdings means no slices", func(t *testing.T) {
		assert.Empty(t, ComputeAllocation(nil))
	})
}

func TestComputeHistory(t *testing.T) {
	txs := []domain.Transaction{
		{ID: 3, AssetID: 1, Type: domain.TradeBuy, Quantity: 2, UnitPrice: 50, Fees: 1, Date: day(t, "2024-02-01")},
		{ID: 1, AssetID: 1, Type: domain.TradeBuy, Quantity: 1, UnitPrice: 40, Date: day(t, "2024-01-01")},
	}
	dividends := []domain.Dividend{
		{ID: 2, AssetID: 1, Amount: 5, PaymentDate: day(t, "2024-02-01"), Notes: "quarterly"},
	}
	cash := []domain.CashMovement{
		{ID: 1, Type: domain.CashDeposit, Amount: 500, Date: day(t, "2023-12-01")},
	}

	t.Run("events are merged in date order, id breaks ties", func(t *testing.T) {
		history := ComputeHistory(txs, dividends, cash)
		require.Len(t, history, 4)

		assert.Equal(t, EventCash, history[0].Kind) // 2023-12-01
		assert.Equal(t, EventTransaction, history[1].Kind)
		assert.Equal(t, uint(1), history[1].ID) // 2024-01-01
		// Same date: dividend id 2 before transaction id 3
		assert.Equal(t, EventDividend, history[2].Kind)
		assert.Equal(t, uint(2), history[2].ID)
		assert.Equal(t, EventTransaction, history[3].Kind)
		assert.Equal(t, uint(3), history[3].ID)
	})

	t.Run("repeated calls produce the same sequence", func(t *testing.T) {
		first := ComputeHistory(txs, dividends, cash)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, ComputeHistory(txs, dividends, cash))
		}
	})

	t.Run("trade amounts carry fees with the right sign", func(t *testing.T) {
		history := ComputeHistory([]domain.Transaction{
			{ID: 1, AssetID: 1, Type: domain.TradeBuy, Quantity: 2, UnitPrice: 50, Fees: 1, Date: day(t, "2024-01-01")},
			{ID: 2, AssetID: 1, Type: domain.TradeSell, Quantity: 2, UnitPrice: 60, Fees: 1, Date: day(t, "2024-02-01")},
		}, nil, nil)
		require.Len(t, history, 2)
		assert.InDelta(t, 101, history[0].Amount, 1e-9) // buy cost includes fees
		assert.InDelta(t, 119, history[1].Amount, 1e-9) // sell proceeds net of fees
	})
}

func TestUnsoldQuantity(t *testing.T) {
	txs := []domain.Transaction{
		{ID: 1, AssetID: 1, Type: domain.TradeBuy, Quantity: 10, UnitPrice: 100, Date: day(t, "2024-01-10")},
		{ID: 2, AssetID: 1, Type: domain.TradeSell, Quantity: 4, UnitPrice: 110, Date: day(t, "2024-02-10")},
		{ID: 3, AssetID: 2, Type: domain.TradeBuy, Quantity: 99, UnitPrice: 1, Date: day(t, "2024-01-01")},
	}

	// Trades after the cutoff and trades of other assets do not count
	assert.InDelta(t, 10, UnsoldQuantity(txs, 1, day(t, "2024-01-31")), 1e-9)
	assert.InDelta(t, 6, UnsoldQuantity(txs, 1, day(t, "2024-12-31")), 1e-9)
	assert.InDelta(t, 0, UnsoldQuantity(txs, 1, day(t, "2023-12-31")), 1e-9)
}
