package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"time"     // Cache TTL

	"github.com/AleRigon22/InvestmentDashboard-sub001/internal/domain"    // Importing domain models
	"github.com/AleRigon22/InvestmentDashboard-sub001/internal/utils"     // Cache helpers
	"github.com/AleRigon22/InvestmentDashboard-sub001/internal/valuation" // Valuation engine

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// aggregateTTL is how long computed portfolio views stay cached.
// Mutations invalidate eagerly, the TTL only bounds staleness across sessions.
const aggregateTTL = 60 * time.Second

// snapshot is one user's full entity state, the engine's only input
type snapshot struct {
	Assets        []domain.Asset
	Transactions  []domain.Transaction
	Dividends     []domain.Dividend
	CashMovements []domain.CashMovement
}

// loadSnapshot reads the four collections the valuation engine consumes
func loadSnapshot(db *gorm.DB, userID uint) (snapshot, error) {
	var snap snapshot
	if err := db.Where("user_id = ?", userID).Find(&snap.Assets).Error; err != nil {
		return snap, err
	}
	if err := db.Where("user_id = ?", userID).Find(&snap.Transactions).Error; err != nil {
		return snap, err
	}
	if err := db.Where("user_id = ?", userID).Find(&snap.Dividends).Error; err != nil {
		return snap, err
	}
	if err := db.Where("user_id = ?", userID).Find(&snap.CashMovements).Error; err != nil {
		return snap, err
	}
	return snap, nil
}

// HoldingsHandler returns the user's derived holdings
func HoldingsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := mustUserID(c) // Get userID from context
		if !ok {
			return
		}
		ctx := context.Background()                           // Context for Redis operations
		cacheKey := utils.PortfolioCacheKey("holdings", userID) // Cache key for this view
		var holdings []valuation.Holding                      // Computed holdings
		found, err := utils.GetCache(ctx, rdb, cacheKey, &holdings)
		// If found in cache, return it
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"holdings": holdings, "cached": true})
			return
		}
		// Recompute from the current entity snapshot
		snap, err := loadSnapshot(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load portfolio data"})
			return
		}
		holdings = valuation.ComputeHoldings(snap.Transactions, snap.Assets)
		_ = utils.SetCache(ctx, rdb, cacheKey, holdings, aggregateTTL)  // Cache the computed view
		c.JSON(http.StatusOK, gin.H{"holdings": holdings, "cached": false}) // Return holdings
	}
}

// OverviewHandler returns the dashboard totals for the user's portfolio
func OverviewHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := mustUserID(c) // Get userID from context
		if !ok {
			return
		}
		ctx := context.Background()                           // Context for Redis operations
		cacheKey := utils.PortfolioCacheKey("overview", userID) // Cache key for this view
		var overview valuation.PortfolioOverview              // Computed overview
		found, err := utils.GetCache(ctx, rdb, cacheKey, &overview)
		// If found in cache, return it
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"overview": overview, "cached": true})
			return
		}
		// Recompute from the current entity snapshot
		snap, err := loadSnapshot(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load portfolio data"})
			return
		}
		holdings := valuation.ComputeHoldings(snap.Transactions, snap.Assets)
		overview = valuation.ComputeOverview(holdings, snap.CashMovements, snap.Dividends)
		_ = utils.SetCache(ctx, rdb, cacheKey, overview, aggregateTTL)  // Cache the computed view
		c.JSON(http.StatusOK, gin.H{"overview": overview, "cached": false}) // Return overview
	}
}

// AllocationHandler returns the category allocation of the portfolio's value
func AllocationHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := mustUserID(c) // Get userID from context
		if !ok {
			return
		}
		ctx := context.Background()                             // Context for Redis operations
		cacheKey := utils.PortfolioCacheKey("allocation", userID) // Cache key for this view
		var allocation []valuation.AllocationSlice              // Computed allocation
		found, err := utils.GetCache(ctx, rdb, cacheKey, &allocation)
		// If found in cache, return it
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"allocation": allocation, "cached": true})
			return
		}
		// Recompute from the current entity snapshot
		snap, err := loadSnapshot(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load portfolio data"})
			return
		}
		holdings := valuation.ComputeHoldings(snap.Transactions, snap.Assets)
		allocation = valuation.ComputeAllocation(holdings)
		_ = utils.SetCache(ctx, rdb, cacheKey, allocation, aggregateTTL)    // Cache the computed view
		c.JSON(http.StatusOK, gin.H{"allocation": allocation, "cached": false}) // Return allocation
	}
}

// HistoryHandler returns the merged chronological timeline of all events
func HistoryHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := mustUserID(c) // Get userID from context
		if !ok {
			return
		}
		ctx := context.Background()                            // Context for Redis operations
		cacheKey := utils.PortfolioCacheKey("history", userID) // Cache key for this view
		var history []valuation.HistoryEvent                   // Computed timeline
		found, err := utils.GetCache(ctx, rdb, cacheKey, &history)
		// If found in cache, return it
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"history": history, "cached": true})
			return
		}
		// Recompute from the current entity snapshot
		snap, err := loadSnapshot(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load portfolio data"})
			return
		}
		history = valuation.ComputeHistory(snap.Transactions, snap.Dividends, snap.CashMovements)
		_ = utils.SetCache(ctx, rdb, cacheKey, history, aggregateTTL)   // Cache the computed view
		c.JSON(http.StatusOK, gin.H{"history": history, "cached": false}) // Return timeline
	}
}
