package api

import (
	"net/http" // HTTP status codes
	"time"     // Trade dates

	"github.com/AleRigon22/InvestmentDashboard-sub001/internal/domain"    // Importing domain models
	"github.com/AleRigon22/InvestmentDashboard-sub001/internal/valuation" // Valuation engine

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// TransactionRequest represents a trade create/update payload
type TransactionRequest struct {
	AssetID   uint    `json:"asset_id" binding:"required"`            // Traded asset
	Type      string  `json:"type" binding:"required,oneof=buy sell"` // buy or sell
	Quantity  float64 `json:"quantity" binding:"required,gt=0"`       // Units traded
	UnitPrice float64 `json:"unit_price" binding:"required,gt=0"`     // Price per unit
	Fees      float64 `json:"fees" binding:"gte=0"`                   // Broker fees
	Date      string  `json:"date" binding:"required"`                // Trade date, YYYY-MM-DD
}

// checkOversell rejects a sell whose quantity exceeds the asset's cumulative
// unsold quantity as of the sell date. Only active when strict sell validation
// is configured; the default policy clamps at display instead. excludeID
// ignores the record being replaced during an update.
func checkOversell(db *gorm.DB, userID, assetID uint, quantity float64, date time.Time, excludeID uint) (bool, error) {
	var txs []domain.Transaction // All of the user's trades for the asset
	if err := db.Where("user_id = ? AND asset_id = ?", userID, assetID).Find(&txs).Error; err != nil {
		return false, err
	}
	// Drop the record being edited from the running total
	if excludeID != 0 {
		filtered := txs[:0]
		for _, tx := range txs {
			if tx.ID != excludeID {
				filtered = append(filtered, tx)
			}
		}
		txs = filtered
	}
	return quantity <= valuation.UnsoldQuantity(txs, assetID, date), nil
}

// CreateTransactionHandler records a buy or sell for an owned asset
func CreateTransactionHandler(db *gorm.DB, strictSell bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := mustUserID(c) // Get userID from context
		if !ok {
			return
		}
		var req TransactionRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Parse the trade date
		date, err := parseDate(req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		var asset domain.Asset // The referenced asset must exist and be owned
		if err := db.Where("id = ? AND user_id = ?", req.AssetID, userID).First(&asset).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
			return
		}
		// Oversell policy: reject at the store boundary when configured strict
		if strictSell && req.Type == domain.TradeSell {
			allowed, err := checkOversell(db, userID, req.AssetID, req.Quantity, date, 0)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate sell"})
				return
			}
			if !allowed {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Sell quantity exceeds held quantity"})
				return
			}
		}
		// Build and persist the transaction
		transaction := domain.Transaction{
			UserID:    userID,        // Owner
			AssetID:   req.AssetID,   // Traded asset
			Type:      req.Type,      // buy or sell
			Quantity:  req.Quantity,  // Units traded
			UnitPrice: req.UnitPrice, // Price per unit
			Fees:      req.Fees,      // Broker fees
			Date:      date,          // Trade date
		}
		if err := db.Create(&transaction).Error; err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id":  userID,      // User ID
				"asset_id": req.AssetID, // Asset ID
				"error":    err.Error(), // Error message
			}).Error("Failed to create transaction")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
			return
		}
		// Log the recorded trade
		logrus.WithFields(logrus.Fields{
			"user_id":    userID,        // User ID
			"asset_id":   req.AssetID,   // Asset ID
			"type":       req.Type,      // buy or sell
			"quantity":   req.Quantity,  // Units traded
			"unit_price": req.UnitPrice, // Price per unit
		}).Info("Transaction recorded")
		invalidatePortfolio(c, userID) // Holdings change on every trade
		c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
	}
}

// ListTransactionsHandler returns the user's trades, newest first
func ListTransactionsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := mustUserID(c) // Get userID from context
		if !ok {
			return
		}
		var transactions []domain.Transaction // Slice to hold trades
		if err := db.Where("user_id = ?", userID).Order("date desc, id desc").Find(&transactions).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"transactions": transactions}) // Return trade list
	}
}

// GetTransactionHandler returns a single trade owned by the authenticated user
func GetTransactionHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := mustUserID(c) // Get userID from context
		if !ok {
			return
		}
		var transaction domain.Transaction // Transaction struct to hold data
		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&transaction).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"transaction": transaction})
	}
}

// UpdateTransactionHandler replaces a trade record (full-record replace)
func UpdateTransactionHandler(db *gorm.DB, strictSell bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := mustUserID(c) // Get userID from context
		if !ok {
			return
		}
		var req TransactionRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Parse the trade date
		date, err := parseDate(req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		var transaction domain.Transaction // Fetch the owned trade
		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&transaction).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		var asset domain.Asset // The referenced asset must exist and be owned
		if err := db.Where("id = ? AND user_id = ?", req.AssetID, userID).First(&asset).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
			return
		}
		// Oversell policy: the replaced record does not count toward the total
		if strictSell && req.Type == domain.TradeSell {
			allowed, err := checkOversell(db, userID, req.AssetID, req.Quantity, date, transaction.ID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate sell"})
				return
			}
			if !allowed {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Sell quantity exceeds held quantity"})
				return
			}
		}
		// Replace the record's fields
		transaction.AssetID = req.AssetID
		transaction.Type = req.Type
		transaction.Quantity = req.Quantity
		transaction.UnitPrice = req.UnitPrice
		transaction.Fees = req.Fees
		transaction.Date = date
		if err := db.Save(&transaction).Error; err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id":        userID,         // User ID
				"transaction_id": transaction.ID, // Transaction ID
				"error":          err.Error(),    // Error message
			}).Error("Failed to update transaction")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction"})
			return
		}
		// Log the update
		logrus.WithFields(logrus.Fields{
			"user_id":        userID,         // User ID
			"transaction_id": transaction.ID, // Transaction ID
			"type":           transaction.Type,
			"quantity":       transaction.Quantity,
		}).Info("Transaction updated")
		invalidatePortfolio(c, userID) // Holdings change on every edit
		c.JSON(http.StatusOK, gin.H{"transaction": transaction})
	}
}

// DeleteTransactionHandler deletes a trade owned by the authenticated user
func DeleteTransactionHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := mustUserID(c) // Get userID from context
		if !ok {
			return
		}
		var transaction domain.Transaction // Fetch the owned trade
		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&transaction).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		if err := db.Delete(&transaction).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction"})
			return
		}
		// Log the deletion
		logrus.WithFields(logrus.Fields{
			"user_id":        userID,         // User ID
			"transaction_id": transaction.ID, // Transaction ID
		}).Info("Transaction deleted")
		invalidatePortfolio(c, userID) // Holdings change on every delete
		c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
	}
}
