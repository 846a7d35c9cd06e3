package api

import (
	"net/http" // HTTP status codes

	"github.com/AleRigon22/InvestmentDashboard-sub001/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// DividendRequest represents a dividend create/update payload
type DividendRequest struct {
	AssetID     uint    `json:"asset_id" binding:"required"`     // Paying asset
	PaymentDate string  `json:"payment_date" binding:"required"` // Payment date, YYYY-MM-DD
	Amount      float64 `json:"amount" binding:"required,gt=0"`  // Cash amount received
	Notes       string  `json:"notes"`                           // Free-form notes
}

// CreateDividendHandler records a dividend payment for an owned asset
func CreateDividendHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := mustUserID(c) // Get userID from context
		if !ok {
			return
		}
		var req DividendRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Parse the payment date
		date, err := parseDate(req.PaymentDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		var asset domain.Asset // The referenced asset must exist and be owned
		if err := db.Where("id = ? AND user_id = ?", req.AssetID, userID).First(&asset).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
			return
		}
		// Build and persist the dividend
		dividend := domain.Dividend{
			UserID:      userID,      // Owner
			AssetID:     req.AssetID, // Paying asset
			PaymentDate: date,        // Payment date
			Amount:      req.Amount,  // Cash amount
			Notes:       req.Notes,   // Notes
		}
		if err := db.Create(&dividend).Error; err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id":  userID,      // User ID
				"asset_id": req.AssetID, // Asset ID
				"error":    err.Error(), // Error message
			}).Error("Failed to create dividend")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create dividend"})
			return
		}
		// Log the recorded dividend
		logrus.WithFields(logrus.Fields{
			"user_id":  userID,      // User ID
			"asset_id": req.AssetID, // Asset ID
			"amount":   req.Amount,  // Cash amount
		}).Info("Dividend recorded")
		invalidatePortfolio(c, userID) // Dividend income feeds the overview
		c.JSON(http.StatusCreated, gin.H{"dividend": dividend})
	}
}

// ListDividendsHandler returns the user's dividends, newest first
func ListDividendsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := mustUserID(c) // Get userID from context
		if !ok {
			return
		}
		var dividends []domain.Dividend // Slice to hold dividends
		if err := db.Where("user_id = ?", userID).Order("payment_date desc, id desc").Find(&dividends).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dividends"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"dividends": dividends}) // Return dividend list
	}
}

// GetDividendHandler returns a single dividend owned by the authenticated user
func GetDividendHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := mustUserID(c) // Get userID from context
		if !ok {
			return
		}
		var dividend domain.Dividend // Dividend struct to hold data
		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&dividend).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Dividend not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"dividend": dividend})
	}
}

// UpdateDividendHandler replaces a dividend record (full-record replace)
func UpdateDividendHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := mustUserID(c) // Get userID from context
		if !ok {
			return
		}
		var req DividendRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Parse the payment date
		date, err := parseDate(req.PaymentDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		var dividend domain.Dividend // Fetch the owned dividend
		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&dividend).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Dividend not found"})
			return
		}
		var asset domain.Asset // The referenced asset must exist and be owned
		if err := db.Where("id = ? AND user_id = ?", req.AssetID, userID).First(&asset).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
			return
		}
		// Replace the record's fields
		dividend.AssetID = req.AssetID
		dividend.PaymentDate = date
		dividend.Amount = req.Amount
		dividend.Notes = req.Notes
		if err := db.Save(&dividend).Error; err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id":     userID,      // User ID
				"dividend_id": dividend.ID, // Dividend ID
				"error":       err.Error(), // Error message
			}).Error("Failed to update dividend")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update dividend"})
			return
		}
		// Log the update
		logrus.WithFields(logrus.Fields{
			"user_id":     userID,          // User ID
			"dividend_id": dividend.ID,     // Dividend ID
			"amount":      dividend.Amount, // Cash amount
		}).Info("Dividend updated")
		invalidatePortfolio(c, userID) // Dividend income feeds the overview
		c.JSON(http.StatusOK, gin.H{"dividend": dividend})
	}
}

// DeleteDividendHandler deletes a dividend owned by the authenticated user
func DeleteDividendHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := mustUserID(c) // Get userID from context
		if !ok {
			return
		}
		var dividend domain.Dividend // Fetch the owned dividend
		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&dividend).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Dividend not found"})
			return
		}
		if err := db.Delete(&dividend).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete dividend"})
			return
		}
		// Log the deletion
		logrus.WithFields(logrus.Fields{
			"user_id":     userID,      // User ID
			"dividend_id": dividend.ID, // Dividend ID
		}).Info("Dividend deleted")
		invalidatePortfolio(c, userID) // Dividend income feeds the overview
		c.JSON(http.StatusOK, gin.H{"message": "Dividend deleted"})
	}
}
