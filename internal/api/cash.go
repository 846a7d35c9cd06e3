package api

import (
	"net/http" // HTTP status codes

	"github.com/AleRigon22/InvestmentDashboard-sub001/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// CashMovementRequest represents a deposit/withdrawal create/update payload
type CashMovementRequest struct {
	Type   string  `json:"type" binding:"required,oneof=deposit withdraw"` // Movement type
	Amount float64 `json:"amount" binding:"required,gt=0"`                 // Amount moved
	Date   string  `json:"date" binding:"required"`                        // Movement date, YYYY-MM-DD
}

// CreateCashMovementHandler records a capital deposit or withdrawal
func CreateCashMovementHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := mustUserID(c) // Get userID from context
		if !ok {
			return
		}
		var req CashMovementRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Parse the movement date
		date, err := parseDate(req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		// Build and persist the movement
		movement := domain.CashMovement{
			UserID: userID,     // Owner
			Type:   req.Type,   // deposit or withdraw
			Amount: req.Amount, // Amount moved
			Date:   date,       // Movement date
		}
		if err := db.Create(&movement).Error; err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // User ID
				"type":    req.Type,    // Movement type
				"amount":  req.Amount,  // Amount moved
				"error":   err.Error(), // Error message
			}).Error("Failed to create cash movement")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create cash movement"})
			return
		}
		// Log the recorded movement
		logrus.WithFields(logrus.Fields{
			"user_id": userID,     // User ID
			"type":    req.Type,   // Movement type
			"amount":  req.Amount, // Amount moved
		}).Info("Cash movement recorded")
		invalidatePortfolio(c, userID) // Contributions feed the overview
		c.JSON(http.StatusCreated, gin.H{"cash_movement": movement})
	}
}

// ListCashMovementsHandler returns the user's cash movements, newest first
func ListCashMovementsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := mustUserID(c) // Get userID from context
		if !ok {
			return
		}
		var movements []domain.CashMovement // Slice to hold movements
		if err := db.Where("user_id = ?", userID).Order("date desc, id desc").Find(&movements).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cash movements"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cash_movements": movements}) // Return movement list
	}
}

// GetCashMovementHandler returns a single cash movement owned by the user
func GetCashMovementHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := mustUserID(c) // Get userID from context
		if !ok {
			return
		}
		var movement domain.CashMovement // Movement struct to hold data
		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&movement).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cash movement not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cash_movement": movement})
	}
}

// UpdateCashMovementHandler replaces a cash movement (full-record replace)
func UpdateCashMovementHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := mustUserID(c) // Get userID from context
		if !ok {
			return
		}
		var req CashMovementRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Parse the movement date
		date, err := parseDate(req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		var movement domain.CashMovement // Fetch the owned movement
		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&movement).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cash movement not found"})
			return
		}
		// Replace the record's fields
		movement.Type = req.Type
		movement.Amount = req.Amount
		movement.Date = date
		if err := db.Save(&movement).Error; err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id":     userID,      // User ID
				"movement_id": movement.ID, // Cash movement ID
				"error":       err.Error(), // Error message
			}).Error("Failed to update cash movement")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cash movement"})
			return
		}
		// Log the update
		logrus.WithFields(logrus.Fields{
			"user_id":     userID,          // User ID
			"movement_id": movement.ID,     // Cash movement ID
			"type":        movement.Type,   // Movement type
			"amount":      movement.Amount, // Amount moved
		}).Info("Cash movement updated")
		invalidatePortfolio(c, userID) // Contributions feed the overview
		c.JSON(http.StatusOK, gin.H{"cash_movement": movement})
	}
}

// DeleteCashMovementHandler deletes a cash movement owned by the user
func DeleteCashMovementHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := mustUserID(c) // Get userID from context
		if !ok {
			return
		}
		var movement domain.CashMovement // Fetch the owned movement
		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&movement).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cash movement not found"})
			return
		}
		if err := db.Delete(&movement).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete cash movement"})
			return
		}
		// Log the deletion
		logrus.WithFields(logrus.Fields{
			"user_id":     userID,      // User ID
			"movement_id": movement.ID, // Cash movement ID
		}).Info("Cash movement deleted")
		invalidatePortfolio(c, userID) // Contributions feed the overview
		c.JSON(http.StatusOK, gin.H{"message": "Cash movement deleted"})
	}
}
