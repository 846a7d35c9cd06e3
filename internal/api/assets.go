package api

import (
	"net/http" // HTTP status codes

	"github.com/AleRigon22/InvestmentDashboard-sub001/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// AssetRequest represents an asset create/update payload
type AssetRequest struct {
	Ticker   string `json:"ticker" binding:"required"`   // Ticker symbol
	Name     string `json:"name" binding:"required"`     // Display name
	Category string `json:"category" binding:"required"` // Asset category
}

// CreateAssetHandler creates an asset owned by the authenticated user
func CreateAssetHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := mustUserID(c) // Get userID from context
		if !ok {
			return
		}
		var req AssetRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate category against the supported set
		if !domain.IsValidCategory(req.Category) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
			return
		}
		// Build and persist the asset
		asset := domain.Asset{
			UserID:   userID,       // Owner
			Ticker:   req.Ticker,   // Ticker symbol
			Name:     req.Name,     // Display name
			Category: req.Category, // Category
		}
		if err := db.Create(&asset).Error; err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // User ID
				"ticker":  req.Ticker,  // Ticker symbol
				"error":   err.Error(), // Error message
			}).Error("Failed to create asset")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create asset"})
			return
		}
		invalidatePortfolio(c, userID) // Aggregates may change once trades reference it
		// Return the created asset
		c.JSON(http.StatusCreated, gin.H{"asset": asset})
	}
}

// ListAssetsHandler returns all assets owned by the authenticated user
func ListAssetsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := mustUserID(c) // Get userID from context
		if !ok {
			return
		}
		var assets []domain.Asset // Slice to hold assets
		if err := db.Where("user_id = ?", userID).Order("id asc").Find(&assets).Error; err != nil {
			// If fetching fails, return error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assets"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"assets": assets}) // Return asset list
	}
}

// GetAssetHandler returns a single asset owned by the authenticated user
func GetAssetHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := mustUserID(c) // Get userID from context
		if !ok {
			return
		}
		var asset domain.Asset // Asset struct to hold data
		// Ownership is part of the lookup, cross-user ids read as missing
		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&asset).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"asset": asset}) // Return the asset
	}
}

// UpdateAssetHandler replaces an asset's editable fields (full-record replace)
func UpdateAssetHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := mustUserID(c) // Get userID from context
		if !ok {
			return
		}
		var req AssetRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate category against the supported set
		if !domain.IsValidCategory(req.Category) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
			return
		}
		var asset domain.Asset // Fetch the owned asset
		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&asset).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
			return
		}
		// Replace editable fields
		asset.Ticker = req.Ticker
		asset.Name = req.Name
		asset.Category = req.Category
		if err := db.Save(&asset).Error; err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id":  userID,      // User ID
				"asset_id": asset.ID,    // Asset ID
				"error":    err.Error(), // Error message
			}).Error("Failed to update asset")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update asset"})
			return
		}
		// Log the update
		logrus.WithFields(logrus.Fields{
			"user_id":  userID,   // User ID
			"asset_id": asset.ID, // Asset ID
			"ticker":   asset.Ticker,
		}).Info("Asset updated")
		invalidatePortfolio(c, userID) // Category changes shift allocation
		c.JSON(http.StatusOK, gin.H{"asset": asset})
	}
}

// DeleteAssetHandler deletes an asset and, via cascade, its trades and dividends
func DeleteAssetHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := mustUserID(c) // Get userID from context
		if !ok {
			return
		}
		var asset domain.Asset // Fetch the owned asset
		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&asset).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
			return
		}
		// Hard delete, cascading to dependent records
		err := db.Transaction(func(tx *gorm.DB) error {
			// Remove dependent rows first, the DB-level cascade is a backstop
			if err := tx.Where("asset_id = ?", asset.ID).Delete(&domain.Transaction{}).Error; err != nil {
				return err // Return error to rollback
			}
			if err := tx.Where("asset_id = ?", asset.ID).Delete(&domain.Dividend{}).Error; err != nil {
				return err // Return error to rollback
			}
			return tx.Delete(&asset).Error
		})
		if err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id":  userID,      // User ID
				"asset_id": asset.ID,    // Asset ID
				"error":    err.Error(), // Error message
			}).Error("Failed to delete asset")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete asset"})
			return
		}
		// Log successful deletion
		logrus.WithFields(logrus.Fields{
			"user_id":  userID,   // User ID
			"asset_id": asset.ID, // Asset ID
			"ticker":   asset.Ticker,
		}).Info("Asset deleted")
		invalidatePortfolio(c, userID) // Holdings no longer include the asset
		c.JSON(http.StatusOK, gin.H{"message": "Asset deleted"})
	}
}
