package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"github.com/AleRigon22/InvestmentDashboard-sub001/internal/api"        // Custom package for API handlers
	"github.com/AleRigon22/InvestmentDashboard-sub001/internal/config"     // Custom package for configuration
	"github.com/AleRigon22/InvestmentDashboard-sub001/internal/middleware" // Custom package for middleware

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Auth routes
	r.POST("/user", api.RegisterHandler(db))            // Registration endpoint
	r.GET("/user", api.LoginHandler(db, cfg.JWTSecret)) // Login endpoint

	// Everything below requires a valid token; the Redis client rides along
	// in the context so mutating handlers can invalidate cached aggregates
	authed := r.Group("")
	authed.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), func(c *gin.Context) {
		c.Set("redisClient", redisClient)
		c.Next()
	})

	// Asset routes
	assetGroup := authed.Group("/assets")
	assetGroup.POST("", api.CreateAssetHandler(db))       // Create asset endpoint
	assetGroup.GET("", api.ListAssetsHandler(db))         // List assets endpoint
	assetGroup.GET("/:id", api.GetAssetHandler(db))       // Get asset endpoint
	assetGroup.PUT("/:id", api.UpdateAssetHandler(db))    // Update asset endpoint
	assetGroup.DELETE("/:id", api.DeleteAssetHandler(db)) // Delete asset endpoint

	// Transaction routes
	txGroup := authed.Group("/transactions")
	txGroup.POST("", api.CreateTransactionHandler(db, cfg.StrictSell))    // Create transaction endpoint
	txGroup.GET("", api.ListTransactionsHandler(db))                      // List transactions endpoint
	txGroup.GET("/:id", api.GetTransactionHandler(db))                    // Get transaction endpoint
	txGroup.PUT("/:id", api.UpdateTransactionHandler(db, cfg.StrictSell)) // Update transaction endpoint
	txGroup.DELETE("/:id", api.DeleteTransactionHandler(db))              // Delete transaction endpoint

	// Dividend routes
	divGroup := authed.Group("/dividends")
	divGroup.POST("", api.CreateDividendHandler(db))       // Create dividend endpoint
	divGroup.GET("", api.ListDividendsHandler(db))         // List dividends endpoint
	divGroup.GET("/:id", api.GetDividendHandler(db))       // Get dividend endpoint
	divGroup.PUT("/:id", api.UpdateDividendHandler(db))    // Update dividend endpoint
	divGroup.DELETE("/:id", api.DeleteDividendHandler(db)) // Delete dividend endpoint

	// Cash movement routes
	cashGroup := authed.Group("/cash")
	cashGroup.POST("", api.CreateCashMovementHandler(db))       // Create cash movement endpoint
	cashGroup.GET("", api.ListCashMovementsHandler(db))         // List cash movements endpoint
	cashGroup.GET("/:id", api.GetCashMovementHandler(db))       // Get cash movement endpoint
	cashGroup.PUT("/:id", api.UpdateCashMovementHandler(db))    // Update cash movement endpoint
	cashGroup.DELETE("/:id", api.DeleteCashMovementHandler(db)) // Delete cash movement endpoint

	// Portfolio routes (computed aggregates)
	portfolioGroup := authed.Group("/portfolio")
	portfolioGroup.GET("/overview", api.OverviewHandler(db, redisClient))     // Dashboard overview endpoint
	portfolioGroup.GET("/holdings", api.HoldingsHandler(db, redisClient))     // Holdings endpoint
	portfolioGroup.GET("/allocation", api.AllocationHandler(db, redisClient)) // Allocation endpoint
	portfolioGroup.GET("/history", api.HistoryHandler(db, redisClient))       // History timeline endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
