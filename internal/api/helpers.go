package api

import (
	"context" // Context for Redis operations
	"net/http"
	"time" // Date parsing

	"github.com/AleRigon22/InvestmentDashboard-sub001/internal/utils" // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// dateLayout is the wire format for all user-entered dates
const dateLayout = "2006-01-02"

// currentUserID extracts the authenticated user's id placed in the context by
// the JWT middleware. The current user is always explicit request context,
// never ambient state.
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("userID") // Get userID from context
	if !exists {
		return 0, false // Middleware did not run
	}
	id, ok := v.(uint)
	return id, ok
}

// mustUserID aborts with 401 when no authenticated user is in the context
func mustUserID(c *gin.Context) (uint, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return userID, ok
}

// contextRedis returns the Redis client injected by the route group, if any
func contextRedis(c *gin.Context) (*redis.Client, bool) {
	v, exists := c.Get("redisClient")
	if !exists {
		return nil, false
	}
	rdb, ok := v.(*redis.Client)
	return rdb, ok && rdb != nil
}

// invalidatePortfolio drops the user's cached portfolio views after a mutation
func invalidatePortfolio(c *gin.Context, userID uint) {
	if rdb, ok := contextRedis(c); ok {
		utils.InvalidatePortfolioCache(context.Background(), rdb, userID) // Best-effort invalidation
	}
}

// parseDate parses a YYYY-MM-DD date string
func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
