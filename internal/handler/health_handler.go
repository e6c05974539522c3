package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/retailops/pricing-api/internal/cache"
	"github.com/retailops/pricing-api/internal/pricing"
	"github.com/retailops/pricing-api/internal/utils"
)

var startTime = time.Now()

// HealthHandler provides the health endpoint.
type HealthHandler struct {
	db      *sqlx.DB
	redis   *cache.RedisClient
	catalog *pricing.SnapshotCatalog
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sqlx.DB, redis *cache.RedisClient, catalog *pricing.SnapshotCatalog) *HealthHandler {
	return &HealthHandler{db: db, redis: redis, catalog: catalog}
}

// GetHealth responds with service, database, and cache status.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	dbStatus := "connected"
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		dbStatus = "disconnected"
	}

	redisStatus := "connected"
	if _, err := h.redis.Exists(c.Request.Context(), "health:probe"); err != nil {
		redisStatus = "disconnected"
	}

	utils.Success(c, 200, "Service is healthy", gin.H{
		"status":  "healthy",
		"version": "1.0.0",
		"uptime":  int(time.Since(startTime).Seconds()),
		"database": gin.H{
			"status": dbStatus,
		},
		"cache": gin.H{
			"status": redisStatus,
		},
		"catalog": gin.H{
			"version": h.catalog.Version(),
			"tiers":   len(h.catalog.ActiveTiers()),
		},
	})
}
