package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"terra-farm/internal/cache"
)

// HealthHandler reports service liveness and cache reachability
type HealthHandler struct {
	cache  cache.Cache
	logger *zap.Logger
}

// NewHealthHandler creates a new handler
func NewHealthHandler(c cache.Cache, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		cache:  c,
		logger: logger,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.cache.Ping(c.Request.Context()); err != nil {
		h.logger.Error("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	size, err := h.cache.Size(c.Request.Context())
	if err != nil {
		h.logger.Warn("failed to get cache size", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"cache_size": size,
		"timestamp":  time.Now(),
	})
}
