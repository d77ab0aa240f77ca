package handler

import (
	"context"
	"net/http"
	"simhealth/internal/middleware"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HealthChecker interface {
	Health(ctx context.Context) error
}

// SystemHandler serves the banner, health probe and caller identity routes.
type SystemHandler struct {
	db      HealthChecker
	version string
}

func NewSystemHandler(db HealthChecker, version string) *SystemHandler {
	return &SystemHandler{db: db, version: version}
}

func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "SIMHEALTH API",
		"version": h.version,
		"status":  "running",
	})
}

func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Health(ctx); err != nil {
		middleware.RequestLogger(c).Warn("Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"database":  "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Protected echoes the identity the auth middleware extracted.
func (h *SystemHandler) Protected(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Access granted",
		"uid":     middleware.CallerUID(c),
		"role":    middleware.CallerRole(c),
	})
}
