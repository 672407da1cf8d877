package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/movilshop/backend/internal/interfaces/http/dto"
)

// SystemHandler handles health and readiness probes
type SystemHandler struct {
	BaseHandler
	db      *gorm.DB
	version string
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *gorm.DB, version string) *SystemHandler {
	return &SystemHandler{db: db, version: version}
}

// RegisterRoutes registers probe routes on the engine root, outside /api/v1
func (h *SystemHandler) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/health", h.Health)
	engine.GET("/ready", h.Ready)
}

// Health reports process liveness
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, gin.H{
		"status":  "ok",
		"version": h.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready reports whether the database is reachable
func (h *SystemHandler) Ready(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable,
			dto.NewErrorResponse(dto.ErrCodeInternal, "Database is not reachable"))
		return
	}
	h.Success(c, gin.H{"status": "ready"})
}
