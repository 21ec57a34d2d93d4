package health

import (
	"net/http"
	"time"

	"github.com/blognoitro/core/internal/pkg/redis"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler reports liveness of the server and its backing stores.
type Handler struct {
	db      *gorm.DB
	rc      *redis.Client
	started time.Time
}

func NewHandler(db *gorm.DB, rc *redis.Client) *Handler {
	return &Handler{db: db, rc: rc, started: time.Now()}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.check)
}

// check GET /health
// Answers 200 when every dependency responds and 503 with per-dependency
// detail otherwise.
func (h *Handler) check(c *gin.Context) {
	ctx := c.Request.Context()
	healthy := true
	deps := gin.H{}

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		healthy = false
		deps["mysql"] = gin.H{"status": "down", "error": err.Error()}
	} else {
		deps["mysql"] = gin.H{"status": "up"}
	}

	if err := h.rc.Raw().Ping(ctx).Err(); err != nil {
		healthy = false
		deps["redis"] = gin.H{"status": "down", "error": err.Error()}
	} else {
		deps["redis"] = gin.H{"status": "up"}
	}

	status := http.StatusOK
	overall := "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}

	c.JSON(status, gin.H{
		"success":      healthy,
		"status":       overall,
		"uptime":       time.Since(h.started).Round(time.Second).String(),
		"dependencies": deps,
	})
}
