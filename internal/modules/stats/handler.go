package stats

import (
	"time"

	"github.com/blognoitro/core/internal/modules/identity"
	"github.com/blognoitro/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc      *Service
	identity *identity.Service
	logger   *zap.Logger
}

func NewHandler(svc *Service, identitySvc *identity.Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, identity: identitySvc, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats", h.overview)
}

type topPostResponse struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Category  string            `json:"category"`
	Author    identity.Identity `json:"author"`
	Likes     int               `json:"likes"`
	Views     int               `json:"views"`
	CreatedAt time.Time         `json:"createdAt"`
}

// overview GET /stats
func (h *Handler) overview(c *gin.Context) {
	ov, err := h.svc.Overview()
	if err != nil {
		h.logger.Error("stats overview failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	top := make([]topPostResponse, len(ov.TopPosts))
	for i, p := range ov.TopPosts {
		top[i] = topPostResponse{
			ID:        p.ID,
			Title:     p.Title,
			Category:  p.Category,
			Author:    h.identity.Resolve(c.Request.Context(), p.AuthorID),
			Likes:     p.Likes,
			Views:     p.Views,
			CreatedAt: p.CreatedAt,
		}
	}

	response.OK(c, gin.H{
		"stats": gin.H{
			"totals":          ov.Totals,
			"postsByCategory": ov.PostsByCategory,
			"recentActivity":  ov.RecentActivity,
			"topPosts":        top,
		},
	})
}
