package reaction

import (
	"errors"

	"github.com/blognoitro/core/internal/middleware"
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
	reactions := rg.Group("/reactions")
	reactions.GET("", h.status)
	reactions.POST("", h.toggle)
}

// toggleDTO is the payload for toggling a reaction.
type toggleDTO struct {
	PostID   string `json:"postId"`
	AuthorID string `json:"authorId"`
	Type     string `json:"type"`
}

// status GET /reactions?postId=&userId=
func (h *Handler) status(c *gin.Context) {
	postID := c.Query("postId")
	if postID == "" {
		response.BadRequest(c, "Thiếu postId")
		return
	}

	st, err := h.svc.StatusForPost(postID, c.Query("userId"))
	if err != nil {
		h.logger.Error("reaction status failed", zap.String("postId", postID), zap.Error(err))
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"reactions": st})
}

// toggle POST /reactions
func (h *Handler) toggle(c *gin.Context) {
	var dto toggleDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	authorID, err := middleware.ResolveAuthorID(c, dto.AuthorID)
	if err != nil {
		response.Forbidden(c, "")
		return
	}

	result, err := h.svc.Toggle(dto.PostID, authorID, dto.Type)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			response.BadRequest(c, "Thiếu thông tin bắt buộc: postId, authorId")
		case errors.Is(err, ErrPostNotFound):
			response.NotFound(c, "Không tìm thấy bài viết")
		default:
			h.logger.Error("toggle reaction failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	// only a validated toggle may create its author row
	h.identity.Ensure(c.Request.Context(), authorID, "", "")

	message := "Đã bỏ thích bài viết!"
	if result.Added {
		message = "Đã thích bài viết!"
	}
	response.OK(c, gin.H{
		"message": message,
		"added":   result.Added,
		"likes":   result.Likes,
	})
}
