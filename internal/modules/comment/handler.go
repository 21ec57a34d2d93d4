package comment

import (
	"errors"

	"github.com/blognoitro/core/internal/middleware"
	"github.com/blognoitro/core/internal/modules/identity"
	"github.com/blognoitro/core/internal/pkg/pagination"
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
	comments := rg.Group("/comments")
	comments.GET("", h.list)
	comments.POST("", h.create)
}

// list GET /comments?postId=&page=&limit=
func (h *Handler) list(c *gin.Context) {
	postID := c.Query("postId")
	if postID == "" {
		response.BadRequest(c, "Thiếu postId")
		return
	}

	q := pagination.FromContext(c)
	comments, pag, err := h.svc.ListByPost(postID, q)
	if err != nil {
		h.logger.Error("list comments failed", zap.String("postId", postID), zap.Error(err))
		response.InternalError(c)
		return
	}

	authors := make(map[string]identity.Identity, len(comments))
	items := make([]commentResponse, len(comments))
	for i, m := range comments {
		author, ok := authors[m.AuthorID]
		if !ok {
			author = h.identity.Resolve(c.Request.Context(), m.AuthorID)
			authors[m.AuthorID] = author
		}
		items[i] = toResponse(&m, author)
	}

	response.OK(c, gin.H{
		"comments":   items,
		"pagination": pag,
	})
}

// create POST /comments
func (h *Handler) create(c *gin.Context) {
	var dto CreateCommentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	authorID, err := middleware.ResolveAuthorID(c, dto.AuthorID)
	if err != nil {
		response.Forbidden(c, "")
		return
	}

	m, err := h.svc.Create(&dto, authorID)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			response.BadRequest(c, "Thiếu thông tin bắt buộc: postId, content, authorId")
		case errors.Is(err, ErrPostNotFound):
			response.NotFound(c, "Không tìm thấy bài viết")
		default:
			h.logger.Error("create comment failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	// only a validated, stored comment may create its author row
	author := h.identity.Ensure(c.Request.Context(), authorID, dto.Nickname, dto.Avatar)

	response.Created(c, gin.H{
		"message": "Bình luận đã được đăng!",
		"comment": toResponse(m, author),
	})
}
