package post

import (
	"errors"
	"strings"

	"github.com/blognoitro/core/internal/middleware"
	"github.com/blognoitro/core/internal/models"
	"github.com/blognoitro/core/internal/modules/identity"
	"github.com/blognoitro/core/internal/pkg/markdown"
	"github.com/blognoitro/core/internal/pkg/pagination"
	"github.com/blognoitro/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler handles post HTTP requests.
type Handler struct {
	svc      *Service
	identity *identity.Service
	logger   *zap.Logger
}

func NewHandler(svc *Service, identitySvc *identity.Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, identity: identitySvc, logger: logger}
}

// RegisterRoutes mounts post routes onto the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	posts := rg.Group("/posts")
	posts.GET("", h.list)
	posts.POST("", h.create)
	posts.GET("/:id", h.detail)
	posts.PUT("/:id", h.update)
	posts.DELETE("/:id", h.delete)

	rg.GET("/search", h.search)
}

// list GET /posts?category=&tag=&page=&limit=
func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)

	var lq ListQuery
	if err := c.ShouldBindQuery(&lq); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	posts, pag, err := h.svc.List(q, lq)
	if err != nil {
		h.logger.Error("list posts failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{
		"posts":      h.enrich(c, posts),
		"pagination": pag,
	})
}

// search GET /search?q=&category=&tag=&author=&page=&limit=
func (h *Handler) search(c *gin.Context) {
	var sq SearchQuery
	if err := c.ShouldBindQuery(&sq); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if strings.TrimSpace(sq.Q) == "" {
		response.BadRequest(c, "Vui lòng nhập từ khóa tìm kiếm")
		return
	}

	q := pagination.FromContext(c)
	posts, pag, err := h.svc.Search(q, sq)
	if err != nil {
		h.logger.Error("search posts failed", zap.String("q", sq.Q), zap.Error(err))
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{
		"query":      sq.Q,
		"posts":      h.enrich(c, posts),
		"pagination": pag,
	})
}

// detail GET /posts/:id
// Increments the view counter fire-and-forget and attaches related posts.
func (h *Handler) detail(c *gin.Context) {
	id := c.Param("id")

	post, err := h.svc.Get(id)
	if err != nil {
		h.logger.Error("get post failed", zap.String("id", id), zap.Error(err))
		response.InternalError(c)
		return
	}
	if post == nil {
		response.NotFound(c, "Không tìm thấy bài viết")
		return
	}

	go func() {
		if err := h.svc.IncrementViews(id); err != nil {
			h.logger.Warn("view increment failed", zap.String("id", id), zap.Error(err))
		}
	}()

	related, err := h.svc.Related(post)
	if err != nil {
		h.logger.Warn("related posts failed", zap.String("id", id), zap.Error(err))
		related = nil
	}
	relatedItems := make([]relatedResponse, len(related))
	for i, r := range related {
		relatedItems[i] = relatedResponse{
			ID:        r.ID,
			Title:     r.Title,
			Category:  r.Category,
			Author:    h.identity.Resolve(c.Request.Context(), r.AuthorID),
			Likes:     r.Likes,
			CreatedAt: r.CreatedAt,
		}
	}

	resp := toResponse(post, h.identity.Resolve(c.Request.Context(), post.AuthorID))
	resp.Views++ // reflect the increment that just fired
	if c.Query("format") == "html" {
		html, err := markdown.Render(post.Content)
		if err == nil {
			resp.ContentHTML = html
		}
	}

	response.OK(c, gin.H{
		"post":         resp,
		"relatedPosts": relatedItems,
	})
}

// create POST /posts
func (h *Handler) create(c *gin.Context) {
	var dto CreatePostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	authorID, err := middleware.ResolveAuthorID(c, dto.AuthorID)
	if err != nil {
		response.Forbidden(c, "")
		return
	}

	post, err := h.svc.Create(&dto, authorID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	// only a validated, stored post may create its author row
	h.identity.Ensure(c.Request.Context(), authorID, "", "")

	response.Created(c, gin.H{
		"message": "Bài viết đã được tạo thành công!",
		"post":    toResponse(post, h.identity.Resolve(c.Request.Context(), post.AuthorID)),
	})
}

// update PUT /posts/:id
func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")

	var dto UpdatePostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	requesterID, err := middleware.ResolveAuthorID(c, dto.AuthorID)
	if err != nil || requesterID == "" {
		response.Forbidden(c, "Bạn không có quyền chỉnh sửa bài viết này")
		return
	}

	post, err := h.svc.Update(id, &dto, requesterID)
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			response.Forbidden(c, "Bạn không có quyền chỉnh sửa bài viết này")
			return
		}
		h.respondError(c, err)
		return
	}
	if post == nil {
		response.NotFound(c, "Không tìm thấy bài viết")
		return
	}

	response.OK(c, gin.H{
		"message": "Bài viết đã được cập nhật!",
		"post":    toResponse(post, h.identity.Resolve(c.Request.Context(), post.AuthorID)),
	})
}

// delete DELETE /posts/:id?authorId=
func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")

	requesterID, err := middleware.ResolveAuthorID(c, c.Query("authorId"))
	if err != nil || requesterID == "" {
		response.Forbidden(c, "Bạn không có quyền xóa bài viết này")
		return
	}

	found, err := h.svc.Delete(id, requesterID)
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			response.Forbidden(c, "Bạn không có quyền xóa bài viết này")
			return
		}
		h.logger.Error("delete post failed", zap.String("id", id), zap.Error(err))
		response.InternalError(c)
		return
	}
	if !found {
		response.NotFound(c, "Không tìm thấy bài viết")
		return
	}

	response.OK(c, gin.H{"message": "Bài viết đã được xóa"})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		response.BadRequest(c, ve.Message)
		return
	}
	h.logger.Error("post operation failed", zap.Error(err))
	response.InternalError(c)
}

// enrich resolves authors for a page of posts, deduplicating lookups.
func (h *Handler) enrich(c *gin.Context, posts []models.PostModel) []postResponse {
	authors := make(map[string]identity.Identity, len(posts))
	items := make([]postResponse, len(posts))
	for i, p := range posts {
		author, ok := authors[p.AuthorID]
		if !ok {
			author = h.identity.Resolve(c.Request.Context(), p.AuthorID)
			authors[p.AuthorID] = author
		}
		items[i] = toResponse(&p, author)
	}
	return items
}
