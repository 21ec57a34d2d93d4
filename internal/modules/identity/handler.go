package identity

import (
	"github.com/blognoitro/core/internal/pkg/response"
	"github.com/blognoitro/core/internal/pkg/token"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler exposes the anonymous identity endpoints.
type Handler struct {
	svc    *Service
	tokens *token.Service
	logger *zap.Logger
}

func NewHandler(svc *Service, tokens *token.Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, tokens: tokens, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/anonymous")
	g.GET("", h.get)
	g.POST("", h.create)
}

// get GET /anonymous?sessionId=
func (h *Handler) get(c *gin.Context) {
	sessionID := c.Query("sessionId")
	if sessionID == "" {
		response.BadRequest(c, "Thiếu sessionId")
		return
	}

	ident := h.svc.Issue(c.Request.Context(), sessionID)
	response.OK(c, gin.H{
		"user":  ident,
		"token": h.mintToken(ident.ID),
	})
}

// create POST /anonymous
func (h *Handler) create(c *gin.Context) {
	sessionID := c.GetHeader("X-Session-Id")
	ident := h.svc.Issue(c.Request.Context(), sessionID)
	response.Created(c, gin.H{
		"user":  ident,
		"token": h.mintToken(ident.ID),
	})
}

// mintToken is best-effort: an identity without a token still works, it just
// falls back to the legacy trust-the-client path.
func (h *Handler) mintToken(identityID string) string {
	tok, err := h.tokens.Mint(identityID)
	if err != nil {
		h.logger.Warn("session token mint failed", zap.String("id", identityID), zap.Error(err))
		return ""
	}
	return tok
}
