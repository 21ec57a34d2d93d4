package upload

import (
	"errors"
	"fmt"

	"github.com/blognoitro/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc    *Service
	logger *zap.Logger
}

func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/upload", h.uploadLocal)
	rg.DELETE("/upload", h.deleteLocal)
	rg.POST("/upload-cloud", h.uploadCloud)
}

// uploadLocal POST /upload, multipart field "image"
func (h *Handler) uploadLocal(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "Không tìm thấy tệp ảnh")
		return
	}

	result, err := h.svc.StoreLocal(fh)
	if err != nil {
		h.respondError(c, err, h.svc.MaxLocalBytes())
		return
	}

	response.OK(c, gin.H{
		"message": "Tải ảnh lên thành công!",
		"file":    result,
	})
}

// uploadCloud POST /upload-cloud, multipart field "image"
func (h *Handler) uploadCloud(c *gin.Context) {
	if !h.svc.CloudEnabled() {
		response.Unavailable(c)
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "Không tìm thấy tệp ảnh")
		return
	}

	result, err := h.svc.StoreCloud(c.Request.Context(), fh)
	if err != nil {
		h.respondError(c, err, h.svc.MaxCloudBytes())
		return
	}

	response.OK(c, gin.H{
		"message": "Tải ảnh lên thành công!",
		"file":    result,
	})
}

// deleteLocal DELETE /upload?filename=
func (h *Handler) deleteLocal(c *gin.Context) {
	name := c.Query("filename")
	if name == "" {
		response.BadRequest(c, "Thiếu filename")
		return
	}

	if err := h.svc.DeleteLocal(name); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "File không tồn tại")
			return
		}
		h.logger.Error("delete upload failed", zap.String("filename", name), zap.Error(err))
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"message": "Đã xóa ảnh"})
}

func (h *Handler) respondError(c *gin.Context, err error, maxBytes int64) {
	switch {
	case errors.Is(err, ErrInvalidType):
		response.BadRequest(c, "Chỉ chấp nhận ảnh JPEG, PNG, GIF hoặc WebP")
	case errors.Is(err, ErrTooLarge):
		response.TooLarge(c, fmt.Sprintf("Kích thước ảnh tối đa là %dMB", maxBytes>>20))
	case errors.Is(err, ErrCloudDisabled):
		response.Unavailable(c)
	default:
		h.logger.Error("upload failed", zap.Error(err))
		response.InternalError(c)
	}
}
