package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Every endpoint answers with the same envelope: {"success": true, ...} on
// success and {"success": false, "message": ...} on failure. Error messages
// are user-facing Vietnamese; internals stay in the server log.

// Pagination metadata returned with paginated responses.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// OK sends a 200 response, merging payload into the success envelope.
func OK(c *gin.Context, payload gin.H) {
	c.JSON(http.StatusOK, envelope(payload))
}

// Created sends a 201 response.
func Created(c *gin.Context, payload gin.H) {
	c.JSON(http.StatusCreated, envelope(payload))
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	fail(c, http.StatusBadRequest, message)
}

// Forbidden sends a 403 error response.
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Bạn không có quyền thực hiện thao tác này"
	}
	fail(c, http.StatusForbidden, message)
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Không tìm thấy nội dung"
	}
	fail(c, http.StatusNotFound, message)
}

// Conflict sends a 409 error response.
func Conflict(c *gin.Context, message string) {
	fail(c, http.StatusConflict, message)
}

// TooLarge sends a 413 error response.
func TooLarge(c *gin.Context, message string) {
	fail(c, http.StatusRequestEntityTooLarge, message)
}

// InternalError sends a 500 with a generic message; err belongs in the log,
// not in the body.
func InternalError(c *gin.Context) {
	fail(c, http.StatusInternalServerError, "Lỗi hệ thống, vui lòng thử lại sau")
}

// Unavailable sends a 503 error response.
func Unavailable(c *gin.Context) {
	fail(c, http.StatusServiceUnavailable, "Hệ thống đang bận, vui lòng thử lại sau")
}

func envelope(payload gin.H) gin.H {
	out := gin.H{"success": true}
	for k, v := range payload {
		out[k] = v
	}
	return out
}

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}
