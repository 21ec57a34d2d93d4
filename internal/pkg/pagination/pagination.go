package pagination

import (
	"strconv"

	"github.com/blognoitro/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 50
)

// Query holds parsed pagination parameters.
type Query struct {
	Page  int
	Limit int
}

// FromContext extracts and validates page/limit params from the request.
func FromContext(c *gin.Context) Query {
	page := parseIntOr(c.DefaultQuery("page", "1"), DefaultPage)
	limit := parseIntOr(c.DefaultQuery("limit", "10"), DefaultLimit)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Query{Page: page, Limit: limit}
}

// Paginate applies limit/offset to a GORM query and returns the pagination
// metadata in the envelope shape the clients expect.
func Paginate[T any](db *gorm.DB, q Query, dest *[]T) (response.Pagination, error) {
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return response.Pagination{}, err
	}

	offset := (q.Page - 1) * q.Limit
	if err := db.Offset(offset).Limit(q.Limit).Find(dest).Error; err != nil {
		return response.Pagination{}, err
	}

	return Meta(q, total), nil
}

// Meta computes pagination metadata for a total without running a query.
func Meta(q Query, total int64) response.Pagination {
	totalPages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	return response.Pagination{
		Page:       q.Page,
		Limit:      q.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    q.Page < totalPages,
		HasPrev:    q.Page > 1,
	}
}

func parseIntOr(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
