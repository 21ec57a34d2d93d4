package comment

import (
	"errors"
	"strings"

	"github.com/blognoitro/core/internal/models"
	"github.com/blognoitro/core/internal/modules/post"
	"github.com/blognoitro/core/internal/pkg/pagination"
	"github.com/blognoitro/core/internal/pkg/response"
	"gorm.io/gorm"
)

var (
	// ErrMissingFields signals an incomplete create payload.
	ErrMissingFields = errors.New("thiếu thông tin bắt buộc")
	// ErrPostNotFound signals a comment aimed at a post that does not exist.
	ErrPostNotFound = errors.New("bài viết không tồn tại")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Create inserts a comment and refreshes the post's comment counter inside
// one transaction, so the counter never drifts from the actual row count.
func (s *Service) Create(dto *CreateCommentDTO, authorID string) (*models.CommentModel, error) {
	if strings.TrimSpace(dto.PostID) == "" || strings.TrimSpace(dto.Content) == "" || strings.TrimSpace(authorID) == "" {
		return nil, ErrMissingFields
	}

	m := &models.CommentModel{
		Content:  strings.TrimSpace(dto.Content),
		PostID:   dto.PostID,
		AuthorID: authorID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.PostModel{}).Where("id = ?", dto.PostID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrPostNotFound
		}
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return post.RecomputeCounters(tx, dto.PostID)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ListByPost returns a post's comments newest first.
func (s *Service) ListByPost(postID string, q pagination.Query) ([]models.CommentModel, response.Pagination, error) {
	var comments []models.CommentModel
	db := s.db.Model(&models.CommentModel{}).
		Where("post_id = ?", postID).
		Order("created_at DESC")

	pag, err := pagination.Paginate(db, q, &comments)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	return comments, pag, nil
}
