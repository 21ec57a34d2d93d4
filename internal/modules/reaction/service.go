package reaction

import (
	"errors"
	"strings"

	"github.com/blognoitro/core/internal/models"
	"github.com/blognoitro/core/internal/modules/post"
	"gorm.io/gorm"
)

var (
	// ErrMissingFields signals an incomplete toggle payload.
	ErrMissingFields = errors.New("thiếu thông tin bắt buộc")
	// ErrPostNotFound signals a reaction aimed at a post that does not exist.
	ErrPostNotFound = errors.New("bài viết không tồn tại")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ToggleResult reports the outcome of a toggle and the refreshed counter.
type ToggleResult struct {
	Added bool
	Likes int64
}

// Toggle adds the author's reaction if absent and removes it if present.
// The unique index on (post_id, author_id) backs the one-reaction invariant,
// so a racing duplicate insert fails at the database instead of double
// counting. The post's like counter is refreshed in the same transaction.
func (s *Service) Toggle(postID, authorID, reactionType string) (*ToggleResult, error) {
	if strings.TrimSpace(postID) == "" || strings.TrimSpace(authorID) == "" {
		return nil, ErrMissingFields
	}
	if reactionType == "" {
		reactionType = models.ReactionTypeLike
	}

	result := &ToggleResult{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.PostModel{}).Where("id = ?", postID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrPostNotFound
		}

		var existing models.ReactionModel
		err := tx.Where("post_id = ? AND author_id = ?", postID, authorID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			result.Added = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			m := &models.ReactionModel{Type: reactionType, PostID: postID, AuthorID: authorID}
			if err := tx.Create(m).Error; err != nil {
				return err
			}
			result.Added = true
		default:
			return err
		}

		if err := post.RecomputeCounters(tx, postID); err != nil {
			return err
		}
		return tx.Model(&models.ReactionModel{}).Where("post_id = ?", postID).Count(&result.Likes).Error
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Status describes the reaction state of a post, optionally for one user.
type Status struct {
	TotalCount     int64            `json:"totalCount"`
	Counts         map[string]int64 `json:"counts"`
	HasUserReacted bool             `json:"hasUserReacted"`
	UserReaction   string           `json:"userReaction,omitempty"`
}

// StatusForPost returns reaction totals per type and, when userID is set,
// whether that user has reacted and with what.
func (s *Service) StatusForPost(postID, userID string) (*Status, error) {
	st := &Status{Counts: map[string]int64{}}

	type typeCount struct {
		Type  string
		Count int64
	}
	var rows []typeCount
	err := s.db.Model(&models.ReactionModel{}).
		Select("type, COUNT(*) AS count").
		Where("post_id = ?", postID).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		st.Counts[row.Type] = row.Count
		st.TotalCount += row.Count
	}

	if userID != "" {
		var mine models.ReactionModel
		err := s.db.Where("post_id = ? AND author_id = ?", postID, userID).First(&mine).Error
		switch {
		case err == nil:
			st.HasUserReacted = true
			st.UserReaction = mine.Type
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return nil, err
		}
	}
	return st, nil
}
