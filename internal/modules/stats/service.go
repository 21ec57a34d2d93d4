package stats

import (
	"time"

	"github.com/blognoitro/core/internal/models"
	"gorm.io/gorm"
)

const recentWindow = 7 * 24 * time.Hour

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Overview is the site-wide statistics snapshot.
type Overview struct {
	Totals          Totals           `json:"totals"`
	PostsByCategory map[string]int64 `json:"postsByCategory"`
	RecentActivity  Totals           `json:"recentActivity"`
	TopPosts        []TopPost        `json:"topPosts"`
}

type Totals struct {
	Posts     int64 `json:"posts"`
	Comments  int64 `json:"comments"`
	Reactions int64 `json:"reactions"`
}

// TopPost is a leaderboard row; author enrichment happens in the handler.
type TopPost struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	AuthorID  string    `json:"-"`
	Likes     int       `json:"likes"`
	Views     int       `json:"views"`
	CreatedAt time.Time `json:"createdAt"`
}

// Overview gathers totals, the per-category breakdown, activity inside the
// last seven days and the five most liked posts.
func (s *Service) Overview() (*Overview, error) {
	ov := &Overview{PostsByCategory: map[string]int64{}}

	published := func() *gorm.DB {
		return s.db.Model(&models.PostModel{}).Where("status = ?", models.StatusPublished)
	}

	if err := published().Count(&ov.Totals.Posts).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.CommentModel{}).Count(&ov.Totals.Comments).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.ReactionModel{}).Count(&ov.Totals.Reactions).Error; err != nil {
		return nil, err
	}

	type categoryCount struct {
		Category string
		Count    int64
	}
	var byCategory []categoryCount
	err := published().
		Select("category, COUNT(*) AS count").
		Group("category").
		Scan(&byCategory).Error
	if err != nil {
		return nil, err
	}
	for _, row := range byCategory {
		ov.PostsByCategory[row.Category] = row.Count
	}

	since := time.Now().Add(-recentWindow)
	if err := published().Where("created_at >= ?", since).Count(&ov.RecentActivity.Posts).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.CommentModel{}).Where("created_at >= ?", since).Count(&ov.RecentActivity.Comments).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.ReactionModel{}).Where("created_at >= ?", since).Count(&ov.RecentActivity.Reactions).Error; err != nil {
		return nil, err
	}

	var top []models.PostModel
	err = s.db.Model(&models.PostModel{}).
		Where("status = ?", models.StatusPublished).
		Order("likes DESC, created_at DESC").
		Limit(5).
		Find(&top).Error
	if err != nil {
		return nil, err
	}
	ov.TopPosts = make([]TopPost, len(top))
	for i, p := range top {
		ov.TopPosts[i] = TopPost{
			ID:        p.ID,
			Title:     p.Title,
			Category:  p.Category,
			AuthorID:  p.AuthorID,
			Likes:     p.Likes,
			Views:     p.Views,
			CreatedAt: p.CreatedAt,
		}
	}
	return ov, nil
}
