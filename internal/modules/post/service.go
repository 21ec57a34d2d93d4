package post

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blognoitro/core/internal/models"
	"github.com/blognoitro/core/internal/pkg/pagination"
	"github.com/blognoitro/core/internal/pkg/response"
	"gorm.io/gorm"
)

const relatedLimit = 3

// Service handles post business logic.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Create validates input and inserts a new post. The excerpt is derived from
// content when not supplied; tags come from the free-text hashtag string
// unless the client already sent a split list.
func (s *Service) Create(dto *CreatePostDTO, authorID string) (*models.PostModel, error) {
	if strings.TrimSpace(dto.Title) == "" || strings.TrimSpace(dto.Content) == "" ||
		dto.Category == "" || authorID == "" {
		return nil, validationErr("Thiếu thông tin bắt buộc: title, content, category, authorId")
	}
	if !models.ValidCategory(dto.Category) {
		return nil, validationErr("Chuyên mục không hợp lệ")
	}

	content := strings.TrimSpace(dto.Content)
	excerpt := strings.TrimSpace(dto.Excerpt)
	if excerpt == "" {
		excerpt = DeriveExcerpt(content)
	}

	tags := dto.Tags
	if tags == nil {
		tags = NormalizeTags(dto.Hashtags)
	}

	images := dto.Images
	if len(images) == 0 && dto.Image != "" {
		images = []models.Image{{URL: dto.Image, Alt: dto.Title}}
	}

	post := models.PostModel{
		Title:    strings.TrimSpace(dto.Title),
		Content:  content,
		Excerpt:  excerpt,
		Category: dto.Category,
		Tags:     models.StringArray(tags),
		Images:   images,
		AuthorID: authorID,
		Status:   models.StatusPublished,
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// Get fetches a single post by ID. Returns (nil, nil) when absent.
func (s *Service) Get(id string) (*models.PostModel, error) {
	var post models.PostModel
	if err := s.db.First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// List returns a paginated page of published posts, newest first, optionally
// narrowed by category and/or an exact tag.
func (s *Service) List(q pagination.Query, lq ListQuery) ([]models.PostModel, response.Pagination, error) {
	tx := s.db.Model(&models.PostModel{}).
		Where("status = ?", models.StatusPublished).
		Order("created_at DESC")

	if lq.Category != "" {
		tx = tx.Where("category = ?", lq.Category)
	}
	if lq.Tag != "" {
		tx = tx.Where("JSON_CONTAINS(tags, ?)", fmt.Sprintf("%q", lq.Tag))
	}

	var posts []models.PostModel
	pag, err := pagination.Paginate(tx, q, &posts)
	return posts, pag, err
}

// Search performs a case-insensitive substring match across title, content,
// category, tags and the author's nickname, then applies the optional
// narrowing filters. Paginated like List.
func (s *Service) Search(q pagination.Query, sq SearchQuery) ([]models.PostModel, response.Pagination, error) {
	needle := "%" + strings.ToLower(strings.TrimSpace(sq.Q)) + "%"

	tx := s.db.Model(&models.PostModel{}).
		Joins("LEFT JOIN users ON users.id = posts.author_id").
		Where("posts.status = ?", models.StatusPublished).
		Where(
			s.db.Where("LOWER(posts.title) LIKE ?", needle).
				Or("LOWER(posts.content) LIKE ?", needle).
				Or("LOWER(posts.category) LIKE ?", needle).
				Or("LOWER(CAST(posts.tags AS CHAR)) LIKE ?", needle).
				Or("LOWER(users.nickname) LIKE ?", needle),
		).
		Order("posts.created_at DESC")

	if sq.Category != "" {
		tx = tx.Where("posts.category = ?", sq.Category)
	}
	if sq.Tag != "" {
		tx = tx.Where("JSON_CONTAINS(posts.tags, ?)", fmt.Sprintf("%q", sq.Tag))
	}
	if sq.Author != "" {
		tx = tx.Where("LOWER(users.nickname) LIKE ?", "%"+strings.ToLower(sq.Author)+"%")
	}

	var posts []models.PostModel
	pag, err := pagination.Paginate(tx, q, &posts)
	return posts, pag, err
}

// Related returns up to three other published posts in the same category,
// newest first.
func (s *Service) Related(p *models.PostModel) ([]models.PostModel, error) {
	var posts []models.PostModel
	err := s.db.
		Where("category = ? AND id <> ? AND status = ?", p.Category, p.ID, models.StatusPublished).
		Order("created_at DESC").
		Limit(relatedLimit).
		Find(&posts).Error
	return posts, err
}

// Update applies field updates after an author check. Returns (nil, nil)
// when the post is absent and ErrForbidden on author mismatch.
func (s *Service) Update(id string, dto *UpdatePostDTO, requesterID string) (*models.PostModel, error) {
	post, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, nil
	}
	if post.AuthorID != requesterID {
		return nil, ErrForbidden
	}

	updates := map[string]interface{}{}
	if dto.Title != nil {
		if strings.TrimSpace(*dto.Title) == "" {
			return nil, validationErr("Tiêu đề không được để trống")
		}
		updates["title"] = strings.TrimSpace(*dto.Title)
	}
	if dto.Content != nil {
		if strings.TrimSpace(*dto.Content) == "" {
			return nil, validationErr("Nội dung không được để trống")
		}
		updates["content"] = strings.TrimSpace(*dto.Content)
		if dto.Excerpt == nil {
			updates["excerpt"] = DeriveExcerpt(strings.TrimSpace(*dto.Content))
		}
	}
	if dto.Excerpt != nil {
		updates["excerpt"] = *dto.Excerpt
	}
	if dto.Category != nil {
		if !models.ValidCategory(*dto.Category) {
			return nil, validationErr("Chuyên mục không hợp lệ")
		}
		updates["category"] = *dto.Category
	}
	if dto.Tags != nil {
		updates["tags"] = models.StringArray(dto.Tags)
	} else if dto.Hashtags != nil {
		updates["tags"] = models.StringArray(NormalizeTags(*dto.Hashtags))
	}
	if dto.Images != nil {
		updates["images"] = dto.Images
	}
	if dto.Status != nil {
		updates["status"] = *dto.Status
	}

	if err := s.db.Model(post).Updates(updates).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes a post and cascades its comments and reactions in one
// transaction. Same author check and not-found convention as Update.
func (s *Service) Delete(id, requesterID string) (found bool, err error) {
	post, err := s.Get(id)
	if err != nil {
		return false, err
	}
	if post == nil {
		return false, nil
	}
	if post.AuthorID != requesterID {
		return true, ErrForbidden
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.CommentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.ReactionModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.PostModel{}, "id = ?", id).Error
	})
	return true, err
}

// IncrementViews bumps the view counter. Callers fire-and-forget this: a
// lost increment is acceptable.
func (s *Service) IncrementViews(id string) error {
	return s.db.Model(&models.PostModel{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// RecomputeCounters resets a post's denormalized likes/comments counters to
// the true child-row counts. Every comment and reaction mutation funnels
// through here, inside the caller's transaction, so the counters can never
// drift from the rows they summarize.
func RecomputeCounters(tx *gorm.DB, postID string) error {
	var likes int64
	if err := tx.Model(&models.ReactionModel{}).Where("post_id = ?", postID).Count(&likes).Error; err != nil {
		return err
	}
	var comments int64
	if err := tx.Model(&models.CommentModel{}).Where("post_id = ?", postID).Count(&comments).Error; err != nil {
		return err
	}
	return tx.Model(&models.PostModel{}).Where("id = ?", postID).
		UpdateColumns(map[string]interface{}{
			"likes":          likes,
			"comments_count": comments,
		}).Error
}

// ReconcileCounters rewrites every post's counters from the child tables.
// Registered as a background job as a safety net for the counter invariant.
func (s *Service) ReconcileCounters() error {
	if err := s.db.Exec(
		`UPDATE posts SET likes = (SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id)`,
	).Error; err != nil {
		return err
	}
	return s.db.Exec(
		`UPDATE posts SET comments_count = (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id)`,
	).Error
}
