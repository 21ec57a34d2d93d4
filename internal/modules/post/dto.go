package post

import (
	"time"

	"github.com/blognoitro/core/internal/models"
	"github.com/blognoitro/core/internal/modules/identity"
)

// CreatePostDTO is the request body for creating a post. Hashtags is the
// raw free-text hashtag string from the form; Tags is the already-split
// variant newer clients send. Image/Images mirror the two upload flows.
type CreatePostDTO struct {
	Title    string         `json:"title"`
	Content  string         `json:"content"`
	Excerpt  string         `json:"excerpt"`
	Category string         `json:"category"`
	Hashtags string         `json:"hashtags"`
	Tags     []string       `json:"tags"`
	Image    string         `json:"image"`
	Images   []models.Image `json:"images"`
	AuthorID string         `json:"authorId"`
}

// UpdatePostDTO is the request body for updating a post (all fields optional
// except the claimed author).
type UpdatePostDTO struct {
	Title    *string            `json:"title"`
	Content  *string            `json:"content"`
	Excerpt  *string            `json:"excerpt"`
	Category *string            `json:"category"`
	Hashtags *string            `json:"hashtags"`
	Tags     []string           `json:"tags"`
	Images   []models.Image     `json:"images"`
	Status   *models.PostStatus `json:"status"`
	AuthorID string             `json:"authorId"`
}

// ListQuery holds query params for listing posts.
type ListQuery struct {
	Category string `form:"category"`
	Tag      string `form:"tag"`
}

// SearchQuery holds query params for searching posts.
type SearchQuery struct {
	Q        string `form:"q"`
	Category string `form:"category"`
	Tag      string `form:"tag"`
	Author   string `form:"author"`
}

// postResponse is the API shape for a post, with the author resolved.
type postResponse struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Content       string            `json:"content"`
	ContentHTML   string            `json:"contentHtml,omitempty"`
	Excerpt       string            `json:"excerpt"`
	Category      string            `json:"category"`
	Tags          []string          `json:"tags"`
	Images        []models.Image    `json:"images"`
	Author        identity.Identity `json:"author"`
	Status        models.PostStatus `json:"status"`
	Views         int               `json:"views"`
	Likes         int               `json:"likes"`
	CommentsCount int               `json:"commentsCount"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

func toResponse(p *models.PostModel, author identity.Identity) postResponse {
	tags := []string(p.Tags)
	if tags == nil {
		tags = []string{}
	}
	images := p.Images
	if images == nil {
		images = []models.Image{}
	}
	return postResponse{
		ID:            p.ID,
		Title:         p.Title,
		Content:       p.Content,
		Excerpt:       p.Excerpt,
		Category:      p.Category,
		Tags:          tags,
		Images:        images,
		Author:        author,
		Status:        p.Status,
		Views:         p.Views,
		Likes:         p.Likes,
		CommentsCount: p.CommentsCount,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// relatedResponse is the compact shape for the related-posts block on the
// detail page.
type relatedResponse struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Category  string            `json:"category"`
	Author    identity.Identity `json:"author"`
	Likes     int               `json:"likes"`
	CreatedAt time.Time         `json:"createdAt"`
}
