package comment

import (
	"time"

	"github.com/blognoitro/core/internal/models"
	"github.com/blognoitro/core/internal/modules/identity"
)

// CreateCommentDTO is the payload for posting a comment.
type CreateCommentDTO struct {
	PostID   string `json:"postId"`
	Content  string `json:"content"`
	AuthorID string `json:"authorId"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
}

type commentResponse struct {
	ID        string            `json:"id"`
	Content   string            `json:"content"`
	PostID    string            `json:"postId"`
	Author    identity.Identity `json:"author"`
	Likes     int               `json:"likes"`
	CreatedAt time.Time         `json:"createdAt"`
}

func toResponse(m *models.CommentModel, author identity.Identity) commentResponse {
	return commentResponse{
		ID:        m.ID,
		Content:   m.Content,
		PostID:    m.PostID,
		Author:    author,
		Likes:     m.Likes,
		CreatedAt: m.CreatedAt,
	}
}
