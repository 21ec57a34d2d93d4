package models

// CommentModel is a comment attached to a post.
// Comments have no standalone delete path; rows disappear only when the
// owning post is deleted.
type CommentModel struct {
	Base
	Content  string `json:"content"  gorm:"type:text;not null"`
	PostID   string `json:"postId"   gorm:"type:char(36);not null;index"`
	AuthorID string `json:"authorId" gorm:"type:char(36);not null;index"`
	Likes    int    `json:"likes"    gorm:"default:0"`
}

func (CommentModel) TableName() string { return "comments" }
