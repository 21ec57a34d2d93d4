package models

// ReactionTypeLike is the only reaction type the clients send today.
const ReactionTypeLike = "LIKE"

// ReactionModel is a single reaction on a post.
// The composite unique index on (post_id, author_id) is the whole concurrency
// story for the toggle operation: a racing duplicate insert fails at the
// storage layer instead of being serialized in-process.
type ReactionModel struct {
	Base
	Type     string `json:"type"     gorm:"type:varchar(16);not null;default:LIKE"`
	PostID   string `json:"postId"   gorm:"type:char(36);not null;uniqueIndex:uniq_reaction_post_author;index"`
	AuthorID string `json:"authorId" gorm:"type:char(36);not null;uniqueIndex:uniq_reaction_post_author"`
}

func (ReactionModel) TableName() string { return "reactions" }
