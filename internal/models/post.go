package models

// PostStatus is the publication state of a post.
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
	StatusArchived  PostStatus = "archived"
)

// Category values are a fixed set chosen on the create form.
const (
	CategoryCooking = "cooking"
	CategoryHome    = "home"
	CategoryBaby    = "baby"
	CategoryBeauty  = "beauty"
	CategoryTips    = "tips"
)

// Categories lists every valid post category.
var Categories = []string{
	CategoryCooking,
	CategoryHome,
	CategoryBaby,
	CategoryBeauty,
	CategoryTips,
}

// ValidCategory reports whether c is a known category.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// PostModel is a community blog post.
// Likes and CommentsCount are denormalized: they must always equal the true
// count of reaction/comment rows for this post and are maintained exclusively
// through counter recomputation, never by speculative increments.
type PostModel struct {
	Base
	Title         string      `json:"title"         gorm:"not null"`
	Content       string      `json:"content"       gorm:"type:longtext;not null"`
	Excerpt       string      `json:"excerpt"`
	Category      string      `json:"category"      gorm:"not null;index"`
	Tags          StringArray `json:"tags"          gorm:"type:json"`
	Images        []Image     `json:"images"        gorm:"type:longtext;serializer:json"`
	AuthorID      string      `json:"authorId"      gorm:"type:char(36);not null;index"`
	Status        PostStatus  `json:"status"        gorm:"type:varchar(16);default:published;index"`
	Views         int         `json:"views"         gorm:"default:0"`
	Likes         int         `json:"likes"         gorm:"default:0"`
	CommentsCount int         `json:"commentsCount" gorm:"default:0"`
}

func (PostModel) TableName() string { return "posts" }
