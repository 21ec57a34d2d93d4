package models

// UserModel is an anonymous identity mirrored from the browser.
// There is no credential: the id itself is the only handle a browser holds,
// optionally bound to a signed session token.
type UserModel struct {
	Base
	Nickname    string `json:"nickname"    gorm:"not null"`
	Avatar      string `json:"avatar"`
	IsAnonymous bool   `json:"isAnonymous" gorm:"default:true"`
}

func (UserModel) TableName() string { return "users" }
