package models

import "time"

// Like marks that a user likes a post. The composite primary key makes the
// relation a set.
type Like struct {
	UserID    string    `json:"userId" gorm:"primaryKey;size:128"`
	PostID    uint      `json:"postId" gorm:"primaryKey;index"`
	CreatedAt time.Time `json:"createdAt"`

	Post *Post `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
