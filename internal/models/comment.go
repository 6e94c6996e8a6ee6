package models

import "time"

// Comment represents a comment on a post
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"postId" gorm:"not null;index"`
	UserID    string    `json:"userId" gorm:"size:128;not null;index"`
	Text      string    `json:"text" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`

	Post *Post `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// CommentWithUser is a comment with its author attached.
type CommentWithUser struct {
	Comment
	User UserCompact `json:"user"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=1000"`
}
