package models

import "time"

// Post is a photo shared by a user.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"userId" gorm:"size:128;not null;index"`
	Caption   string    `json:"caption"`
	ImageURL  string    `json:"imageUrl" gorm:"not null"`
	Location  *string   `json:"location"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
}

// CreatePostRequest is the schema a new post is validated against. ImageURL is
// derived from the uploaded file, not sent by the client.
type CreatePostRequest struct {
	UserID   string `json:"userId" form:"-" validate:"required"`
	Caption  string `json:"caption" form:"caption" validate:"max=2200"`
	Location string `json:"location" form:"location" validate:"max=100"`
	ImageURL string `json:"imageUrl" form:"-" validate:"required"`
}

// PostWithDetails is a post enriched for display.
type PostWithDetails struct {
	Post
	User         UserCompact       `json:"user"`
	LikeCount    int64             `json:"likeCount"`
	CommentCount int64             `json:"commentCount"`
	LikedByMe    bool              `json:"likedByMe"`
	Comments     []CommentWithUser `json:"comments"`
}

// LikeToggleResponse is returned by POST /posts/:id/like
type LikeToggleResponse struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"likeCount"`
}
