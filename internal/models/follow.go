package models

import "time"

// Follow represents an Instagram-style follow relationship
type Follow struct {
	FollowerID  string    `json:"followerId" gorm:"primaryKey;size:128"`
	FollowingID string    `json:"followingId" gorm:"primaryKey;size:128;index"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FollowToggleResponse is returned by POST /users/:id/follow
type FollowToggleResponse struct {
	Following     bool  `json:"following"`
	FollowerCount int64 `json:"followerCount"`
}
