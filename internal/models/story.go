package models

import "time"

// StoryTTL is how long a story stays visible after it is posted.
const StoryTTL = 24 * time.Hour

// Story is an ephemeral media post. ExpiresAt is fixed at creation.
type Story struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"userId" gorm:"size:128;not null;index"`
	MediaURL  string    `json:"mediaUrl" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null;index"`
}

// StoryWithUser is a story with its author attached.
type StoryWithUser struct {
	Story
	User UserCompact `json:"user"`
}
