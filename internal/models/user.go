package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is a member of the network. ID is the identity provider's UID.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;size:128"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:30;not null"`
	Email        string    `json:"email,omitempty" gorm:"size:255"`
	DisplayName  string    `json:"displayName" gorm:"size:100"`
	Bio          string    `json:"bio"`
	AvatarURL    string    `json:"avatarUrl"`
	IsAdmin      bool      `json:"isAdmin" gorm:"not null;default:false"`
	IsVerified   bool      `json:"isVerified" gorm:"not null;default:false"`
	IsBanned     bool      `json:"isBanned" gorm:"not null;default:false;index"`
	BannedReason string    `json:"bannedReason,omitempty"`
	CreatedAt    time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserCompact is the author block embedded in posts, comments and stories.
type UserCompact struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl"`
	IsVerified  bool   `json:"isVerified"`
}

// ToCompact strips a user down to what other people's content shows.
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		IsVerified:  u.IsVerified,
	}
}

// UserProfile is the public profile page payload.
type UserProfile struct {
	User
	FollowerCount  int64  `json:"followerCount"`
	FollowingCount int64  `json:"followingCount"`
	PostCount      int64  `json:"postCount"`
	IsFollowing    bool   `json:"isFollowing"`
	Posts          []Post `json:"posts"`
}

// Identity is what a verified token tells us about the caller.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
	AvatarURL   string
}

// SyncUserRequest is the optional body of POST /auth/user.
type SyncUserRequest struct {
	Username string `json:"username" validate:"omitempty,username"`
}

// UpdateUserRequest defines the request body for PATCH /users/me
type UpdateUserRequest struct {
	Username    *string `json:"username,omitempty" validate:"omitempty,username"`
	DisplayName *string `json:"displayName,omitempty" validate:"omitempty,max=100"`
	Bio         *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	AvatarURL   *string `json:"avatarUrl,omitempty" validate:"omitempty,max=500"`
}

// JwtCustomClaims are the claims carried by locally signed tokens.
type JwtCustomClaims struct {
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}
