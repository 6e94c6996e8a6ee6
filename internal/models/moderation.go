package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Moderation actions recorded in the audit log.
const (
	ActionVerify       = "verify"
	ActionUnverify     = "unverify"
	ActionBan          = "ban"
	ActionUnban        = "unban"
	ActionPromote      = "promote"
	ActionDemote       = "demote"
	ActionDeletePost   = "delete_post"
	ActionSweepStories = "sweep_stories"
)

// ModerationEvent is one admin action, stored in MongoDB.
type ModerationEvent struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Action    string             `json:"action" bson:"action"`
	ActorID   string             `json:"actorId" bson:"actor_id"`
	TargetID  string             `json:"targetId,omitempty" bson:"target_id,omitempty"`
	Reason    string             `json:"reason,omitempty" bson:"reason,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
}

// ModerateUserRequest is the body of the POST /admin/*-user endpoints.
type ModerateUserRequest struct {
	UserID string `json:"userId" validate:"required"`
	Reason string `json:"reason" validate:"max=500"`
}

// AdminStats is returned by GET /admin/stats
type AdminStats struct {
	Users         int64 `json:"users"`
	BannedUsers   int64 `json:"bannedUsers"`
	Posts         int64 `json:"posts"`
	Comments      int64 `json:"comments"`
	Likes         int64 `json:"likes"`
	ActiveStories int64 `json:"activeStories"`
}
