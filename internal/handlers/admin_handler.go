package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/anonto42/pixgram/backend/internal/middleware"
	"github.com/anonto42/pixgram/backend/internal/models"
	"github.com/anonto42/pixgram/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// AdminHandler handles moderation and site statistics
type AdminHandler struct {
	userRepository    repositories.UserRepository
	postRepository    repositories.PostRepository
	commentRepository repositories.CommentRepository
	likeRepository    repositories.LikeRepository
	storyRepository   repositories.StoryRepository
	auditRepository   repositories.AuditRepository // nil when no audit store is configured
	logger            *slog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(
	userRepo repositories.UserRepository,
	postRepo repositories.PostRepository,
	commentRepo repositories.CommentRepository,
	likeRepo repositories.LikeRepository,
	storyRepo repositories.StoryRepository,
	auditRepo repositories.AuditRepository,
	logger *slog.Logger,
) *AdminHandler {
	return &AdminHandler{
		userRepository:    userRepo,
		postRepository:    postRepo,
		commentRepository: commentRepo,
		likeRepository:    likeRepo,
		storyRepository:   storyRepo,
		auditRepository:   auditRepo,
		logger:            logger,
	}
}

// moderation describes one of the POST /admin/*-user endpoints.
type moderation struct {
	action      string
	allowOnSelf bool
	apply       func(ctx context.Context, users repositories.UserRepository, req models.ModerateUserRequest) error
}

var moderations = map[string]moderation{
	"/verify-user": {action: models.ActionVerify, allowOnSelf: true,
		apply: func(ctx context.Context, users repositories.UserRepository, req models.ModerateUserRequest) error {
			return users.SetVerified(ctx, req.UserID, true)
		}},
	"/unverify-user": {action: models.ActionUnverify, allowOnSelf: true,
		apply: func(ctx context.Context, users repositories.UserRepository, req models.ModerateUserRequest) error {
			return users.SetVerified(ctx, req.UserID, false)
		}},
	"/ban-user": {action: models.ActionBan,
		apply: func(ctx context.Context, users repositories.UserRepository, req models.ModerateUserRequest) error {
			return users.SetBanned(ctx, req.UserID, true, req.Reason)
		}},
	"/unban-user": {action: models.ActionUnban, allowOnSelf: true,
		apply: func(ctx context.Context, users repositories.UserRepository, req models.ModerateUserRequest) error {
			return users.SetBanned(ctx, req.UserID, false, "")
		}},
	"/promote-user": {action: models.ActionPromote, allowOnSelf: true,
		apply: func(ctx context.Context, users repositories.UserRepository, req models.ModerateUserRequest) error {
			return users.SetAdmin(ctx, req.UserID, true)
		}},
	"/demote-user": {action: models.ActionDemote,
		apply: func(ctx context.Context, users repositories.UserRepository, req models.ModerateUserRequest) error {
			return users.SetAdmin(ctx, req.UserID, false)
		}},
}

// RegisterAdminRoutes registers admin routes under g, which is expected to be
// the /admin group.
func (h *AdminHandler) RegisterAdminRoutes(g *echo.Group, guards Guards) {
	g.GET("/users", h.ListUsers, guards.Admin...)
	g.GET("/stats", h.GetStats, guards.Admin...)
	for path, m := range moderations {
		g.POST(path, h.moderateUser(m), guards.Admin...)
	}
	g.POST("/stories/sweep", h.SweepStories, guards.Admin...)
	g.GET("/audit-log", h.GetAuditLog, guards.Admin...)
}

// ListUsers returns every user, newest first
func (h *AdminHandler) ListUsers(c echo.Context) error {
	limit := queryLimit(c, defaultUserLimit, maxUserLimit)
	offset := queryOffset(c)

	users, err := h.userRepository.ListUsers(c.Request().Context(), limit, offset)
	if err != nil {
		return err
	}
	if users == nil {
		users = []models.User{}
	}
	return c.JSON(http.StatusOK, users)
}

// GetStats returns site-wide counts
func (h *AdminHandler) GetStats(c echo.Context) error {
	ctx := c.Request().Context()
	var stats models.AdminStats
	var err error

	if stats.Users, err = h.userRepository.CountUsers(ctx); err != nil {
		return err
	}
	if stats.BannedUsers, err = h.userRepository.CountBannedUsers(ctx); err != nil {
		return err
	}
	if stats.Posts, err = h.postRepository.CountPosts(ctx); err != nil {
		return err
	}
	if stats.Comments, err = h.commentRepository.CountComments(ctx); err != nil {
		return err
	}
	if stats.Likes, err = h.likeRepository.CountLikes(ctx); err != nil {
		return err
	}
	if stats.ActiveStories, err = h.storyRepository.CountActiveStories(ctx); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) moderateUser(m moderation) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var req models.ModerateUserRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
		}
		req.Reason = sanitizeText(req.Reason)
		if err := c.Validate(&req); err != nil {
			return err
		}
		if !m.allowOnSelf && req.UserID == middleware.UserID(c) {
			return echo.NewHTTPError(http.StatusBadRequest, "You cannot "+m.action+" yourself")
		}

		if err := m.apply(ctx, h.userRepository, req); err != nil {
			if isNotFound(err) {
				return echo.NewHTTPError(http.StatusNotFound, "User not found")
			}
			return err
		}

		user, err := h.userRepository.GetUserByID(ctx, req.UserID)
		if err != nil {
			return err
		}
		recordModeration(c, h.auditRepository, h.logger, m.action, req.UserID, req.Reason)
		return c.JSON(http.StatusOK, user)
	}
}

// SweepStories deletes every expired story
func (h *AdminHandler) SweepStories(c echo.Context) error {
	deleted, err := h.storyRepository.DeleteExpiredStories(c.Request().Context())
	if err != nil {
		return err
	}
	recordModeration(c, h.auditRepository, h.logger, models.ActionSweepStories, "", "")
	return c.JSON(http.StatusOK, map[string]int64{"deleted": deleted})
}

// GetAuditLog returns the most recent moderation events
func (h *AdminHandler) GetAuditLog(c echo.Context) error {
	if h.auditRepository == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Audit log is not configured")
	}
	limit := queryLimit(c, defaultAuditLimit, maxAuditLimit)

	events, err := h.auditRepository.GetRecentEvents(c.Request().Context(), int64(limit))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// recordModeration appends to the audit log when one is configured. The
// action has already happened, so a failed write is only logged.
func recordModeration(c echo.Context, audit repositories.AuditRepository, logger *slog.Logger, action, targetID, reason string) {
	if audit == nil {
		return
	}
	event := &models.ModerationEvent{
		Action:    action,
		ActorID:   middleware.UserID(c),
		TargetID:  targetID,
		Reason:    reason,
		CreatedAt: time.Now().UTC(),
	}
	if err := audit.RecordEvent(c.Request().Context(), event); err != nil {
		logger.Warn("Failed to record moderation event",
			"action", action,
			"actor_id", event.ActorID,
			"target_id", targetID,
			"error", err,
		)
	}
}
