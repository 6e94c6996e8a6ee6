package handlers

import (
	"net/http"

	"github.com/anonto42/pixgram/backend/internal/middleware"
	"github.com/anonto42/pixgram/backend/internal/models"
	"github.com/anonto42/pixgram/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow relationships
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
	}
}

// RegisterFollowRoutes registers follow routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group, guards Guards) {
	g.POST("/users/:id/follow", h.ToggleFollow, guards.Active...)
}

// ToggleFollow follows the target user, or unfollows if already following
func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	ctx := c.Request().Context()
	currentUserID := middleware.UserID(c)
	targetID := c.Param("id")

	if targetID == currentUserID {
		return echo.NewHTTPError(http.StatusBadRequest, "You cannot follow yourself")
	}
	if _, err := h.userRepository.GetUserByID(ctx, targetID); err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return err
	}

	following, err := h.followRepository.ToggleFollow(ctx, currentUserID, targetID)
	if err != nil {
		return err
	}
	count, err := h.followRepository.GetFollowersCount(ctx, targetID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, models.FollowToggleResponse{Following: following, FollowerCount: count})
}
