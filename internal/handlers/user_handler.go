package handlers

import (
	"net/http"
	"strings"

	"github.com/anonto42/pixgram/backend/internal/middleware"
	"github.com/anonto42/pixgram/backend/internal/models"
	"github.com/anonto42/pixgram/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// UserHandler handles user profiles and suggestions
type UserHandler struct {
	userRepository   repositories.UserRepository
	postRepository   repositories.PostRepository
	followRepository repositories.FollowRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, postRepo repositories.PostRepository, followRepo repositories.FollowRepository) *UserHandler {
	return &UserHandler{
		userRepository:   userRepo,
		postRepository:   postRepo,
		followRepository: followRepo,
	}
}

// RegisterUserRoutes registers user-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group, guards Guards) {
	g.GET("/users/suggested", h.GetSuggestedUsers, guards.Authenticated...)
	g.PATCH("/users/me", h.UpdateCurrentUser, guards.Active...)
	g.GET("/users/:username", h.GetUserProfile, guards.Viewer...)
}

// GetUserProfile returns a user with follow counts and their posts
func (h *UserHandler) GetUserProfile(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.userRepository.GetUserByUsername(ctx, c.Param("username"))
	if err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return err
	}

	followers, err := h.followRepository.GetFollowersCount(ctx, user.ID)
	if err != nil {
		return err
	}
	following, err := h.followRepository.GetFollowingCount(ctx, user.ID)
	if err != nil {
		return err
	}
	postCount, err := h.postRepository.CountPostsByUserID(ctx, user.ID)
	if err != nil {
		return err
	}
	posts, err := h.postRepository.GetPostsByUserID(ctx, user.ID)
	if err != nil {
		return err
	}
	if posts == nil {
		posts = []models.Post{}
	}

	isFollowing := false
	if viewerID := middleware.UserID(c); viewerID != "" && viewerID != user.ID {
		if isFollowing, err = h.followRepository.IsFollowing(ctx, viewerID, user.ID); err != nil {
			return err
		}
	}

	return c.JSON(http.StatusOK, models.UserProfile{
		User:           *user,
		FollowerCount:  followers,
		FollowingCount: following,
		PostCount:      postCount,
		IsFollowing:    isFollowing,
		Posts:          posts,
	})
}

// GetSuggestedUsers lists people the caller does not follow yet
func (h *UserHandler) GetSuggestedUsers(c echo.Context) error {
	limit := queryLimit(c, defaultSuggestLimit, maxSuggestLimit)

	users, err := h.userRepository.GetSuggestedUsers(c.Request().Context(), middleware.UserID(c), limit)
	if err != nil {
		return err
	}

	suggestions := make([]models.UserCompact, len(users))
	for i := range users {
		suggestions[i] = users[i].ToCompact()
	}
	return c.JSON(http.StatusOK, suggestions)
}

// UpdateCurrentUser edits the caller's own profile. Absent fields are left
// unchanged.
func (h *UserHandler) UpdateCurrentUser(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updates := make(map[string]interface{})
	if req.Username != nil {
		updates["username"] = *req.Username
	}
	if req.DisplayName != nil {
		updates["display_name"] = sanitizeText(*req.DisplayName)
	}
	if req.Bio != nil {
		updates["bio"] = sanitizeText(*req.Bio)
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = strings.TrimSpace(*req.AvatarURL)
	}

	if len(updates) > 0 {
		if err := h.userRepository.UpdateUser(ctx, userID, updates); err != nil {
			if repositories.IsUniqueViolation(err) {
				return echo.NewHTTPError(http.StatusBadRequest, "Username is already taken")
			}
			if isNotFound(err) {
				return echo.NewHTTPError(http.StatusNotFound, "User not found")
			}
			return err
		}
	}

	user, err := h.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
