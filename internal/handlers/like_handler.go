package handlers

import (
	"net/http"

	"github.com/anonto42/pixgram/backend/internal/middleware"
	"github.com/anonto42/pixgram/backend/internal/models"
	"github.com/anonto42/pixgram/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likeRepository repositories.LikeRepository
	postRepository repositories.PostRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository, postRepo repositories.PostRepository) *LikeHandler {
	return &LikeHandler{
		likeRepository: likeRepo,
		postRepository: postRepo,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group, guards Guards) {
	g.POST("/posts/:id/like", h.ToggleLike, guards.Active...)
}

// ToggleLike likes the post, or removes the caller's like if present
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	ctx := c.Request().Context()
	postID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if _, err := h.postRepository.GetPostByID(ctx, postID); err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return err
	}

	liked, err := h.likeRepository.ToggleLike(ctx, middleware.UserID(c), postID)
	if err != nil {
		if repositories.IsForeignKeyViolation(err) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return err
	}
	count, err := h.likeRepository.GetLikesCountByPostID(ctx, postID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, models.LikeToggleResponse{Liked: liked, LikeCount: count})
}
