package handlers

import (
	"net/http"

	"github.com/anonto42/pixgram/backend/internal/middleware"
	"github.com/anonto42/pixgram/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	postRepository   repositories.PostRepository
	followRepository repositories.FollowRepository
	enricher         *enricher
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	likeRepo repositories.LikeRepository,
	commentRepo repositories.CommentRepository,
) *FeedHandler {
	return &FeedHandler{
		postRepository:   postRepo,
		followRepository: followRepo,
		enricher:         newEnricher(userRepo, likeRepo, commentRepo),
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group, guards Guards) {
	g.GET("/feed", h.GetFeed, guards.Authenticated...)
}

// GetFeed returns the caller's posts and those of everyone they follow,
// newest first
func (h *FeedHandler) GetFeed(c echo.Context) error {
	ctx := c.Request().Context()
	currentUserID := middleware.UserID(c)
	limit := queryLimit(c, defaultPostLimit, maxPostLimit)
	offset := queryOffset(c)

	authors, err := h.followRepository.GetFollowingIDs(ctx, currentUserID)
	if err != nil {
		return err
	}
	authors = append(authors, currentUserID)

	posts, err := h.postRepository.GetPostsByUserIDs(ctx, authors, limit, offset)
	if err != nil {
		return err
	}
	details, err := h.enricher.posts(ctx, currentUserID, posts)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, details)
}
