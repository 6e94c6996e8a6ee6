package handlers

import (
	"net/http"

	"github.com/anonto42/pixgram/backend/internal/middleware"
	"github.com/anonto42/pixgram/backend/internal/models"
	"github.com/anonto42/pixgram/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
	userRepository    repositories.UserRepository
	enricher          *enricher
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(
	commentRepo repositories.CommentRepository,
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	likeRepo repositories.LikeRepository,
) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
		userRepository:    userRepo,
		enricher:          newEnricher(userRepo, likeRepo, commentRepo),
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group, guards Guards) {
	g.GET("/posts/:id/comments", h.GetCommentsForPost)
	g.POST("/posts/:id/comments", h.CreateComment, guards.Active...)
	g.DELETE("/comments/:id", h.DeleteComment, guards.Active...)
}

// GetCommentsForPost returns every comment on a post, newest first
func (h *CommentHandler) GetCommentsForPost(c echo.Context) error {
	ctx := c.Request().Context()
	postID, err := h.existingPostID(c)
	if err != nil {
		return err
	}

	comments, err := h.commentRepository.GetCommentsByPostID(ctx, postID)
	if err != nil {
		return err
	}
	result, err := h.enricher.commentList(ctx, comments)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// CreateComment adds a comment to a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	ctx := c.Request().Context()
	postID, err := h.existingPostID(c)
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	req.Text = sanitizeText(req.Text)
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment := &models.Comment{
		PostID: postID,
		UserID: middleware.UserID(c),
		Text:   req.Text,
	}
	if err := h.commentRepository.CreateComment(ctx, comment); err != nil {
		if repositories.IsForeignKeyViolation(err) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return err
	}

	result, err := h.enricher.commentList(ctx, []models.Comment{*comment})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, result[0])
}

// DeleteComment removes a comment. Only its author may do so.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	ctx := c.Request().Context()
	commentID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	comment, err := h.commentRepository.GetCommentByID(ctx, commentID)
	if err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return err
	}
	if comment.UserID != middleware.UserID(c) {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this comment")
	}

	if err := h.commentRepository.DeleteComment(ctx, commentID); err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CommentHandler) existingPostID(c echo.Context) (uint, error) {
	postID, err := idParam(c, "id")
	if err != nil {
		return 0, err
	}
	if _, err := h.postRepository.GetPostByID(c.Request().Context(), postID); err != nil {
		if isNotFound(err) {
			return 0, echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return 0, err
	}
	return postID, nil
}
