package handlers

import (
	"log/slog"
	"net/http"

	"github.com/anonto42/pixgram/backend/internal/middleware"
	"github.com/anonto42/pixgram/backend/internal/models"
	"github.com/anonto42/pixgram/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository  repositories.PostRepository
	userRepository  repositories.UserRepository
	auditRepository repositories.AuditRepository // nil when no audit store is configured
	enricher        *enricher
	uploader        *Uploader
	logger          *slog.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	likeRepo repositories.LikeRepository,
	commentRepo repositories.CommentRepository,
	auditRepo repositories.AuditRepository,
	uploader *Uploader,
	logger *slog.Logger,
) *PostHandler {
	return &PostHandler{
		postRepository:  postRepo,
		userRepository:  userRepo,
		auditRepository: auditRepo,
		enricher:        newEnricher(userRepo, likeRepo, commentRepo),
		uploader:        uploader,
		logger:          logger,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group, guards Guards) {
	g.GET("/posts", h.GetPosts, guards.Viewer...)
	g.GET("/posts/:id", h.GetPost, guards.Viewer...)
	g.POST("/posts", h.CreatePost, guards.Active...)
	g.DELETE("/posts/:id", h.DeletePost, guards.Active...)
}

// GetPosts returns a page of posts, newest first, with their details
func (h *PostHandler) GetPosts(c echo.Context) error {
	ctx := c.Request().Context()
	limit := queryLimit(c, defaultPostLimit, maxPostLimit)
	offset := queryOffset(c)

	posts, err := h.postRepository.GetAllPosts(ctx, limit, offset)
	if err != nil {
		return err
	}
	details, err := h.enricher.posts(ctx, middleware.UserID(c), posts)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, details)
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	ctx := c.Request().Context()
	postID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return err
	}
	details, err := h.enricher.post(ctx, middleware.UserID(c), *post)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, details)
}

// CreatePost stores the uploaded image and creates a post for it
func (h *PostHandler) CreatePost(c echo.Context) error {
	ctx := c.Request().Context()

	upload, err := h.uploader.receive(c, "image", "image")
	if err != nil {
		return err
	}
	defer upload.Close()

	req := models.CreatePostRequest{
		UserID:   middleware.UserID(c),
		Caption:  sanitizeText(c.FormValue("caption")),
		Location: sanitizeText(c.FormValue("location")),
		ImageURL: upload.URL(),
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.uploader.persist(ctx, upload); err != nil {
		return err
	}

	post := &models.Post{
		UserID:   req.UserID,
		Caption:  req.Caption,
		ImageURL: req.ImageURL,
	}
	if req.Location != "" {
		post.Location = &req.Location
	}
	if err := h.postRepository.CreatePost(ctx, post); err != nil {
		h.uploader.discard(ctx, upload)
		return err
	}

	return c.JSON(http.StatusCreated, post)
}

// DeletePost deletes a post with its likes and comments. Owners may delete
// their own posts; admins may delete any.
func (h *PostHandler) DeletePost(c echo.Context) error {
	ctx := c.Request().Context()
	currentUserID := middleware.UserID(c)
	postID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return err
	}

	moderated := false
	if post.UserID != currentUserID {
		caller, err := h.userRepository.GetUserByID(ctx, currentUserID)
		if err != nil {
			return err
		}
		if !caller.IsAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this post")
		}
		moderated = true
	}

	if err := h.postRepository.DeletePost(ctx, postID); err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return err
	}

	if moderated {
		recordModeration(c, h.auditRepository, h.logger, models.ActionDeletePost, post.UserID, "")
	}
	return c.NoContent(http.StatusNoContent)
}
