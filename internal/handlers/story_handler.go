package handlers

import (
	"net/http"

	"github.com/anonto42/pixgram/backend/internal/middleware"
	"github.com/anonto42/pixgram/backend/internal/models"
	"github.com/anonto42/pixgram/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// StoryHandler handles story-related HTTP requests
type StoryHandler struct {
	storyRepository repositories.StoryRepository
	enricher        *enricher
	uploader        *Uploader
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(storyRepo repositories.StoryRepository, userRepo repositories.UserRepository, uploader *Uploader) *StoryHandler {
	return &StoryHandler{
		storyRepository: storyRepo,
		enricher:        &enricher{users: userRepo},
		uploader:        uploader,
	}
}

// RegisterStoryRoutes registers story-related routes
func (h *StoryHandler) RegisterStoryRoutes(g *echo.Group, guards Guards) {
	g.GET("/stories", h.GetStories)
	g.POST("/stories", h.CreateStory, guards.Active...)
}

// GetStories returns unexpired stories, newest first, with their authors
func (h *StoryHandler) GetStories(c echo.Context) error {
	ctx := c.Request().Context()

	stories, err := h.storyRepository.GetActiveStories(ctx)
	if err != nil {
		return err
	}
	result, err := h.enricher.stories(ctx, stories)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// CreateStory publishes an image or video for the next 24 hours
func (h *StoryHandler) CreateStory(c echo.Context) error {
	ctx := c.Request().Context()

	upload, err := h.uploader.receive(c, "media", "image", "video")
	if err != nil {
		return err
	}
	defer upload.Close()

	if err := h.uploader.persist(ctx, upload); err != nil {
		return err
	}

	story := &models.Story{
		UserID:   middleware.UserID(c),
		MediaURL: upload.URL(),
	}
	if err := h.storyRepository.CreateStory(ctx, story); err != nil {
		h.uploader.discard(ctx, upload)
		return err
	}
	return c.JSON(http.StatusCreated, story)
}
