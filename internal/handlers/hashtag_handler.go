package handlers

import (
	"net/http"

	"github.com/anonto42/pixgram/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

type HashtagHandler struct {
	postRepository repositories.PostRepository
}

func NewHashtagHandler(postRepo repositories.PostRepository) *HashtagHandler {
	return &HashtagHandler{postRepository: postRepo}
}

func (h *HashtagHandler) RegisterHashtagRoutes(g *echo.Group) {
	g.GET("/hashtags/trending", h.GetTrending)
}

// GetTrending ranks hashtags across all captions by how often they occur
func (h *HashtagHandler) GetTrending(c echo.Context) error {
	limit := queryLimit(c, defaultTrendingLimit, maxTrendingLimit)

	trending, err := h.postRepository.GetTrendingHashtags(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trending)
}
