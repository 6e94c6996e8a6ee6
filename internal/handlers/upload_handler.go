package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/pixgram/backend/pkg/storage"
	"github.com/labstack/echo/v4"
)

// UploadHandler serves stored media back to clients
type UploadHandler struct {
	store storage.Store
}

func NewUploadHandler(store storage.Store) *UploadHandler {
	return &UploadHandler{store: store}
}

func (h *UploadHandler) RegisterUploadRoutes(g *echo.Group) {
	g.GET(uploadURLPrefix+"*", h.ServeUpload)
}

// ServeUpload streams a stored file with its content type
func (h *UploadHandler) ServeUpload(c echo.Context) error {
	body, contentType, err := h.store.Open(c.Request().Context(), c.Param("*"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidName) {
			return echo.NewHTTPError(http.StatusNotFound, "File not found")
		}
		return err
	}
	defer body.Close()

	c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	return c.Stream(http.StatusOK, contentType, body)
}
