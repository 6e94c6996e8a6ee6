package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/anonto42/pixgram/backend/pkg/storage"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const uploadURLPrefix = "/uploads/"

// Uploader accepts multipart media and hands it to the storage backend.
type Uploader struct {
	store  storage.Store
	logger *slog.Logger
}

func NewUploader(store storage.Store, logger *slog.Logger) *Uploader {
	return &Uploader{store: store, logger: logger}
}

// pendingUpload is a received file that has been named but not yet stored.
type pendingUpload struct {
	file        multipart.File
	name        string
	contentType string
	size        int64
}

func (p *pendingUpload) URL() string {
	return uploadURLPrefix + p.name
}

func (p *pendingUpload) Close() error {
	return p.file.Close()
}

// receive opens the file sent in field and checks its sniffed content type
// against the accepted top-level kinds ("image", "video").
func (u *Uploader) receive(c echo.Context, field string, kinds ...string) (*pendingUpload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return nil, he
		}
		return nil, echo.NewHTTPError(http.StatusBadRequest, field+" file is required")
	}

	file, err := fh.Open()
	if err != nil {
		return nil, err
	}

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	if !acceptedKind(mtype.String(), kinds) {
		file.Close()
		return nil, echo.NewHTTPError(http.StatusBadRequest, field+" must be of type "+strings.Join(kinds, " or "))
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return nil, err
	}

	return &pendingUpload{
		file:        file,
		name:        uuid.NewString() + mtype.Extension(),
		contentType: mtype.String(),
		size:        fh.Size,
	}, nil
}

func (u *Uploader) persist(ctx context.Context, p *pendingUpload) error {
	return u.store.Save(ctx, p.name, p.file, p.size, p.contentType)
}

// discard removes a persisted upload whose owning row could not be written.
func (u *Uploader) discard(ctx context.Context, p *pendingUpload) {
	if err := u.store.Delete(context.WithoutCancel(ctx), p.name); err != nil {
		u.logger.Warn("failed to remove orphaned upload", "name", p.name, "error", err)
	}
}

func acceptedKind(contentType string, kinds []string) bool {
	for _, kind := range kinds {
		if strings.HasPrefix(contentType, kind+"/") {
			return true
		}
	}
	return false
}
