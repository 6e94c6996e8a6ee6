// Package storage keeps uploaded media, either on local disk or in an
// S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"io"
	"mime"
	"path/filepath"
	"strings"
)

var (
	// ErrNotFound is returned by Open when no object has the given name.
	ErrNotFound = errors.New("storage: object not found")
	// ErrInvalidName is returned for names that are not a single plain file name.
	ErrInvalidName = errors.New("storage: invalid object name")
)

// Store saves and serves uploaded files by flat object name.
type Store interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, name string) (io.ReadCloser, string, error)
	// Delete removes name. Deleting a missing object is not an error.
	Delete(ctx context.Context, name string) error
}

func checkName(name string) error {
	if name == "" || strings.HasPrefix(name, ".") || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return ErrInvalidName
	}
	return nil
}

func contentTypeOf(name string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
