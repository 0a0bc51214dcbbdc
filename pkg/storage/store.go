package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Media folders, relative to the media root or bucket.
const (
	FolderOrganizationLogos = "organizations/logos"
	FolderInstructors       = "instructors"
	FolderEvents            = "events"
)

var (
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrTooLarge        = errors.New("file too large")
)

// Allowed image MIME types and extensions.
var (
	AllowedImageTypes = map[string]string{
		"image/jpeg": ".jpg",
		"image/jpg":  ".jpg",
		"image/png":  ".png",
		"image/webp": ".webp",
		"image/gif":  ".gif",
	}
	AllowedImageExtensions = map[string]string{
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
		".webp": "image/webp",
		".gif":  "image/gif",
	}
)

// Store persists uploaded media and returns the URL clients use to fetch it.
type Store interface {
	Save(ctx context.Context, folder, filename, contentType string, body io.Reader, size int64) (string, error)
	Delete(ctx context.Context, url string) error
}

// ImageExtension returns the canonical extension for an upload, preferring the
// file name extension and falling back to the content type.
func ImageExtension(contentType, filename string) (string, bool) {
	ext := strings.ToLower(path.Ext(filename))
	if _, ok := AllowedImageExtensions[ext]; ok {
		if ext == ".jpeg" {
			ext = ".jpg"
		}
		return ext, true
	}
	ct := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if ext, ok := AllowedImageTypes[ct]; ok {
		return ext, true
	}
	return "", false
}

// ContentTypeForFilename returns the MIME type for an image filename extension.
func ContentTypeForFilename(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if ct, ok := AllowedImageExtensions[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}

// ObjectKey returns folder/{uuid}{ext}.
func ObjectKey(folder, ext string) string {
	return path.Join(folder, uuid.New().String()+ext)
}

// SaveUpload validates a multipart image and writes it to store.
func SaveUpload(ctx context.Context, store Store, fh *multipart.FileHeader, folder string, maxBytes int64) (string, error) {
	if maxBytes > 0 && fh.Size > maxBytes {
		return "", ErrTooLarge
	}
	contentType := fh.Header.Get("Content-Type")
	if _, ok := ImageExtension(contentType, fh.Filename); !ok {
		return "", ErrUnsupportedType
	}
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = ContentTypeForFilename(fh.Filename)
	}
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	return store.Save(ctx, folder, fh.Filename, contentType, f, fh.Size)
}
