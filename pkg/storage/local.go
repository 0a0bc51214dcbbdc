package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Local stores media on disk under root and serves it from baseURL.
type Local struct {
	root    string
	baseURL string
}

// NewLocal creates the media root if needed.
func NewLocal(root, baseURL string) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Local{root: root, baseURL: baseURL}, nil
}

// Root returns the directory media is written to.
func (l *Local) Root() string { return l.root }

func (l *Local) Save(ctx context.Context, folder, filename, contentType string, body io.Reader, size int64) (string, error) {
	ext, ok := ImageExtension(contentType, filename)
	if !ok {
		return "", ErrUnsupportedType
	}
	key := ObjectKey(folder, ext)
	dst := filepath.Join(l.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create media folder: %w", err)
	}
	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("write media file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close media file: %w", err)
	}
	return l.baseURL + key, nil
}

// Delete removes a file previously returned by Save. URLs outside baseURL are ignored.
func (l *Local) Delete(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, l.baseURL)
	if !ok || key == "" || strings.Contains(key, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(l.root, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove media file: %w", err)
	}
	return nil
}
