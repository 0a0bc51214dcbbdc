package storage

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalSaveAndDelete(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocal(root, "/media")
	require.NoError(t, err)

	url, err := store.Save(context.Background(), FolderEvents, "poster.JPEG", "image/jpeg", strings.NewReader("jpegdata"), 8)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "/media/events/"), url)
	require.True(t, strings.HasSuffix(url, ".jpg"), url)

	onDisk := filepath.Join(root, strings.TrimPrefix(url, "/media/"))
	data, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	require.Equal(t, "jpegdata", string(data))

	require.NoError(t, store.Delete(context.Background(), url))
	_, err = os.Stat(onDisk)
	require.True(t, os.IsNotExist(err))

	// Unknown and already-removed URLs are ignored.
	require.NoError(t, store.Delete(context.Background(), url))
	require.NoError(t, store.Delete(context.Background(), "https://cdn.example.com/x.png"))
}

func TestLocalRejectsNonImages(t *testing.T) {
	store, err := NewLocal(t.TempDir(), "/media/")
	require.NoError(t, err)
	_, err = store.Save(context.Background(), FolderEvents, "notes.txt", "text/plain", strings.NewReader("x"), 1)
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestImageExtension(t *testing.T) {
	ext, ok := ImageExtension("", "logo.PNG")
	require.True(t, ok)
	require.Equal(t, ".png", ext)

	ext, ok = ImageExtension("image/webp", "blob")
	require.True(t, ok)
	require.Equal(t, ".webp", ext)

	_, ok = ImageExtension("video/mp4", "clip.mp4")
	require.False(t, ok)
}

func TestSaveUploadEnforcesLimit(t *testing.T) {
	fh := multipartFile(t, "image", "big.png", bytes.Repeat([]byte("a"), 64))
	store, err := NewLocal(t.TempDir(), "/media/")
	require.NoError(t, err)

	_, err = SaveUpload(context.Background(), store, fh, FolderInstructors, 32)
	require.ErrorIs(t, err, ErrTooLarge)

	url, err := SaveUpload(context.Background(), store, fh, FolderInstructors, 1024)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "/media/instructors/"))
}

func multipartFile(t *testing.T, field, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File[field][0]
}
