package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hosseinmostafavi2079/roydadpro/pkg/response"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/storage"
)

// SaveImage stores the optional image uploaded as field and returns its URL,
// or "" when none was sent. On failure it writes the response and returns false.
func SaveImage(c *gin.Context, media storage.Store, field, folder string, maxBytes int64, logger *zap.Logger) (string, bool) {
	fh, err := FormFile(c, field)
	if err != nil {
		response.BadRequest(c, field+": "+err.Error())
		return "", false
	}
	if fh == nil {
		return "", true
	}
	url, err := storage.SaveUpload(c.Request.Context(), media, fh, folder, maxBytes)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedType) || errors.Is(err, storage.ErrTooLarge) {
			response.BadRequest(c, field+": "+err.Error())
			return "", false
		}
		logger.Error("save upload", zap.Error(err), zap.String("field", field), zap.String("folder", folder))
		response.Internal(c, "failed to store "+field)
		return "", false
	}
	return url, true
}

// DiscardImage deletes a stored image, logging instead of failing the request.
func DiscardImage(c *gin.Context, media storage.Store, url string, logger *zap.Logger) {
	if url == "" {
		return
	}
	if err := media.Delete(c.Request.Context(), url); err != nil {
		logger.Warn("delete media", zap.Error(err), zap.String("url", url))
	}
}
