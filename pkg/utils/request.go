package utils

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/hosseinmostafavi2079/roydadpro/pkg/response"
)

// ParseID reads the :id path parameter. On failure it writes a 404 and returns false,
// since a non-numeric id can never match a row.
func ParseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.NotFound(c, "not found")
		return 0, false
	}
	return id, true
}

// Bind decodes a JSON or form body into obj and validates it. An empty body
// only validates, so a PATCH without fields keeps the prefilled values.
func Bind(c *gin.Context, obj any) error {
	if c.Request.ContentLength == 0 {
		return binding.Validator.ValidateStruct(obj)
	}
	return c.ShouldBind(obj)
}

// IsMultipart reports whether the request body is multipart/form-data.
func IsMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// FormFile returns the uploaded file for field, or nil when the request is not
// multipart or carries no such file.
func FormFile(c *gin.Context, field string) (*multipart.FileHeader, error) {
	if !IsMultipart(c) {
		return nil, nil
	}
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	return fh, err
}

// QueryBool reads a boolean query flag such as ?mine=1 or ?mine=true.
func QueryBool(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(c.Query(key))
	return err == nil && v
}

// NilIfZero turns the 0 sent by form posts for "no reference" into nil.
func NilIfZero(id *int64) *int64 {
	if id == nil || *id == 0 {
		return nil
	}
	return id
}

// NilIfEmpty returns nil for an empty string, otherwise a pointer to s.
func NilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// CopyPtr copies a pointer's target so decoding into a prefilled request never
// writes through to the stored model.
func CopyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
