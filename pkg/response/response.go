package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hosseinmostafavi2079/roydadpro/pkg/database"
)

// Machine-readable error codes carried in Body.Code.
const (
	CodeValidation           = "invalid"
	CodeNotAuthenticated     = "not_authenticated"
	CodeOrganizationRequired = "organization_required"
	CodeNotFound             = "not_found"
	CodeUnique               = "unique"
	CodeProtectedReference   = "protected_reference"
	CodeInvalidReference     = "invalid_reference"
	CodeTicketCodeConflict   = "ticket_code_conflict"
	CodeThrottled            = "throttled"
)

// Body is the standard API response envelope.
type Body struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
	Field   string      `json:"field,omitempty"`
}

// OK sends a 200 JSON response with data.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Body{Success: true, Data: data})
}

// Created sends a 201 JSON response with data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Body{Success: true, Data: data})
}

// NoContent sends 204.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Fail sends an error envelope with an explicit status and code.
func Fail(c *gin.Context, status int, code, msg string) {
	c.JSON(status, Body{Success: false, Error: msg, Code: code})
}

// BadRequest sends 400 with error message.
func BadRequest(c *gin.Context, err string) {
	Fail(c, http.StatusBadRequest, CodeValidation, err)
}

// Unauthorized sends 401.
func Unauthorized(c *gin.Context, err string) {
	Fail(c, http.StatusUnauthorized, CodeNotAuthenticated, err)
}

// NotFound sends 404.
func NotFound(c *gin.Context, err string) {
	Fail(c, http.StatusNotFound, CodeNotFound, err)
}

// Conflict sends 409.
func Conflict(c *gin.Context, code, err string) {
	Fail(c, http.StatusConflict, code, err)
}

// TooManyRequests sends 429.
func TooManyRequests(c *gin.Context, err string) {
	Fail(c, http.StatusTooManyRequests, CodeThrottled, err)
}

// Internal sends 500.
func Internal(c *gin.Context, err string) {
	c.JSON(http.StatusInternalServerError, Body{Success: false, Error: err})
}

// Error maps a repository error to its HTTP response. Errors outside the
// database taxonomy are logged and reported as 500.
func Error(c *gin.Context, logger *zap.Logger, err error) {
	var conflict *database.ConflictError
	switch {
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, Body{Success: false, Error: conflict.Error(), Code: CodeUnique, Field: conflict.Field})
	case errors.Is(err, database.ErrNotFound):
		NotFound(c, "not found")
	case errors.Is(err, database.ErrProtected):
		Conflict(c, CodeProtectedReference, "cannot delete: tickets still reference this record")
	case errors.Is(err, database.ErrInvalidReference):
		Fail(c, http.StatusBadRequest, CodeInvalidReference, "referenced record does not exist")
	case errors.Is(err, database.ErrCheckViolation):
		BadRequest(c, "value out of range")
	default:
		logger.Error("request failed",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
		)
		Internal(c, "internal server error")
	}
}
