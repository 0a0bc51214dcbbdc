package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hosseinmostafavi2079/roydadpro/internal/auth"
	"github.com/hosseinmostafavi2079/roydadpro/internal/models"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/database"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/response"
)

const (
	// ContextUser is the key for the authenticated *models.User in gin context.
	ContextUser = "user"
	// ContextOrganizationID is the key for the caller's organization id, set by RequireOrganization.
	ContextOrganizationID = "organization_id"
)

// UserLoader loads the user a token was issued to.
type UserLoader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// Authenticate resolves a bearer access token to a user. Requests without an
// Authorization header continue anonymously; a bad token is rejected with 401.
func Authenticate(jwtService *auth.JWTService, users UserLoader, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.Unauthorized(c, "invalid authorization header")
			c.Abort()
			return
		}
		claims, err := jwtService.Validate(parts[1], auth.TokenAccess)
		if err != nil {
			response.Unauthorized(c, "given token not valid for any token type")
			c.Abort()
			return
		}
		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if !errors.Is(err, database.ErrNotFound) {
				logger.Error("load token user", zap.Error(err), zap.Int64("user_id", claims.UserID))
				response.Internal(c, "internal server error")
				c.Abort()
				return
			}
			response.Unauthorized(c, "user not found")
			c.Abort()
			return
		}
		if !user.IsActive {
			response.Unauthorized(c, "user is inactive")
			c.Abort()
			return
		}
		c.Set(ContextUser, user)
		c.Next()
	}
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			response.Unauthorized(c, "authentication credentials were not provided")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user, if any.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok && u != nil
}
