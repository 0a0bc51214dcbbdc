package auth

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hosseinmostafavi2079/roydadpro/internal/models"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/database"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/response"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/utils"
)

// UserStore is the user lookup the token endpoints need.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// ObtainRequest is the body for POST /token/.
type ObtainRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest is the body for POST /token/refresh/ and /token/blacklist/.
type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// AccessResponse is returned by the refresh endpoint.
type AccessResponse struct {
	Access string `json:"access"`
}

// Handler handles token HTTP endpoints.
type Handler struct {
	users     UserStore
	jwt       *JWTService
	blacklist Blacklist
	logger    *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(users UserStore, jwt *JWTService, blacklist Blacklist, logger *zap.Logger) *Handler {
	return &Handler{users: users, jwt: jwt, blacklist: blacklist, logger: logger}
}

// Obtain handles POST /token/.
func (h *Handler) Obtain(c *gin.Context) {
	var req ObtainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.users.GetByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			response.Error(c, h.logger, err)
			return
		}
		response.Unauthorized(c, "no active account found with the given credentials")
		return
	}
	if !user.IsActive || !utils.CheckPassword(req.Password, user.Password) {
		response.Unauthorized(c, "no active account found with the given credentials")
		return
	}

	pair, err := h.jwt.IssuePair(user.ID)
	if err != nil {
		h.logger.Error("issue token pair", zap.Error(err), zap.Int64("user_id", user.ID))
		response.Internal(c, "failed to generate token")
		return
	}
	response.OK(c, pair)
}

// Refresh handles POST /token/refresh/.
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	claims, ok := h.validRefresh(c, req.Refresh)
	if !ok {
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil || !user.IsActive {
		if err != nil && !errors.Is(err, database.ErrNotFound) {
			response.Error(c, h.logger, err)
			return
		}
		response.Unauthorized(c, "user not found or inactive")
		return
	}

	access, err := h.jwt.IssueAccess(user.ID)
	if err != nil {
		h.logger.Error("issue access token", zap.Error(err), zap.Int64("user_id", user.ID))
		response.Internal(c, "failed to generate token")
		return
	}
	response.OK(c, AccessResponse{Access: access})
}

// Blacklist handles POST /token/blacklist/. The refresh token cannot be used afterwards.
func (h *Handler) Blacklist(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	claims, ok := h.validRefresh(c, req.Refresh)
	if !ok {
		return
	}
	if err := h.blacklist.Add(c.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
		h.logger.Error("blacklist refresh token", zap.Error(err), zap.Int64("user_id", claims.UserID))
		response.Internal(c, "failed to revoke token")
		return
	}
	response.NoContent(c)
}

// validRefresh writes the error response itself when the token is unusable.
func (h *Handler) validRefresh(c *gin.Context, token string) (*Claims, bool) {
	claims, err := h.jwt.Validate(token, TokenRefresh)
	if err != nil {
		response.Unauthorized(c, "token is invalid or expired")
		return nil, false
	}
	revoked, err := h.blacklist.Contains(c.Request.Context(), claims.ID)
	if err != nil {
		h.logger.Error("check token blacklist", zap.Error(err))
		response.Internal(c, "failed to check token")
		return nil, false
	}
	if revoked {
		response.Unauthorized(c, "token is blacklisted")
		return nil, false
	}
	return claims, true
}
