package users

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hosseinmostafavi2079/roydadpro/internal/middleware"
	"github.com/hosseinmostafavi2079/roydadpro/internal/models"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/response"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/utils"
)

// Handler handles user HTTP endpoints.
type Handler struct {
	store  Store
	logger *zap.Logger
}

// NewHandler creates a users handler.
func NewHandler(store Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// List handles GET /users/.
func (h *Handler) List(c *gin.Context) {
	list, err := h.store.List(c.Request.Context())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	out := make([]*Response, 0, len(list))
	for _, u := range list {
		out = append(out, NewResponse(u))
	}
	response.OK(c, out)
}

// Get handles GET /users/:id/.
func (h *Handler) Get(c *gin.Context) {
	id, ok := utils.ParseID(c)
	if !ok {
		return
	}
	u, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, NewResponse(u))
}

// Me handles GET /users/me/. Requires authentication.
func (h *Handler) Me(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	response.OK(c, NewResponse(u))
}

// Create handles POST /users/.
func (h *Handler) Create(c *gin.Context) {
	var req Request
	if err := utils.Bind(c, &req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if msg := req.normalize(); msg != "" {
		response.BadRequest(c, msg)
		return
	}
	if req.Password == "" {
		response.BadRequest(c, "password: this field is required")
		return
	}
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("hash password", zap.Error(err))
		response.Internal(c, "failed to hash password")
		return
	}

	u := &models.User{Password: hash, IsActive: true}
	req.apply(u)
	if err := h.store.Create(c.Request.Context(), u); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Created(c, NewResponse(u))
}

// Update handles PUT /users/:id/.
func (h *Handler) Update(c *gin.Context) { h.update(c, false) }

// Patch handles PATCH /users/:id/.
func (h *Handler) Patch(c *gin.Context) { h.update(c, true) }

func (h *Handler) update(c *gin.Context, partial bool) {
	id, ok := utils.ParseID(c)
	if !ok {
		return
	}
	u, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	var req Request
	if partial {
		req = requestFrom(u)
	}
	if err := utils.Bind(c, &req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if msg := req.normalize(); msg != "" {
		response.BadRequest(c, msg)
		return
	}
	req.apply(u)
	if req.Password != "" {
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			h.logger.Error("hash password", zap.Error(err), zap.Int64("user_id", id))
			response.Internal(c, "failed to hash password")
			return
		}
		u.Password = hash
	}

	if err := h.store.Update(c.Request.Context(), u); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, NewResponse(u))
}

// Delete handles DELETE /users/:id/. Users holding tickets cannot be deleted.
func (h *Handler) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c)
	if !ok {
		return
	}
	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.NoContent(c)
}
