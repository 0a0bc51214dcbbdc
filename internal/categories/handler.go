package categories

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hosseinmostafavi2079/roydadpro/internal/middleware"
	"github.com/hosseinmostafavi2079/roydadpro/internal/models"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/response"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/utils"
)

// Handler handles category HTTP endpoints.
type Handler struct {
	store  Store
	logger *zap.Logger
}

// NewHandler creates a categories handler.
func NewHandler(store Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// List handles GET /categories/.
func (h *Handler) List(c *gin.Context) {
	list, err := h.store.List(c.Request.Context())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	out := make([]*Response, 0, len(list))
	for _, cat := range list {
		out = append(out, NewResponse(cat))
	}
	response.OK(c, out)
}

// Get handles GET /categories/:id/.
func (h *Handler) Get(c *gin.Context) {
	id, ok := utils.ParseID(c)
	if !ok {
		return
	}
	cat, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, NewResponse(cat))
}

// Create handles POST /categories/. Must run behind middleware.RequireOrganization.
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
	orgID := middleware.OrganizationID(c)
	cat := &models.Category{OrganizationID: &orgID}
	req.apply(cat)
	if err := h.store.Create(c.Request.Context(), cat); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Created(c, NewResponse(cat))
}

// Update handles PUT and PATCH /categories/:id/.
func (h *Handler) Update(c *gin.Context) {
	id, ok := utils.ParseID(c)
	if !ok {
		return
	}
	cat, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	req := Request{Title: cat.Title}
	if c.Request.Method == http.MethodPut {
		req = Request{}
	}
	if err := utils.Bind(c, &req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if msg := req.normalize(); msg != "" {
		response.BadRequest(c, msg)
		return
	}
	req.apply(cat)
	if err := h.store.Update(c.Request.Context(), cat); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, NewResponse(cat))
}

// Delete handles DELETE /categories/:id/.
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
