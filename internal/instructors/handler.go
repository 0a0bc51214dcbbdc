package instructors

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hosseinmostafavi2079/roydadpro/internal/middleware"
	"github.com/hosseinmostafavi2079/roydadpro/internal/models"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/response"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/storage"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/utils"
)

// Handler handles instructor HTTP endpoints.
type Handler struct {
	store     Store
	media     storage.Store
	maxUpload int64
	logger    *zap.Logger
}

// NewHandler creates an instructors handler.
func NewHandler(store Store, media storage.Store, maxUpload int64, logger *zap.Logger) *Handler {
	return &Handler{store: store, media: media, maxUpload: maxUpload, logger: logger}
}

// List handles GET /instructors/.
func (h *Handler) List(c *gin.Context) {
	list, err := h.store.List(c.Request.Context())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	out := make([]*Response, 0, len(list))
	for _, in := range list {
		out = append(out, NewResponse(in))
	}
	response.OK(c, out)
}

// Get handles GET /instructors/:id/.
func (h *Handler) Get(c *gin.Context) {
	id, ok := utils.ParseID(c)
	if !ok {
		return
	}
	in, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, NewResponse(in))
}

// Create handles POST /instructors/. Must run behind middleware.RequireOrganization.
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
	in := &models.Instructor{OrganizationID: middleware.OrganizationID(c)}
	req.apply(in)

	image, ok := utils.SaveImage(c, h.media, "image", storage.FolderInstructors, h.maxUpload, h.logger)
	if !ok {
		return
	}
	in.Image = image

	if err := h.store.Create(c.Request.Context(), in); err != nil {
		utils.DiscardImage(c, h.media, image, h.logger)
		response.Error(c, h.logger, err)
		return
	}
	response.Created(c, NewResponse(in))
}

// Update handles PUT /instructors/:id/.
func (h *Handler) Update(c *gin.Context) { h.update(c, false) }

// Patch handles PATCH /instructors/:id/.
func (h *Handler) Patch(c *gin.Context) { h.update(c, true) }

func (h *Handler) update(c *gin.Context, partial bool) {
	id, ok := utils.ParseID(c)
	if !ok {
		return
	}
	in, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	var req Request
	if partial {
		req = requestFrom(in)
	}
	if err := utils.Bind(c, &req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if msg := req.normalize(); msg != "" {
		response.BadRequest(c, msg)
		return
	}
	req.apply(in)

	image, ok := utils.SaveImage(c, h.media, "image", storage.FolderInstructors, h.maxUpload, h.logger)
	if !ok {
		return
	}
	oldImage := in.Image
	if image != "" {
		in.Image = image
	}
	if err := h.store.Update(c.Request.Context(), in); err != nil {
		utils.DiscardImage(c, h.media, image, h.logger)
		response.Error(c, h.logger, err)
		return
	}
	if image != "" {
		utils.DiscardImage(c, h.media, oldImage, h.logger)
	}
	response.OK(c, NewResponse(in))
}

// Delete handles DELETE /instructors/:id/.
func (h *Handler) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c)
	if !ok {
		return
	}
	in, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	utils.DiscardImage(c, h.media, in.Image, h.logger)
	response.NoContent(c)
}
