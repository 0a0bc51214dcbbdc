package events

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hosseinmostafavi2079/roydadpro/internal/middleware"
	"github.com/hosseinmostafavi2079/roydadpro/internal/models"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/response"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/storage"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/utils"
)

// Handler handles event HTTP endpoints.
type Handler struct {
	store     Store
	media     storage.Store
	maxUpload int64
	logger    *zap.Logger
}

// NewHandler creates an events handler.
func NewHandler(store Store, media storage.Store, maxUpload int64, logger *zap.Logger) *Handler {
	return &Handler{store: store, media: media, maxUpload: maxUpload, logger: logger}
}

// List handles GET /events/?search=.
func (h *Handler) List(c *gin.Context) {
	list, err := h.store.List(c.Request.Context(), ListFilter{Search: c.Query("search")})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	out := make([]*Response, 0, len(list))
	for _, e := range list {
		out = append(out, NewResponse(e))
	}
	response.OK(c, out)
}

// Get handles GET /events/:id/.
func (h *Handler) Get(c *gin.Context) {
	id, ok := utils.ParseID(c)
	if !ok {
		return
	}
	e, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, NewResponse(e))
}

// Create handles POST /events/. Must run behind middleware.RequireOrganization;
// the event always belongs to the caller's organization.
func (h *Handler) Create(c *gin.Context) {
	var req Request
	if err := utils.Bind(c, &req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if msg := req.normalize(false); msg != "" {
		response.BadRequest(c, msg)
		return
	}
	e := &models.Event{OrganizationID: middleware.OrganizationID(c)}
	req.apply(e)

	image, ok := utils.SaveImage(c, h.media, "image", storage.FolderEvents, h.maxUpload, h.logger)
	if !ok {
		return
	}
	e.Image = image

	if err := h.store.Create(c.Request.Context(), e); err != nil {
		utils.DiscardImage(c, h.media, image, h.logger)
		response.Error(c, h.logger, err)
		return
	}
	h.respondWithDetails(c, e.ID, true)
}

// Update handles PUT /events/:id/.
func (h *Handler) Update(c *gin.Context) { h.update(c, false) }

// Patch handles PATCH /events/:id/.
func (h *Handler) Patch(c *gin.Context) { h.update(c, true) }

func (h *Handler) update(c *gin.Context, partial bool) {
	id, ok := utils.ParseID(c)
	if !ok {
		return
	}
	e, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	var req Request
	if partial {
		req = requestFrom(e)
	}
	if err := utils.Bind(c, &req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if msg := req.normalize(partial); msg != "" {
		response.BadRequest(c, msg)
		return
	}
	req.apply(e)

	image, ok := utils.SaveImage(c, h.media, "image", storage.FolderEvents, h.maxUpload, h.logger)
	if !ok {
		return
	}
	oldImage := e.Image
	if image != "" {
		e.Image = image
	}
	if err := h.store.Update(c.Request.Context(), e); err != nil {
		utils.DiscardImage(c, h.media, image, h.logger)
		response.Error(c, h.logger, err)
		return
	}
	if image != "" {
		utils.DiscardImage(c, h.media, oldImage, h.logger)
	}
	h.respondWithDetails(c, e.ID, false)
}

// Delete handles DELETE /events/:id/. Events with tickets cannot be deleted.
func (h *Handler) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c)
	if !ok {
		return
	}
	e, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	utils.DiscardImage(c, h.media, e.Image, h.logger)
	response.NoContent(c)
}

// respondWithDetails reloads the event so the nested details reflect the stored references.
func (h *Handler) respondWithDetails(c *gin.Context, id int64, created bool) {
	e, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	if created {
		response.Created(c, NewResponse(e))
		return
	}
	response.OK(c, NewResponse(e))
}
