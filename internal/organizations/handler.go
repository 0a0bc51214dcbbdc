package organizations

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hosseinmostafavi2079/roydadpro/internal/models"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/response"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/storage"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/utils"
)

// Handler handles organization HTTP endpoints.
type Handler struct {
	store     Store
	media     storage.Store
	maxUpload int64
	logger    *zap.Logger
}

// NewHandler creates an organizations handler.
func NewHandler(store Store, media storage.Store, maxUpload int64, logger *zap.Logger) *Handler {
	return &Handler{store: store, media: media, maxUpload: maxUpload, logger: logger}
}

// List handles GET /organizations/.
func (h *Handler) List(c *gin.Context) {
	orgs, err := h.store.List(c.Request.Context())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	out := make([]*Response, 0, len(orgs))
	for _, org := range orgs {
		out = append(out, NewResponse(org))
	}
	response.OK(c, out)
}

// Get handles GET /organizations/:id/.
func (h *Handler) Get(c *gin.Context) {
	id, ok := utils.ParseID(c)
	if !ok {
		return
	}
	org, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, NewResponse(org))
}

// Create handles POST /organizations/. Accepts JSON or multipart with a logo file.
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
	org := &models.Organization{}
	req.apply(org)

	logo, ok := h.uploadLogo(c)
	if !ok {
		return
	}
	org.Logo = logo

	if err := h.store.Create(c.Request.Context(), org); err != nil {
		h.discard(c, logo)
		response.Error(c, h.logger, err)
		return
	}
	response.Created(c, NewResponse(org))
}

// Update handles PUT /organizations/:id/.
func (h *Handler) Update(c *gin.Context) { h.update(c, false) }

// Patch handles PATCH /organizations/:id/.
func (h *Handler) Patch(c *gin.Context) { h.update(c, true) }

func (h *Handler) update(c *gin.Context, partial bool) {
	id, ok := utils.ParseID(c)
	if !ok {
		return
	}
	org, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	var req Request
	if partial {
		req = requestFrom(org)
	}
	if err := utils.Bind(c, &req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if msg := req.normalize(); msg != "" {
		response.BadRequest(c, msg)
		return
	}
	req.apply(org)

	logo, ok := h.uploadLogo(c)
	if !ok {
		return
	}
	oldLogo := org.Logo
	if logo != "" {
		org.Logo = logo
	}

	if err := h.store.Update(c.Request.Context(), org); err != nil {
		h.discard(c, logo)
		response.Error(c, h.logger, err)
		return
	}
	if logo != "" {
		h.discard(c, oldLogo)
	}
	response.OK(c, NewResponse(org))
}

// Delete handles DELETE /organizations/:id/.
func (h *Handler) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c)
	if !ok {
		return
	}
	org, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	h.discard(c, org.Logo)
	response.NoContent(c)
}

func (h *Handler) uploadLogo(c *gin.Context) (string, bool) {
	return utils.SaveImage(c, h.media, "logo", storage.FolderOrganizationLogos, h.maxUpload, h.logger)
}

func (h *Handler) discard(c *gin.Context, url string) {
	utils.DiscardImage(c, h.media, url, h.logger)
}
