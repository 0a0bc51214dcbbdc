package tickets

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hosseinmostafavi2079/roydadpro/internal/middleware"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/response"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/utils"
)

// Handler handles ticket HTTP endpoints. Every route runs behind middleware.RequireAuth.
type Handler struct {
	store   Store
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a tickets handler.
func NewHandler(store Store, service *Service, logger *zap.Logger) *Handler {
	return &Handler{store: store, service: service, logger: logger}
}

// List handles GET /tickets/. ?mine=1 restricts the list to the caller's tickets.
func (h *Handler) List(c *gin.Context) {
	var f ListFilter
	if utils.QueryBool(c, "mine") {
		if user, ok := middleware.CurrentUser(c); ok {
			f.UserID = &user.ID
		}
	}
	list, err := h.store.List(c.Request.Context(), f)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	out := make([]*Response, 0, len(list))
	for _, t := range list {
		out = append(out, NewResponse(t))
	}
	response.OK(c, out)
}

// Get handles GET /tickets/:id/.
func (h *Handler) Get(c *gin.Context) {
	id, ok := utils.ParseID(c)
	if !ok {
		return
	}
	t, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, NewResponse(t))
}

// Create handles POST /tickets/: the caller buys a ticket for themselves.
func (h *Handler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "authentication credentials were not provided")
		return
	}
	var req CreateRequest
	if err := utils.Bind(c, &req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	t, err := h.service.Purchase(c.Request.Context(), user.ID, req.Event, *req.PricePaid)
	if err != nil {
		if errors.Is(err, ErrCodeExhausted) {
			response.Conflict(c, response.CodeTicketCodeConflict, "could not allocate a ticket code, please retry")
			return
		}
		response.Error(c, h.logger, err)
		return
	}
	h.logger.Info("ticket purchased",
		zap.Int64("ticket_id", t.ID),
		zap.Int64("user_id", user.ID),
		zap.Int64("event_id", t.EventID),
	)

	detailed, err := h.store.GetByID(c.Request.Context(), t.ID)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Created(c, NewResponse(detailed))
}

// Update handles PUT /tickets/:id/.
func (h *Handler) Update(c *gin.Context) { h.update(c, false) }

// Patch handles PATCH /tickets/:id/.
func (h *Handler) Patch(c *gin.Context) { h.update(c, true) }

func (h *Handler) update(c *gin.Context, partial bool) {
	id, ok := utils.ParseID(c)
	if !ok {
		return
	}
	t, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	var req UpdateRequest
	if partial {
		req = updateFrom(t)
	}
	if err := utils.Bind(c, &req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if msg := req.check(t); msg != "" {
		response.BadRequest(c, msg)
		return
	}
	req.apply(t)

	if err := h.store.Update(c.Request.Context(), t); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	updated, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, NewResponse(updated))
}

// Delete handles DELETE /tickets/:id/.
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
