package menu

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/appetiteclub/dinein/internal/auth"
	"github.com/appetiteclub/dinein/internal/callable"
	"github.com/appetiteclub/dinein/internal/logger"
	"github.com/appetiteclub/dinein/internal/telemetry"
)

type Handler struct {
	service *Service
	logger  logger.Logger
	tlm     *telemetry.HTTP
}

func NewHandler(service *Service, log logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNoopLogger()
	}
	return &Handler{service: service, logger: log, tlm: telemetry.NewHTTP()}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/createMenuItem", h.CreateMenuItem)
	r.Post("/updateMenuItem", h.UpdateMenuItem)
	r.Post("/deleteMenuItem", h.DeleteMenuItem)
	r.Post("/setDailySpecial", h.SetDailySpecial)
	r.Post("/listMenu", h.ListMenu)
}

func (h *Handler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateMenuItem")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var req CreateMenuItemRequest
	if !callable.Decode(w, r, &req, log) {
		return
	}

	item, err := h.service.Create(ctx, auth.CallerID(ctx), req)
	if err != nil {
		callable.Fail(w, log, h.tlm, "createMenuItem", err)
		return
	}

	callable.Respond(w, item)
}

func (h *Handler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateMenuItem")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var req UpdateMenuItemRequest
	if !callable.Decode(w, r, &req, log) {
		return
	}

	item, err := h.service.Update(ctx, auth.CallerID(ctx), req)
	if err != nil {
		callable.Fail(w, log, h.tlm, "updateMenuItem", err)
		return
	}

	callable.Respond(w, item)
}

func (h *Handler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteMenuItem")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var req DeleteMenuItemRequest
	if !callable.Decode(w, r, &req, log) {
		return
	}

	if err := h.service.Delete(ctx, auth.CallerID(ctx), req); err != nil {
		callable.Fail(w, log, h.tlm, "deleteMenuItem", err)
		return
	}

	callable.Respond(w, callable.OK())
}

func (h *Handler) SetDailySpecial(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.SetDailySpecial")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var req SetDailySpecialRequest
	if !callable.Decode(w, r, &req, log) {
		return
	}

	item, err := h.service.SetDailySpecial(ctx, auth.CallerID(ctx), req)
	if err != nil {
		callable.Fail(w, log, h.tlm, "setDailySpecial", err)
		return
	}

	callable.Respond(w, item)
}

func (h *Handler) ListMenu(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListMenu")
	defer finish()

	log := h.log(r)

	var req ListMenuRequest
	if !callable.Decode(w, r, &req, log) {
		return
	}

	items, err := h.service.List(r.Context(), req)
	if err != nil {
		callable.Fail(w, log, h.tlm, "listMenu", err)
		return
	}

	callable.Respond(w, items)
}

func (h *Handler) log(r *http.Request) logger.Logger {
	return callable.RequestLogger(h.logger, r)
}
