package customer

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
	r.Post("/createPIP", h.CreatePIP)
	r.Post("/updatePIP", h.UpdatePIP)
	r.Post("/deletePIP", h.DeletePIP)
	r.Post("/listPIPs", h.ListPIPs)
}

func (h *Handler) CreatePIP(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreatePIP")
	defer finish()

	log := callable.RequestLogger(h.logger, r)
	ctx := r.Context()

	var req CreatePIPRequest
	if !callable.Decode(w, r, &req, log) {
		return
	}

	p, err := h.service.Create(ctx, auth.CallerID(ctx), req)
	if err != nil {
		callable.Fail(w, log, h.tlm, "createPIP", err)
		return
	}

	callable.Respond(w, p)
}

func (h *Handler) UpdatePIP(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdatePIP")
	defer finish()

	log := callable.RequestLogger(h.logger, r)
	ctx := r.Context()

	var req UpdatePIPRequest
	if !callable.Decode(w, r, &req, log) {
		return
	}

	p, err := h.service.Update(ctx, auth.CallerID(ctx), req)
	if err != nil {
		callable.Fail(w, log, h.tlm, "updatePIP", err)
		return
	}

	callable.Respond(w, p)
}

func (h *Handler) DeletePIP(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeletePIP")
	defer finish()

	log := callable.RequestLogger(h.logger, r)
	ctx := r.Context()

	var req DeletePIPRequest
	if !callable.Decode(w, r, &req, log) {
		return
	}

	if err := h.service.Delete(ctx, auth.CallerID(ctx), req); err != nil {
		callable.Fail(w, log, h.tlm, "deletePIP", err)
		return
	}

	callable.Respond(w, callable.OK())
}

func (h *Handler) ListPIPs(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListPIPs")
	defer finish()

	log := callable.RequestLogger(h.logger, r)
	ctx := r.Context()

	list, err := h.service.List(ctx, auth.CallerID(ctx))
	if err != nil {
		callable.Fail(w, log, h.tlm, "listPIPs", err)
		return
	}

	if list == nil {
		list = []*PIP{}
	}
	callable.Respond(w, list)
}
